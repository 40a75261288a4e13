package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Settings are the operator-tunable parts of the system: how notification
// fan-out behaves and how the messaging relay reaches its provider. They
// live in a mounted settings.yml and reload without a restart.
type Settings struct {
	Notifications NotificationSettings `mapstructure:"notifications"`
	Messaging     MessagingSettings    `mapstructure:"messaging"`
	Backup        BackupSettings       `mapstructure:"backup"`
}

type NotificationSettings struct {
	DefaultType   string `mapstructure:"defaultType"`
	MaxRecipients int    `mapstructure:"maxRecipients"`
}

type MessagingSettings struct {
	ProviderPrefix string `mapstructure:"providerPrefix"`
	DefaultRegion  string `mapstructure:"defaultRegion"`
}

type BackupSettings struct {
	Version string `mapstructure:"version"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			DefaultType:   "info",
			MaxRecipients: 500,
		},
		Messaging: MessagingSettings{
			ProviderPrefix: "whatsapp",
			DefaultRegion:  "+966",
		},
		Backup: BackupSettings{
			Version: "1.0",
		},
	}
}

// SettingsHolder exposes the current settings snapshot. Reads are cheap;
// the watcher swaps the whole value on file change.
type SettingsHolder struct {
	current atomic.Value // holds Settings
}

func NewSettingsHolder() (*SettingsHolder, error) {
	v := viper.New()

	v.SetConfigName("settings")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/mizan/config")
	v.AddConfigPath("/etc/mizan")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MIZAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("notifications.defaultType", defaults.Notifications.DefaultType)
	v.SetDefault("notifications.maxRecipients", defaults.Notifications.MaxRecipients)
	v.SetDefault("messaging.providerPrefix", defaults.Messaging.ProviderPrefix)
	v.SetDefault("messaging.defaultRegion", defaults.Messaging.DefaultRegion)
	v.SetDefault("backup.version", defaults.Backup.Version)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	holder := &SettingsHolder{}
	holder.current.Store(settings)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Settings
		if err := v.Unmarshal(&updated); err != nil {
			log.Printf("[settings] reload failed: %v", err)
			return
		}
		if err := validateSettings(updated); err != nil {
			log.Printf("[settings] invalid settings ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[settings] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *SettingsHolder) Get() Settings {
	return h.current.Load().(Settings)
}

// NewStaticSettingsHolder wraps fixed settings; tests use it to avoid
// touching the filesystem.
func NewStaticSettingsHolder(settings Settings) *SettingsHolder {
	holder := &SettingsHolder{}
	holder.current.Store(settings)
	return holder
}

func validateSettings(s Settings) error {
	if strings.TrimSpace(s.Messaging.ProviderPrefix) == "" {
		return errors.New("messaging.providerPrefix cannot be empty")
	}
	if s.Notifications.MaxRecipients < 1 {
		return errors.New("notifications.maxRecipients must be at least 1")
	}
	return nil
}
