package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/mizanapp/mizan/internal/assignment"
	assignmentdomain "github.com/mizanapp/mizan/internal/assignment/domain"
	"github.com/mizanapp/mizan/internal/backup"
	backupdomain "github.com/mizanapp/mizan/internal/backup/domain"
	"github.com/mizanapp/mizan/internal/config"
	"github.com/mizanapp/mizan/internal/contractor"
	contractordomain "github.com/mizanapp/mizan/internal/contractor/domain"
	"github.com/mizanapp/mizan/internal/extract"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	"github.com/mizanapp/mizan/internal/invoice"
	invoicedomain "github.com/mizanapp/mizan/internal/invoice/domain"
	"github.com/mizanapp/mizan/internal/notification"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	"github.com/mizanapp/mizan/internal/observability"
	obslogger "github.com/mizanapp/mizan/internal/observability/logger"
	obsmetrics "github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/internal/profile"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	"github.com/mizanapp/mizan/internal/purchase"
	purchasedomain "github.com/mizanapp/mizan/internal/purchase/domain"
	"github.com/mizanapp/mizan/internal/sale"
	saledomain "github.com/mizanapp/mizan/internal/sale/domain"
	"github.com/mizanapp/mizan/internal/task"
	taskdomain "github.com/mizanapp/mizan/internal/task/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	sale.Module,
	invoice.Module,
	purchase.Module,
	extract.Module,
	assignment.Module,
	contractor.Module,
	task.Module,
	profile.Module,
	notification.Module,
	backup.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log.Named("http")))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	saleSvc         saledomain.Service
	invoiceSvc      invoicedomain.Service
	purchaseSvc     purchasedomain.Service
	extractSvc      extractdomain.Service
	assignmentSvc   assignmentdomain.Service
	contractorSvc   contractordomain.ContractorService
	supplierSvc     contractordomain.SupplierService
	taskSvc         taskdomain.TaskService
	reportSvc       taskdomain.ReportService
	profileSvc      profiledomain.Service
	notificationSvc notificationdomain.Service
	backupSvc       backupdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	SaleSvc         saledomain.Service
	InvoiceSvc      invoicedomain.Service
	PurchaseSvc     purchasedomain.Service
	ExtractSvc      extractdomain.Service
	AssignmentSvc   assignmentdomain.Service
	ContractorSvc   contractordomain.ContractorService
	SupplierSvc     contractordomain.SupplierService
	TaskSvc         taskdomain.TaskService
	ReportSvc       taskdomain.ReportService
	ProfileSvc      profiledomain.Service
	NotificationSvc notificationdomain.Service
	BackupSvc       backupdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		saleSvc:         p.SaleSvc,
		invoiceSvc:      p.InvoiceSvc,
		purchaseSvc:     p.PurchaseSvc,
		extractSvc:      p.ExtractSvc,
		assignmentSvc:   p.AssignmentSvc,
		contractorSvc:   p.ContractorSvc,
		supplierSvc:     p.SupplierSvc,
		taskSvc:         p.TaskSvc,
		reportSvc:       p.ReportSvc,
		profileSvc:      p.ProfileSvc,
		notificationSvc: p.NotificationSvc,
		backupSvc:       p.BackupSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFunctionRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	sales := api.Group("/sales")
	sales.POST("", s.CreateSale)
	sales.GET("", s.ListSales)
	sales.GET("/:id", s.GetSale)
	sales.PUT("/:id", s.UpdateSale)
	sales.DELETE("/:id", s.DeleteSale)

	invoices := api.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoice)
	invoices.PUT("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)

	purchases := api.Group("/purchases")
	purchases.POST("", s.CreatePurchase)
	purchases.GET("", s.ListPurchases)
	purchases.GET("/:id", s.GetPurchase)
	purchases.PUT("/:id", s.UpdatePurchase)
	purchases.DELETE("/:id", s.DeletePurchase)

	extracts := api.Group("/extracts")
	extracts.POST("", s.CreateExtract)
	extracts.GET("", s.ListExtracts)
	extracts.GET("/:id", s.GetExtract)
	extracts.PUT("/:id", s.UpdateExtract)
	extracts.DELETE("/:id", s.DeleteExtract)

	orders := api.Group("/assignment-orders")
	orders.POST("", s.CreateAssignmentOrder)
	orders.GET("", s.ListAssignmentOrders)
	orders.GET("/:id", s.GetAssignmentOrder)
	orders.PUT("/:id", s.UpdateAssignmentOrder)
	orders.DELETE("/:id", s.DeleteAssignmentOrder)

	contractors := api.Group("/contractors")
	contractors.POST("", s.CreateContractor)
	contractors.GET("", s.ListContractors)
	contractors.GET("/:id", s.GetContractor)
	contractors.PUT("/:id", s.UpdateContractor)
	contractors.DELETE("/:id", s.DeleteContractor)

	suppliers := api.Group("/suppliers")
	suppliers.POST("", s.CreateSupplier)
	suppliers.GET("", s.ListSuppliers)
	suppliers.GET("/:id", s.GetSupplier)
	suppliers.PUT("/:id", s.UpdateSupplier)
	suppliers.DELETE("/:id", s.DeleteSupplier)

	tasks := api.Group("/tasks")
	tasks.POST("", s.CreateTask)
	tasks.GET("", s.ListTasks)
	tasks.GET("/:id", s.GetTask)
	tasks.PUT("/:id", s.UpdateTask)
	tasks.DELETE("/:id", s.DeleteTask)
	tasks.GET("/:id/reports", s.ListTaskReports)

	reports := api.Group("/task-reports")
	reports.POST("", s.CreateTaskReport)
	reports.DELETE("/:id", s.DeleteTaskReport)

	profiles := api.Group("/profiles")
	profiles.POST("", s.CreateProfile)
	profiles.GET("", s.ListProfiles)
	profiles.GET("/:id", s.GetProfile)
	profiles.PUT("/:id", s.UpdateProfile)
	profiles.DELETE("/:id", s.DeleteProfile)

	notifications := api.Group("/notifications")
	notifications.GET("", s.ListNotifications)
	notifications.POST("/:id/read", s.MarkNotificationRead)
}

func (s *Server) registerFunctionRoutes() {
	fns := s.engine.Group("/api/functions")
	fns.POST("/backup-export", s.BackupExport)
	fns.GET("/backup-export/logs", s.ListBackupLogs)
	fns.POST("/send-notification", s.SendNotification)
	fns.POST("/messaging-relay", s.MessagingRelay)
}
