package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// check walks a raw record field by field, coercing values into the
// normalized output and collecting every failure. Errors keep the order in
// which fields are checked.
type check struct {
	raw  Record
	out  Record
	errs []FieldError
}

func newCheck(raw Record) *check {
	return &check{raw: raw, out: Record{}}
}

func (c *check) fail(field, code, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Code: code, Message: message})
}

// ok reports whether a field survived its own checks; cross-field
// refinements only run over surviving fields.
func (c *check) ok(field string) bool {
	_, present := c.out[field]
	return present
}

func (c *check) result() (Record, *Errors) {
	if len(c.errs) > 0 {
		return nil, &Errors{Fields: c.errs}
	}
	return c.out, nil
}

// stringValue coerces a raw value to a trimmed string. The second return
// is false when the value is present but not a string.
func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(s), true
	default:
		return "", false
	}
}

// numberValue coerces a raw value to float64. JSON bodies produce float64
// or json.Number; form-style callers may send numeric strings.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (c *check) requiredString(field string, minLen, maxLen int) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.fail(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.boundedString(field, s, minLen, maxLen)
}

// optionalString allows absence and preserves empty strings as empty
// strings rather than nulling them.
func (c *check) optionalString(field string, maxLen int) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.out[field] = ""
		return
	}
	c.boundedString(field, s, 0, maxLen)
}

func (c *check) boundedString(field, s string, minLen, maxLen int) {
	runes := len([]rune(s))
	if minLen > 0 && runes < minLen {
		c.fail(field, CodeMinLength, fmt.Sprintf("%s must be at least %d characters", field, minLen))
		return
	}
	if maxLen > 0 && runes > maxLen {
		c.fail(field, CodeMaxLength, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
		return
	}
	c.out[field] = s
}

func (c *check) requiredNumber(field string, min, max *float64) {
	v, present := c.raw[field]
	if !present || v == nil {
		c.fail(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.boundedNumber(field, v, min, max)
}

func (c *check) optionalNumber(field string, min, max *float64) {
	v, present := c.raw[field]
	if !present || v == nil {
		return
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return
	}
	c.boundedNumber(field, v, min, max)
}

func (c *check) boundedNumber(field string, v any, min, max *float64) {
	n, isNum := numberValue(v)
	if !isNum {
		c.fail(field, CodeInvalidNumber, fmt.Sprintf("%s must be a number", field))
		return
	}
	if min != nil && n < *min {
		if *min == 0 {
			c.fail(field, CodeNegative, fmt.Sprintf("%s must not be negative", field))
		} else {
			c.fail(field, CodeOutOfRange, fmt.Sprintf("%s must be at least %v", field, *min))
		}
		return
	}
	if max != nil && n > *max {
		c.fail(field, CodeOutOfRange, fmt.Sprintf("%s must be at most %v", field, *max))
		return
	}
	c.out[field] = n
}

// requiredPositive is the common "amount" constraint: a number strictly
// greater than zero.
func (c *check) requiredPositive(field string) {
	v, present := c.raw[field]
	if !present || v == nil {
		c.fail(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	n, isNum := numberValue(v)
	if !isNum {
		c.fail(field, CodeInvalidNumber, fmt.Sprintf("%s must be a number", field))
		return
	}
	if n <= 0 {
		c.fail(field, CodeNotPositive, fmt.Sprintf("%s must be greater than zero", field))
		return
	}
	c.out[field] = n
}

func (c *check) boolean(field string) {
	switch v := c.raw[field].(type) {
	case nil:
		c.out[field] = false
	case bool:
		c.out[field] = v
	default:
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a boolean", field))
	}
}

func (c *check) requiredEnum(field string, options []string) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.fail(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.memberOf(field, s, options)
}

func (c *check) optionalEnum(field string, options []string) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.out[field] = ""
		return
	}
	c.memberOf(field, s, options)
}

func (c *check) memberOf(field, s string, options []string) {
	for _, opt := range options {
		if s == opt {
			c.out[field] = s
			return
		}
	}
	c.fail(field, CodeInvalidOption, fmt.Sprintf("%s must be one of: %s", field, strings.Join(options, ", ")))
}

func (c *check) requiredDate(field string) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.fail(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.wellFormedDate(field, s)
}

func (c *check) optionalDate(field string) {
	s, isStr := stringValue(c.raw[field])
	if !isStr {
		c.fail(field, CodeInvalidType, fmt.Sprintf("%s must be a string", field))
		return
	}
	if s == "" {
		c.out[field] = ""
		return
	}
	c.wellFormedDate(field, s)
}

func (c *check) wellFormedDate(field, s string) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		c.fail(field, CodeInvalidDate, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		return
	}
	c.out[field] = s
}

func (c *check) requiredEmail(field string) {
	c.requiredString(field, 3, 255)
	if !c.ok(field) {
		return
	}
	s := c.out[field].(string)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || strings.Contains(s, " ") {
		delete(c.out, field)
		c.fail(field, CodeInvalidEmail, fmt.Sprintf("%s must be a valid email address", field))
	}
}
