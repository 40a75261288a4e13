package schema

import "errors"

// ErrUnknownKind indicates a caller asked for a kind no schema is declared
// for. This is a programming error, not a validation failure.
var ErrUnknownKind = errors.New("unknown_kind")

// FieldError is a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Errors is the full list of validation failures for one record, in the
// order the fields are declared.
type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Error() string {
	return "validation error"
}

// AsErrors unwraps err into *Errors when it carries field failures.
func AsErrors(err error) *Errors {
	var vErr *Errors
	if errors.As(err, &vErr) {
		return vErr
	}
	return nil
}

// Field error codes.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeMinLength     = "min_length"
	CodeMaxLength     = "max_length"
	CodeInvalidNumber = "invalid_number"
	CodeNotPositive   = "not_positive"
	CodeNegative      = "negative"
	CodeOutOfRange    = "out_of_range"
	CodeInvalidOption = "invalid_option"
	CodeInvalidDate   = "invalid_date"
	CodeInvalidEmail  = "invalid_email"
	CodeTaxSplit      = "tax_split_mismatch"
	CodeDueBeforeDate = "due_before_invoice_date"
)
