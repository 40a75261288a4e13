// Package schema validates raw entity payloads and normalizes them into
// typed records. Validation collects every field failure in one pass so a
// caller can surface all problems at once.
package schema

import (
	"github.com/mizanapp/mizan/internal/tax"
)

// Kind selects the schema a record is validated against.
type Kind string

const (
	KindSale            Kind = "sale"
	KindInvoice         Kind = "invoice"
	KindPurchase        Kind = "purchase"
	KindExtract         Kind = "extract"
	KindAssignmentOrder Kind = "assignment_order"
	KindContractor      Kind = "contractor"
	KindSupplier        Kind = "supplier"
	KindTask            Kind = "task"
	KindTaskReport      Kind = "task_report"
	KindUser            Kind = "user"
)

// Enumerated field values. Statuses and unit types are stored in Arabic,
// matching what the business records.
var (
	UnitTypes         = []string{"شقة", "فيلا", "محل", "مكتب", "أرض"}
	SaleStatuses      = []string{"متاح", "محجوز", "مباع"}
	InvoiceStatuses   = []string{"مدفوعة", "غير مدفوعة", "متأخرة"}
	PurchaseStatuses  = []string{"مدفوعة", "غير مدفوعة"}
	DocumentStatuses  = []string{"قيد المراجعة", "معتمد", "مرفوض"}
	ContractorStates  = []string{"نشط", "متوقف"}
	TaskPriorities    = []string{"منخفضة", "متوسطة", "عالية"}
	TaskStatuses      = []string{"جديدة", "قيد التنفيذ", "مكتملة"}
	UserRoles         = []string{"system_admin", "manager", "employee"}
	progressUpperEnd  = 100.0
	nonNegativeBound  = 0.0
)

type validateFunc func(Record) (Record, *Errors)

var validators = map[Kind]validateFunc{
	KindSale:            validateSale,
	KindInvoice:         validateInvoice,
	KindPurchase:        validatePurchase,
	KindExtract:         validateExtract,
	KindAssignmentOrder: validateAssignmentOrder,
	KindContractor:      validateContractor,
	KindSupplier:        validateSupplier,
	KindTask:            validateTask,
	KindTaskReport:      validateTaskReport,
	KindUser:            validateUser,
}

// Validate checks a raw record against the schema for kind. On success the
// returned record carries trimmed strings and numeric-typed numbers. On
// failure the error is a *Errors listing every violated constraint in field
// order. ErrUnknownKind is returned for kinds no schema exists for.
func Validate(kind Kind, record Record) (Record, error) {
	fn, known := validators[kind]
	if !known {
		return nil, ErrUnknownKind
	}
	normalized, vErr := fn(record)
	if vErr != nil {
		return nil, vErr
	}
	return normalized, nil
}

func validateSale(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.optionalString("project_id", 64)
	c.requiredString("project_name", 1, 255)
	c.requiredString("customer_name", 2, 255)
	c.optionalString("customer_phone", 32)
	c.requiredEnum("unit_type", UnitTypes)
	c.requiredString("unit_number", 1, 32)
	c.requiredPositive("area")
	c.requiredPositive("price")
	c.requiredEnum("status", SaleStatuses)
	c.optionalDate("sale_date")
	c.optionalString("notes", 1000)
	return c.result()
}

func validateInvoice(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("invoice_number", 1, 64)
	c.requiredString("client_name", 2, 255)
	c.requiredPositive("amount")
	c.requiredDate("invoice_date")
	c.requiredDate("due_date")
	c.requiredEnum("status", InvoiceStatuses)
	c.optionalString("description", 1000)

	// Dates are zero-padded YYYY-MM-DD, so lexicographic order is date order.
	if c.ok("invoice_date") && c.ok("due_date") {
		if c.out.String("due_date") < c.out.String("invoice_date") {
			c.fail("due_date", CodeDueBeforeDate, "due date must be on or after the invoice date")
		}
	}
	return c.result()
}

func validatePurchase(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("supplier_name", 2, 255)
	c.optionalString("description", 1000)
	c.requiredPositive("amount")
	c.requiredDate("purchase_date")
	c.requiredEnum("status", PurchaseStatuses)
	return c.result()
}

func validateExtract(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("extract_number", 1, 64)
	c.optionalString("project_id", 64)
	c.requiredString("project_name", 1, 255)
	c.requiredString("contractor_name", 2, 255)
	c.optionalString("work_description", 1000)
	c.monetaryFields()
	c.requiredDate("extract_date")
	c.requiredEnum("status", DocumentStatuses)
	c.attachmentFields()
	c.taxSplitConsistent()
	return c.result()
}

func validateAssignmentOrder(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("order_number", 1, 64)
	c.optionalString("project_id", 64)
	c.requiredString("project_name", 1, 255)
	c.requiredString("contractor_name", 2, 255)
	c.optionalString("work_description", 1000)
	c.monetaryFields()
	c.requiredDate("order_date")
	c.requiredEnum("status", DocumentStatuses)
	c.attachmentFields()
	c.taxSplitConsistent()
	return c.result()
}

func validateContractor(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("name", 2, 255)
	c.optionalString("phone", 32)
	c.optionalString("specialty", 255)
	c.optionalString("national_id", 32)
	c.optionalEnum("status", ContractorStates)
	c.optionalString("notes", 1000)
	return c.result()
}

func validateSupplier(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("name", 2, 255)
	c.optionalString("phone", 32)
	c.optionalString("category", 255)
	c.optionalString("notes", 1000)
	return c.result()
}

func validateTask(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("title", 2, 255)
	c.optionalString("description", 1000)
	c.requiredString("assigned_to", 1, 255)
	c.requiredEnum("priority", TaskPriorities)
	c.requiredEnum("status", TaskStatuses)
	c.optionalDate("due_date")
	return c.result()
}

func validateTaskReport(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("task_id", 1, 64)
	c.requiredString("reporter", 2, 255)
	c.requiredString("content", 2, 2000)
	c.requiredDate("report_date")
	c.optionalNumber("progress", &nonNegativeBound, &progressUpperEnd)
	return c.result()
}

func validateUser(rec Record) (Record, *Errors) {
	c := newCheck(rec)
	c.requiredString("full_name", 2, 255)
	c.requiredEmail("email")
	c.optionalString("phone", 32)
	c.requiredEnum("role", UserRoles)
	return c.result()
}

// monetaryFields are the shared amount/tax shape carried by extracts and
// assignment orders.
func (c *check) monetaryFields() {
	c.requiredPositive("amount")
	c.boolean("tax_included")
	c.optionalNumber("amount_before_tax", &nonNegativeBound, nil)
	c.optionalNumber("tax_amount", &nonNegativeBound, nil)
}

func (c *check) attachmentFields() {
	c.optionalString("attached_file_url", 512)
	c.optionalString("attached_file_name", 255)
}

// taxSplitConsistent asserts that a stored tax breakdown still sums to the
// total. It only fires when the total is tax-inclusive and both parts
// passed their own checks; the failure is attached to the amount field.
func (c *check) taxSplitConsistent() {
	if !c.ok("amount") || !c.out.Bool("tax_included") {
		return
	}
	if !c.ok("amount_before_tax") || !c.ok("tax_amount") {
		return
	}
	if !tax.ConsistentSplit(c.out.Float("amount"), c.out.Float("amount_before_tax"), c.out.Float("tax_amount")) {
		c.fail("amount", CodeTaxSplit, "tax breakdown does not match the total amount")
	}
}
