package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSale() Record {
	return Record{
		"project_name":  "مشروع الياسمين",
		"customer_name": "أحمد الزهراني",
		"unit_type":     "شقة",
		"unit_number":   "12",
		"area":          float64(100),
		"price":         float64(500000),
		"status":        "متاح",
	}
}

func validExtract() Record {
	return Record{
		"extract_number":    "EXT-7",
		"project_name":      "مشروع النرجس",
		"contractor_name":   "مؤسسة البناء الحديث",
		"amount":            float64(115),
		"tax_included":      true,
		"amount_before_tax": float64(100),
		"tax_amount":        float64(15),
		"extract_date":      "2024-03-01",
		"status":            "قيد المراجعة",
	}
}

func validAssignmentOrder() Record {
	return Record{
		"order_number":    "  AO-44  ",
		"project_name":    "مشروع الواحة",
		"contractor_name": " شركة الإنشاءات ",
		"amount":          float64(230),
		"tax_included":    true,
		"order_date":      "2024-05-20",
		"status":          "معتمد",
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	_, err := Validate(Kind("ledger"), Record{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidate_SaleShortCustomerName(t *testing.T) {
	rec := validSale()
	rec["customer_name"] = "A"

	_, err := Validate(KindSale, rec)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "customer_name", vErr.Fields[0].Field)
	assert.Equal(t, CodeMinLength, vErr.Fields[0].Code)
}

func TestValidate_SaleWellFormed(t *testing.T) {
	out, err := Validate(KindSale, validSale())
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.Float("area"))
	assert.Equal(t, 500000.0, out.Float("price"))
	assert.Equal(t, "متاح", out.String("status"))
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	rec := validSale()
	rec["customer_name"] = "A"
	rec["unit_type"] = "قصر"
	rec["area"] = float64(-5)
	delete(rec, "status")

	_, err := Validate(KindSale, rec)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 4)

	// Failures come back in declared field order.
	fields := []string{}
	for _, fe := range vErr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"customer_name", "unit_type", "area", "status"}, fields)
}

func TestValidate_ExtractTaxSplit(t *testing.T) {
	out, err := Validate(KindExtract, validExtract())
	require.NoError(t, err)
	assert.Equal(t, 115.0, out.Float("amount"))
	assert.True(t, out.Bool("tax_included"))

	bad := validExtract()
	bad["tax_amount"] = float64(20)
	_, err = Validate(KindExtract, bad)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "amount", vErr.Fields[0].Field)
	assert.Equal(t, CodeTaxSplit, vErr.Fields[0].Code)
}

func TestValidate_ExtractSplitCheckSkippedWhenPartsMissing(t *testing.T) {
	rec := validExtract()
	delete(rec, "amount_before_tax")
	delete(rec, "tax_amount")

	_, err := Validate(KindExtract, rec)
	assert.NoError(t, err)
}

func TestValidate_ExtractSplitCheckSkippedWhenTaxExcluded(t *testing.T) {
	rec := validExtract()
	rec["tax_included"] = false
	rec["tax_amount"] = float64(20)

	_, err := Validate(KindExtract, rec)
	assert.NoError(t, err)
}

func TestValidate_AssignmentOrderNormalizes(t *testing.T) {
	out, err := Validate(KindAssignmentOrder, validAssignmentOrder())
	require.NoError(t, err)
	assert.Equal(t, "AO-44", out.String("order_number"))
	assert.Equal(t, "شركة الإنشاءات", out.String("contractor_name"))
	assert.Equal(t, 230.0, out.Float("amount"))
	// Absent optional strings normalize to empty strings, not nulls.
	assert.Equal(t, "", out.String("work_description"))
	assert.True(t, out.Has("work_description"))
}

func TestValidate_AssignmentOrderStringAmount(t *testing.T) {
	rec := validAssignmentOrder()
	rec["amount"] = "345.50"

	out, err := Validate(KindAssignmentOrder, rec)
	require.NoError(t, err)
	assert.Equal(t, 345.50, out.Float("amount"))
}

func TestValidate_InvoiceDueDateOrdering(t *testing.T) {
	base := Record{
		"invoice_number": "INV-1",
		"client_name":    "شركة المقاولات",
		"amount":         float64(1000),
		"invoice_date":   "2024-01-10",
		"due_date":       "2024-01-05",
		"status":         "غير مدفوعة",
	}

	_, err := Validate(KindInvoice, base)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "due_date", vErr.Fields[0].Field)
	assert.Equal(t, CodeDueBeforeDate, vErr.Fields[0].Code)

	base["due_date"] = "2024-01-10"
	_, err = Validate(KindInvoice, base)
	assert.NoError(t, err)
}

func TestValidate_InvoiceBadDateFormat(t *testing.T) {
	rec := Record{
		"invoice_number": "INV-2",
		"client_name":    "شركة المقاولات",
		"amount":         float64(1000),
		"invoice_date":   "10/01/2024",
		"due_date":       "2024-02-01",
		"status":         "مدفوعة",
	}

	_, err := Validate(KindInvoice, rec)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "invoice_date", vErr.Fields[0].Field)
	assert.Equal(t, CodeInvalidDate, vErr.Fields[0].Code)
}

func TestValidate_UserEmail(t *testing.T) {
	rec := Record{
		"full_name": "منى الحربي",
		"email":     "mona@example.com",
		"role":      "system_admin",
	}
	_, err := Validate(KindUser, rec)
	assert.NoError(t, err)

	rec["email"] = "not-an-email"
	_, err = Validate(KindUser, rec)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	assert.Equal(t, "email", vErr.Fields[0].Field)
	assert.Equal(t, CodeInvalidEmail, vErr.Fields[0].Code)
}

func TestValidate_TaskReportProgressBounds(t *testing.T) {
	rec := Record{
		"task_id":     "42",
		"reporter":    "سالم العتيبي",
		"content":     "تم صب الأساسات",
		"report_date": "2024-06-11",
		"progress":    float64(120),
	}

	_, err := Validate(KindTaskReport, rec)
	vErr := AsErrors(err)
	require.NotNil(t, vErr)
	assert.Equal(t, "progress", vErr.Fields[0].Field)
	assert.Equal(t, CodeOutOfRange, vErr.Fields[0].Code)
}
