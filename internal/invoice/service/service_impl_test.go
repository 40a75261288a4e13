package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/mizanapp/mizan/internal/invoice/domain"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) invoicedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
}

func invoiceRecord(number string) schema.Record {
	return schema.Record{
		"invoice_number": number,
		"client_name":    "شركة الإعمار",
		"amount":         float64(1150),
		"invoice_date":   "2024-03-01",
		"due_date":       "2024-03-31",
		"status":         "غير مدفوعة",
	}
}

func TestCreate_RejectsDuplicateNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, invoiceRecord("INV-100"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, invoiceRecord("INV-100"))
	assert.ErrorIs(t, err, invoicedomain.ErrDuplicateNumber)
}

func TestCreate_RejectsDueDateBeforeInvoiceDate(t *testing.T) {
	svc := newTestService(t)

	rec := invoiceRecord("INV-101")
	rec["due_date"] = "2024-02-28"

	_, err := svc.Create(context.Background(), rec)
	vErr := schema.AsErrors(err)
	require.NotNil(t, vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "due_date", vErr.Fields[0].Field)
	assert.Equal(t, schema.CodeDueBeforeDate, vErr.Fields[0].Code)
}

func TestUpdate_KeepsNumberUniqueAcrossRows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, invoiceRecord("INV-102"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, invoiceRecord("INV-103"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, first.ID.String(), invoiceRecord("INV-103"))
	assert.ErrorIs(t, err, invoicedomain.ErrDuplicateNumber)
}

func TestList_FiltersByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, invoiceRecord("INV-104"))
	require.NoError(t, err)

	paid := invoiceRecord("INV-105")
	paid["status"] = "مدفوعة"
	_, err = svc.Create(ctx, paid)
	require.NoError(t, err)

	rows, err := svc.List(ctx, invoicedomain.ListFilter{Status: "مدفوعة"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-105", rows[0].InvoiceNumber)
}
