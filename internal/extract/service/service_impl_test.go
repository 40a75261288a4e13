package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) extractdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&extractdomain.Extract{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
}

func extractRecord() schema.Record {
	return schema.Record{
		"extract_number":  "EXT-1",
		"project_name":    "مشروع النرجس",
		"contractor_name": "مؤسسة البناء الحديث",
		"amount":          float64(115),
		"tax_included":    true,
		"extract_date":    "2024-03-01",
		"status":          "قيد المراجعة",
	}
}

func TestCreate_DerivesTaxSplit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, extractRecord())
	require.NoError(t, err)
	assert.Equal(t, 115.0, created.Amount)
	assert.Equal(t, 100.0, created.AmountBeforeTax)
	assert.Equal(t, 15.0, created.TaxAmount)

	// The persisted row carries the derived breakdown.
	loaded, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 100.0, loaded.AmountBeforeTax)
	assert.Equal(t, 15.0, loaded.TaxAmount)
}

func TestCreate_TaxExcludedKeepsAmountAsBase(t *testing.T) {
	svc := newTestService(t)

	rec := extractRecord()
	rec["tax_included"] = false
	rec["amount"] = float64(500)

	created, err := svc.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 500.0, created.AmountBeforeTax)
	assert.Equal(t, 0.0, created.TaxAmount)
}

func TestCreate_OverridesStaleBreakdown(t *testing.T) {
	svc := newTestService(t)

	// A breakdown consistent within tolerance passes validation, but the
	// stored row is still re-derived from the total.
	rec := extractRecord()
	rec["amount"] = float64(100)
	rec["amount_before_tax"] = float64(86.95)
	rec["tax_amount"] = float64(13.05)

	created, err := svc.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 86.96, created.AmountBeforeTax)
	assert.Equal(t, 13.04, created.TaxAmount)
}

func TestCreate_RejectsInconsistentBreakdown(t *testing.T) {
	svc := newTestService(t)

	rec := extractRecord()
	rec["amount_before_tax"] = float64(100)
	rec["tax_amount"] = float64(20)

	_, err := svc.Create(context.Background(), rec)
	vErr := schema.AsErrors(err)
	require.NotNil(t, vErr)
	assert.Equal(t, "amount", vErr.Fields[0].Field)
}

func TestUpdate_RederivesSplit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, extractRecord())
	require.NoError(t, err)

	rec := extractRecord()
	rec["amount"] = float64(230)
	updated, err := svc.Update(ctx, created.ID.String(), rec)
	require.NoError(t, err)
	assert.Equal(t, 230.0, updated.Amount)
	assert.Equal(t, 200.0, updated.AmountBeforeTax)
	assert.Equal(t, 30.0, updated.TaxAmount)
}

func TestUpdate_TaxIncludedToExcludedPersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, extractRecord())
	require.NoError(t, err)
	require.True(t, created.TaxIncluded)
	require.Equal(t, 15.0, created.TaxAmount)

	rec := extractRecord()
	rec["tax_included"] = false
	_, err = svc.Update(ctx, created.ID.String(), rec)
	require.NoError(t, err)

	// The stored row must carry the zero-value transition, not the old split.
	loaded, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.False(t, loaded.TaxIncluded)
	assert.Equal(t, 115.0, loaded.AmountBeforeTax)
	assert.Equal(t, 0.0, loaded.TaxAmount)
}

func TestUpdate_ClearsOptionalField(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := extractRecord()
	rec["work_description"] = "أعمال الحفر"
	created, err := svc.Create(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, "أعمال الحفر", created.WorkDescription)

	_, err = svc.Update(ctx, created.ID.String(), extractRecord())
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Empty(t, loaded.WorkDescription)
}

func TestGet_UnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, extractdomain.ErrInvalidID)

	_, err = svc.Get(context.Background(), snowflake.ID(12345).String())
	assert.ErrorIs(t, err, extractdomain.ErrNotFound)
}

func TestList_FiltersByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := extractRecord()
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := extractRecord()
	second["extract_number"] = "EXT-2"
	second["status"] = "معتمد"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	approved, err := svc.List(ctx, extractdomain.ListFilter{Status: "معتمد"})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "EXT-2", approved[0].ExtractNumber)
}
