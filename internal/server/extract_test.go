package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	"github.com/mizanapp/mizan/internal/schema"
)

type fakeExtractService struct {
	createCalls int
	lastRecord  schema.Record
	createErr   error
	getErr      error
}

func (f *fakeExtractService) Create(ctx context.Context, rec schema.Record) (*extractdomain.Extract, error) {
	f.createCalls++
	f.lastRecord = rec
	_ = ctx
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &extractdomain.Extract{
		ID:              snowflake.ID(100),
		ExtractNumber:   "EXT-1",
		Amount:          115,
		TaxIncluded:     true,
		AmountBeforeTax: 100,
		TaxAmount:       15,
	}, nil
}

func (f *fakeExtractService) Update(ctx context.Context, id string, rec schema.Record) (*extractdomain.Extract, error) {
	_ = ctx
	_ = id
	_ = rec
	return nil, extractdomain.ErrNotFound
}

func (f *fakeExtractService) Get(ctx context.Context, id string) (*extractdomain.Extract, error) {
	_ = ctx
	_ = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &extractdomain.Extract{ID: snowflake.ID(100)}, nil
}

func (f *fakeExtractService) List(ctx context.Context, filter extractdomain.ListFilter) ([]*extractdomain.Extract, error) {
	_ = ctx
	_ = filter
	return nil, nil
}

func (f *fakeExtractService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

func newExtractRouter(svc extractdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{extractSvc: svc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/extracts", srv.CreateExtract)
	router.GET("/api/extracts/:id", srv.GetExtract)
	return router
}

func TestCreateExtractReturnsDerivedAmounts(t *testing.T) {
	svc := &fakeExtractService{}
	router := newExtractRouter(svc)

	body := `{"extract_number":"EXT-1","project_name":"p","contractor_name":"c","amount":115,"tax_included":true,"extract_date":"2024-03-01","status":"قيد المراجعة"}`
	req := httptest.NewRequest(http.MethodPost, "/api/extracts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if svc.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", svc.createCalls)
	}
	if got := svc.lastRecord["extract_number"]; got != "EXT-1" {
		t.Fatalf("expected record to reach the service, got %v", got)
	}

	var payload struct {
		Data extractdomain.Extract `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.AmountBeforeTax != 100 || payload.Data.TaxAmount != 15 {
		t.Fatalf("expected derived breakdown 100/15, got %v/%v",
			payload.Data.AmountBeforeTax, payload.Data.TaxAmount)
	}
}

func TestCreateExtractValidationFailureReturns400(t *testing.T) {
	svc := &fakeExtractService{
		createErr: &schema.Errors{
			Fields: []schema.FieldError{
				{Field: "amount", Code: schema.CodeTaxSplit, Message: "tax breakdown does not match amount"},
			},
		},
	}
	router := newExtractRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/extracts", bytes.NewBufferString(`{"amount":115}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var payload errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %s", payload.Error.Type)
	}
	if len(payload.Error.Errors) != 1 || payload.Error.Errors[0].Field != "amount" {
		t.Fatalf("expected a single error on amount, got %+v", payload.Error.Errors)
	}
	if payload.Error.Errors[0].Code != "tax_split_mismatch" {
		t.Fatalf("expected tax_split_mismatch, got %s", payload.Error.Errors[0].Code)
	}
}

func TestGetExtractNotFoundReturns404(t *testing.T) {
	svc := &fakeExtractService{getErr: extractdomain.ErrNotFound}
	router := newExtractRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/extracts/100", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
