package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	"github.com/mizanapp/mizan/pkg/db/pagination"
)

type fakeNotificationService struct {
	dispatchErr  error
	relayErr     error
	lastDispatch notificationdomain.DispatchRequest
}

func (f *fakeNotificationService) Dispatch(ctx context.Context, req notificationdomain.DispatchRequest) (*notificationdomain.DispatchResult, error) {
	f.lastDispatch = req
	_ = ctx
	if f.dispatchErr != nil {
		return nil, f.dispatchErr
	}
	return &notificationdomain.DispatchResult{Dispatched: len(req.Recipients)}, nil
}

func (f *fakeNotificationService) Relay(ctx context.Context, req notificationdomain.RelayRequest) (*notificationdomain.RelayResult, error) {
	_ = ctx
	if f.relayErr != nil {
		return nil, f.relayErr
	}
	return &notificationdomain.RelayResult{To: "whatsapp:+966501234567"}, nil
}

func (f *fakeNotificationService) ListByRecipient(ctx context.Context, recipientID string, page pagination.Pagination) (*notificationdomain.NotificationPage, error) {
	_ = ctx
	_ = recipientID
	_ = page
	return &notificationdomain.NotificationPage{}, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

func newFunctionsRouter(svc notificationdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{notificationSvc: svc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/functions/send-notification", srv.SendNotification)
	router.POST("/api/functions/messaging-relay", srv.MessagingRelay)
	return router
}

func TestSendNotificationFanOut(t *testing.T) {
	svc := &fakeNotificationService{}
	router := newFunctionsRouter(svc)

	body := `{"sender_id":"1","title":"t","message":"m","recipients":["2","3"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/functions/send-notification", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if len(svc.lastDispatch.Recipients) != 2 {
		t.Fatalf("expected both recipients to reach the service, got %v", svc.lastDispatch.Recipients)
	}

	var payload struct {
		Data notificationdomain.DispatchResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Dispatched != 2 {
		t.Fatalf("expected 2 dispatched, got %d", payload.Data.Dispatched)
	}
}

func TestSendNotificationForbiddenReturns403(t *testing.T) {
	svc := &fakeNotificationService{dispatchErr: notificationdomain.ErrForbidden}
	router := newFunctionsRouter(svc)

	body := `{"sender_id":"1","title":"t","message":"m","recipients":["2"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/functions/send-notification", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestMessagingRelayInvalidPhoneReturns400(t *testing.T) {
	svc := &fakeNotificationService{relayErr: notificationdomain.ErrInvalidPhone}
	router := newFunctionsRouter(svc)

	body := `{"to":"abc","message":"m"}`
	req := httptest.NewRequest(http.MethodPost, "/api/functions/messaging-relay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestMessagingRelayFormatsAddress(t *testing.T) {
	svc := &fakeNotificationService{}
	router := newFunctionsRouter(svc)

	body := `{"to":"0501234567","message":"m"}`
	req := httptest.NewRequest(http.MethodPost, "/api/functions/messaging-relay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload struct {
		Data notificationdomain.RelayResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.To != "whatsapp:+966501234567" {
		t.Fatalf("unexpected relay address %s", payload.Data.To)
	}
}
