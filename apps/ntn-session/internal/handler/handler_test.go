package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/controller"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/dto"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/store"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/httputil"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockSessionService はテスト用のモック
type mockSessionService struct {
	snapshot controller.Snapshot
	err      error
	id       uint64

	enableCalls []bool
	payload     []byte
	emergency   bool
	radio       model.Radio
	radioOn     *bool
	linkOn      *bool
}

func (m *mockSessionService) SnapshotSync(ctx context.Context) (controller.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockSessionService) RequestEnabledSync(ctx context.Context, want, demoMode, emergency bool) error {
	m.enableCalls = append(m.enableCalls, want)
	return m.err
}

func (m *mockSessionService) SendDatagramSync(ctx context.Context, payload []byte, emergency, needsPointingUI bool) (uint64, error) {
	m.payload = payload
	m.emergency = emergency
	return m.id, m.err
}

func (m *mockSessionService) PollDatagramsSync(ctx context.Context) error {
	return m.err
}

func (m *mockSessionService) OnRadioStateChanged(radio model.Radio, on bool) {
	m.radio = radio
	m.radioOn = &on
}

func (m *mockSessionService) SetLinkLayerOn(on bool) {
	m.linkOn = &on
}

type mockInbox struct {
	items []*model.ReceivedDatagram
	limit int
	err   error
}

func (m *mockInbox) List(ctx context.Context, limit int) ([]*model.ReceivedDatagram, error) {
	m.limit = limit
	return m.items, m.err
}

type mockStats struct {
	stats map[model.Priority]*store.SendStats
	err   error
}

func (m *mockStats) Get(ctx context.Context, priority model.Priority) (*store.SendStats, error) {
	return m.stats[priority], m.err
}

func newTestRouter(svc *mockSessionService, inbox *mockInbox, stats *mockStats) *gin.Engine {
	h := NewSessionHandler(svc, inbox, stats)
	r := gin.New()
	r.GET("/health", h.HandleHealth)
	r.GET("/api/v1/session", h.HandleGetSession)
	r.POST("/api/v1/session/enable", h.HandleEnable)
	r.POST("/api/v1/datagrams", h.HandleSendDatagram)
	r.POST("/api/v1/datagrams/poll", h.HandlePollDatagrams)
	r.GET("/api/v1/datagrams/inbox", h.HandleInbox)
	r.GET("/api/v1/datagrams/stats", h.HandleStats)
	r.POST("/api/v1/radios/:radio", h.HandleRadio)
	r.POST("/api/v1/link", h.HandleLink)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) httputil.ProblemDetail {
	t.Helper()
	var p httputil.ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode problem detail: %v", err)
	}
	return p
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(&mockSessionService{}, &mockInbox{}, &mockStats{})
	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp dto.HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want %q", resp.Status, "ok")
	}
}

func TestHandleGetSession(t *testing.T) {
	svc := &mockSessionService{snapshot: controller.Snapshot{
		Supported:    true,
		Provisioned:  true,
		EnabledKnown: true,
		Enabled:      true,
		SessionState: session.StateListening,
		ModemState:   model.ModemStateListening,
		PendingCount: 2,
	}}
	r := newTestRouter(svc, &mockInbox{}, &mockStats{})
	w := doRequest(r, http.MethodGet, "/api/v1/session", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp dto.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionState != "LISTENING" {
		t.Errorf("SessionState = %q, want %q", resp.SessionState, "LISTENING")
	}
	if resp.Enabled == nil || !*resp.Enabled {
		t.Errorf("Enabled = %v, want true", resp.Enabled)
	}
	if resp.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", resp.PendingCount)
	}
}

func TestHandleGetSessionError(t *testing.T) {
	svc := &mockSessionService{err: context.DeadlineExceeded}
	r := newTestRouter(svc, &mockInbox{}, &mockStats{})
	w := doRequest(r, http.MethodGet, "/api/v1/session", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestHandleEnable(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantCalls  int
	}{
		{"enable success", `{"enable":true}`, nil, http.StatusOK, apperr.ResultSuccess, 1},
		{"disable success", `{"enable":false}`, nil, http.StatusOK, apperr.ResultSuccess, 1},
		{"missing enable", `{"demo_mode":true}`, nil, http.StatusBadRequest, apperr.ResultInvalidArguments, 0},
		{"broken json", `{"enable":`, nil, http.StatusBadRequest, apperr.ResultInvalidArguments, 0},
		{"not supported", `{"enable":true}`, apperr.ErrNotSupported, http.StatusNotImplemented, apperr.ResultNotSupported, 1},
		{"not provisioned", `{"enable":true}`, apperr.ErrNotProvisioned, http.StatusForbidden, apperr.ResultNotProvisioned, 1},
		{"in progress", `{"enable":true}`, apperr.ErrRequestInProgress, http.StatusConflict, apperr.ResultRequestInProgress, 1},
		{"modem timeout", `{"enable":true}`, apperr.ErrModemTimeout, http.StatusGatewayTimeout, apperr.ResultModemTimeout, 1},
		{"modem error", `{"enable":true}`, apperr.NewModemError(7, nil), http.StatusBadGateway, apperr.ResultModemError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSessionService{err: tt.err}
			r := newTestRouter(svc, &mockInbox{}, &mockStats{})
			w := doRequest(r, http.MethodPost, "/api/v1/session/enable", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if len(svc.enableCalls) != tt.wantCalls {
				t.Errorf("RequestEnabledSync calls = %d, want %d", len(svc.enableCalls), tt.wantCalls)
			}
			if tt.wantStatus == http.StatusOK {
				var resp dto.ResultResponse
				json.Unmarshal(w.Body.Bytes(), &resp)
				if resp.Result != tt.wantCode {
					t.Errorf("Result = %q, want %q", resp.Result, tt.wantCode)
				}
				return
			}
			if p := decodeProblem(t, w); p.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", p.Code, tt.wantCode)
			}
		})
	}
}

func TestBadRequestNamesField(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantDetail string
	}{
		{"missing enable", "/api/v1/session/enable", `{"demo_mode":true}`, "validation error: field=enable, message=failed on 'required'"},
		{"wrong enable type", "/api/v1/session/enable", `{"enable":"yes"}`, "validation error: field=enable, message=must be bool"},
		{"broken json", "/api/v1/session/enable", `{"enable":`, "validation error: field=body, message=malformed request body"},
		{"missing payload", "/api/v1/datagrams", `{"emergency":true}`, "validation error: field=payload, message=failed on 'required'"},
		{"empty payload", "/api/v1/datagrams", `{"payload":""}`, "validation error: field=payload, message=must not be empty"},
		{"missing link state", "/api/v1/link", `{}`, "validation error: field=on, message=failed on 'required'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockSessionService{}, &mockInbox{}, &mockStats{})
			w := doRequest(r, http.MethodPost, tt.path, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			p := decodeProblem(t, w)
			if p.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", p.Detail, tt.wantDetail)
			}
			if p.Code != apperr.ResultInvalidArguments {
				t.Errorf("Code = %q, want %q", p.Code, apperr.ResultInvalidArguments)
			}
		})
	}
}

func TestJSONFieldName(t *testing.T) {
	tests := []struct {
		name  string
		req   any
		field string
		want  string
	}{
		{"tagged field", &dto.DatagramRequest{}, "NeedsPointingUI", "needs_pointing_ui"},
		{"value receiver", dto.EnableRequest{}, "DemoMode", "demo_mode"},
		{"unknown field", &dto.LinkRequest{}, "Missing", "Missing"},
		{"not a struct", 1, "On", "On"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonFieldName(tt.req, tt.field); got != tt.want {
				t.Errorf("jsonFieldName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleSendDatagram(t *testing.T) {
	svc := &mockSessionService{id: 42}
	r := newTestRouter(svc, &mockInbox{}, &mockStats{})
	// "sos!" のbase64
	w := doRequest(r, http.MethodPost, "/api/v1/datagrams", `{"payload":"c29zIQ==","emergency":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp dto.DatagramResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.DatagramID != 42 || resp.Result != apperr.ResultSuccess {
		t.Errorf("response = %+v", resp)
	}
	if string(svc.payload) != "sos!" {
		t.Errorf("payload = %q, want %q", svc.payload, "sos!")
	}
	if !svc.emergency {
		t.Error("emergency = false, want true")
	}
}

func TestHandleSendDatagramErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing payload", `{"emergency":true}`, nil, http.StatusBadRequest},
		{"invalid base64", `{"payload":"***"}`, nil, http.StatusBadRequest},
		{"too large", `{"payload":"AAAA"}`, apperr.ErrPayloadTooLarge, http.StatusBadRequest},
		{"aborted", `{"payload":"AAAA"}`, apperr.ErrAborted, http.StatusConflict},
		{"not reachable", `{"payload":"AAAA"}`, apperr.ErrNotReachable, http.StatusServiceUnavailable},
		{"invalid state", `{"payload":"AAAA"}`, apperr.ErrInvalidState, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSessionService{err: tt.err}
			r := newTestRouter(svc, &mockInbox{}, &mockStats{})
			w := doRequest(r, http.MethodPost, "/api/v1/datagrams", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != httputil.ContentType {
				t.Errorf("Content-Type = %q, want %q", ct, httputil.ContentType)
			}
		})
	}
}

func TestHandlePollDatagrams(t *testing.T) {
	r := newTestRouter(&mockSessionService{}, &mockInbox{}, &mockStats{})
	if w := doRequest(r, http.MethodPost, "/api/v1/datagrams/poll", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	r = newTestRouter(&mockSessionService{err: apperr.ErrRequestInProgress}, &mockInbox{}, &mockStats{})
	if w := doRequest(r, http.MethodPost, "/api/v1/datagrams/poll", ""); w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestHandleInbox(t *testing.T) {
	inbox := &mockInbox{items: []*model.ReceivedDatagram{
		model.NewReceivedDatagram([]byte("hi"), 1704067200000, 0),
	}}
	r := newTestRouter(&mockSessionService{}, inbox, &mockStats{})

	w := doRequest(r, http.MethodGet, "/api/v1/datagrams/inbox?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if inbox.limit != 5 {
		t.Errorf("limit = %d, want 5", inbox.limit)
	}
	var resp dto.InboxResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Datagrams) != 1 || string(resp.Datagrams[0].Payload) != "hi" {
		t.Errorf("Datagrams = %+v", resp.Datagrams)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/datagrams/inbox", "")
	if w.Code != http.StatusOK || inbox.limit != 100 {
		t.Errorf("status = %d, limit = %d, want 200 and 100", w.Code, inbox.limit)
	}
}

func TestHandleInboxErrors(t *testing.T) {
	r := newTestRouter(&mockSessionService{}, &mockInbox{}, &mockStats{})
	w := doRequest(r, http.MethodGet, "/api/v1/datagrams/inbox?limit=0", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if p := decodeProblem(t, w); p.Detail != "validation error: field=limit, message=must be a positive integer" {
		t.Errorf("Detail = %q", p.Detail)
	}

	inbox := &mockInbox{err: apperr.NewValkeyError("LRANGE", "ntn:inbox", apperr.ErrValkeyConnection)}
	r = newTestRouter(&mockSessionService{}, inbox, &mockStats{})
	w = doRequest(r, http.MethodGet, "/api/v1/datagrams/inbox", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if p := decodeProblem(t, w); p.Detail != "storage unavailable" {
		t.Errorf("Detail = %q, want %q", p.Detail, "storage unavailable")
	}
}

func TestHandleStats(t *testing.T) {
	stats := &mockStats{stats: map[model.Priority]*store.SendStats{
		model.PriorityEmergency: {Count: 1},
		model.PriorityNormal:    {Count: 3},
	}}
	r := newTestRouter(&mockSessionService{}, &mockInbox{}, stats)
	w := doRequest(r, http.MethodGet, "/api/v1/datagrams/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp dto.StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Emergency.Count != 1 || resp.Normal.Count != 3 {
		t.Errorf("response = %+v / %+v", resp.Emergency, resp.Normal)
	}

	r = newTestRouter(&mockSessionService{}, &mockInbox{}, &mockStats{err: errors.New("boom")})
	if w := doRequest(r, http.MethodGet, "/api/v1/datagrams/stats", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestHandleRadio(t *testing.T) {
	svc := &mockSessionService{}
	r := newTestRouter(svc, &mockInbox{}, &mockStats{})

	w := doRequest(r, http.MethodPost, "/api/v1/radios/bt", `{"enabled":false}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if svc.radio != model.RadioBluetooth || svc.radioOn == nil || *svc.radioOn {
		t.Errorf("radio = %q, on = %v", svc.radio, svc.radioOn)
	}

	if w := doRequest(r, http.MethodPost, "/api/v1/radios/zigbee", `{"enabled":false}`); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := doRequest(r, http.MethodPost, "/api/v1/radios/nfc", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleLink(t *testing.T) {
	svc := &mockSessionService{}
	r := newTestRouter(svc, &mockInbox{}, &mockStats{})

	w := doRequest(r, http.MethodPost, "/api/v1/link", `{"on":false}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if svc.linkOn == nil || *svc.linkOn {
		t.Errorf("linkOn = %v, want false", svc.linkOn)
	}
}

var _ SessionService = (*controller.Controller)(nil)
