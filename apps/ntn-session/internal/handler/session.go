// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/dto"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/httputil"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// TraceIDKey はコンテキストにTraceIDを格納するキー。
const TraceIDKey = "trace_id"

// SessionHandler はセッション制御APIのハンドラー。
type SessionHandler struct {
	svc   SessionService
	inbox InboxReader
	stats StatsReader
}

// NewSessionHandler は新しいSessionHandlerを生成する。
func NewSessionHandler(svc SessionService, inbox InboxReader, stats StatsReader) *SessionHandler {
	return &SessionHandler{
		svc:   svc,
		inbox: inbox,
		stats: stats,
	}
}

// HandleHealth はGET /health のハンドラー。
func (h *SessionHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// HandleGetSession はGET /api/v1/session のハンドラー。
func (h *SessionHandler) HandleGetSession(c *gin.Context) {
	snap, err := h.svc.SnapshotSync(c.Request.Context())
	if err != nil {
		h.handleError(c, "SESSION_GET_ERR", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSessionResponse(snap))
}

// HandleEnable はPOST /api/v1/session/enable のハンドラー。
// 有効化・無効化の結果が出るまでレスポンスを返さない。
func (h *SessionHandler) HandleEnable(c *gin.Context) {
	traceID, _ := c.Get(TraceIDKey)

	var req dto.EnableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "ENABLE_ERR", &req, err)
		return
	}

	err := h.svc.RequestEnabledSync(c.Request.Context(), *req.Enable, req.DemoMode, req.Emergency)
	if err != nil {
		h.handleError(c, "ENABLE_ERR", err)
		return
	}

	slog.Info("session enable request completed",
		"trace_id", traceID,
		"event_id", "ENABLE_OK",
		"enable", *req.Enable,
		"demo_mode", req.DemoMode,
		"emergency", req.Emergency,
	)
	c.JSON(http.StatusOK, dto.ResultResponse{Result: apperr.ResultSuccess})
}

// HandleRadio はPOST /api/v1/radios/:radio のハンドラー。
func (h *SessionHandler) HandleRadio(c *gin.Context) {
	radio, ok := model.ParseRadio(c.Param("radio"))
	if !ok {
		httputil.WriteError(c, httputil.NotFound("unknown radio: "+c.Param("radio")))
		return
	}

	var req dto.RadioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "RADIO_ERR", &req, err)
		return
	}

	h.svc.OnRadioStateChanged(radio, *req.Enabled)
	c.Status(http.StatusAccepted)
}

// HandleLink はPOST /api/v1/link のハンドラー。
func (h *SessionHandler) HandleLink(c *gin.Context) {
	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "LINK_ERR", &req, err)
		return
	}

	h.svc.SetLinkLayerOn(*req.On)
	c.Status(http.StatusAccepted)
}

// handleError はエラーを結果コードに応じたProblemDetailで返す。
func (h *SessionHandler) handleError(c *gin.Context, eventID string, err error) {
	traceID, _ := c.Get(TraceIDKey)
	problem := httputil.FromError(err)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "request failed",
		"trace_id", traceID,
		"event_id", eventID,
		"http_status", problem.Status,
		"result", problem.Code,
		"error", err.Error(),
	)
	httputil.WriteError(c, problem)
}

// badRequest はバインドエラーをフィールド名付きの400レスポンスで返す。
func (h *SessionHandler) badRequest(c *gin.Context, eventID string, req any, err error) {
	traceID, _ := c.Get(TraceIDKey)
	verr := bindError(req, err)
	slog.Warn("invalid request body",
		"trace_id", traceID,
		"event_id", eventID,
		"field", verr.Field,
		"error", err.Error(),
	)
	httputil.WriteError(c, httputil.FromError(verr))
}
