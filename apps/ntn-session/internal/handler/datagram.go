package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/dto"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/httputil"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// HandleSendDatagram はPOST /api/v1/datagrams のハンドラー。
// 送信結果が確定するまでレスポンスを返さない。
func (h *SessionHandler) HandleSendDatagram(c *gin.Context) {
	traceID, _ := c.Get(TraceIDKey)

	var req dto.DatagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "DATAGRAM_SEND_ERR", &req, err)
		return
	}
	if len(req.Payload) == 0 {
		httputil.WriteError(c, httputil.FromError(apperr.NewValidationError("payload", "must not be empty")))
		return
	}

	id, err := h.svc.SendDatagramSync(c.Request.Context(), req.Payload, req.Emergency, req.NeedsPointingUI)
	if err != nil {
		h.handleError(c, "DATAGRAM_SEND_ERR", err)
		return
	}

	slog.Info("datagram request completed",
		"trace_id", traceID,
		"event_id", "DATAGRAM_SEND_OK",
		"datagram_id", id,
		"emergency", req.Emergency,
	)
	c.JSON(http.StatusOK, dto.DatagramResponse{DatagramID: id, Result: apperr.ResultSuccess})
}

// HandlePollDatagrams はPOST /api/v1/datagrams/poll のハンドラー。
func (h *SessionHandler) HandlePollDatagrams(c *gin.Context) {
	if err := h.svc.PollDatagramsSync(c.Request.Context()); err != nil {
		h.handleError(c, "DATAGRAM_POLL_ERR", err)
		return
	}
	c.JSON(http.StatusOK, dto.ResultResponse{Result: apperr.ResultSuccess})
}

// HandleInbox はGET /api/v1/datagrams/inbox のハンドラー。
// クエリパラメータlimitで件数を指定する（既定はconfig.InboxCapacity）。
func (h *SessionHandler) HandleInbox(c *gin.Context) {
	limit := config.InboxCapacity
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(c, httputil.FromError(apperr.NewValidationError("limit", "must be a positive integer")))
			return
		}
		limit = n
	}

	items, err := h.inbox.List(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, "INBOX_ERR", err)
		return
	}
	c.JSON(http.StatusOK, dto.InboxResponse{Datagrams: items})
}

// HandleStats はGET /api/v1/datagrams/stats のハンドラー。
func (h *SessionHandler) HandleStats(c *gin.Context) {
	ctx := c.Request.Context()

	emergency, err := h.stats.Get(ctx, model.PriorityEmergency)
	if err != nil {
		h.handleError(c, "STATS_ERR", err)
		return
	}
	normal, err := h.stats.Get(ctx, model.PriorityNormal)
	if err != nil {
		h.handleError(c, "STATS_ERR", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{Emergency: emergency, Normal: normal})
}
