package server

import (
	"github.com/gin-gonic/gin"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/handler"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.SessionHandler) {
	// ヘルスチェック
	engine.GET("/health", h.HandleHealth)

	// API v1
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/session", h.HandleGetSession)
		v1.POST("/session/enable", h.HandleEnable)

		v1.POST("/datagrams", h.HandleSendDatagram)
		v1.POST("/datagrams/poll", h.HandlePollDatagrams)
		v1.GET("/datagrams/inbox", h.HandleInbox)
		v1.GET("/datagrams/stats", h.HandleStats)

		v1.POST("/radios/:radio", h.HandleRadio)
		v1.POST("/link", h.HandleLink)
	}
}
