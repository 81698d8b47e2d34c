package dto

import (
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/controller"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/store"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// HealthResponse はヘルスチェックレスポンスを表す。
type HealthResponse struct {
	Status string `json:"status"`
}

// ResultResponse は要求の結果コードを表す。
type ResultResponse struct {
	Result string `json:"result"`
}

// DatagramResponse はデータグラム送信結果を表す。
type DatagramResponse struct {
	DatagramID uint64 `json:"datagram_id"`
	Result     string `json:"result"`
}

// TransferResponse はデータグラム転送状態を表す。
type TransferResponse struct {
	Send           string `json:"send"`
	SendPending    int    `json:"send_pending"`
	Receive        string `json:"receive"`
	ReceivePending int    `json:"receive_pending"`
}

// SessionResponse はセッション状態のスナップショットを表す。
type SessionResponse struct {
	SessionState   string                `json:"session_state"`
	ModemState     string                `json:"modem_state"`
	Supported      bool                  `json:"supported"`
	Provisioned    bool                  `json:"provisioned"`
	Enabled        *bool                 `json:"enabled"` // 不明の場合はnull
	DemoMode       bool                  `json:"demo_mode"`
	Emergency      bool                  `json:"emergency"`
	LinkLayerOn    bool                  `json:"link_layer_on"`
	EnableInFlight bool                  `json:"enable_in_flight"`
	PendingCount   int                   `json:"pending_count"`
	Transfer       TransferResponse      `json:"transfer"`
	Capabilities   *model.Capabilities   `json:"capabilities,omitempty"`
	SignalStrength *model.SignalStrength `json:"signal_strength,omitempty"`
	RadiosOn       []model.Radio         `json:"radios_on"`
}

// NewSessionResponse はSnapshotからSessionResponseを生成する。
func NewSessionResponse(s controller.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		SessionState:   string(s.SessionState),
		ModemState:     string(s.ModemState),
		Supported:      s.Supported,
		Provisioned:    s.Provisioned,
		DemoMode:       s.DemoMode,
		Emergency:      s.Emergency,
		LinkLayerOn:    s.LinkLayerOn,
		EnableInFlight: s.EnableInFlight,
		PendingCount:   s.PendingCount,
		Transfer: TransferResponse{
			Send:           string(s.Transfer.Send),
			SendPending:    s.Transfer.SendPending,
			Receive:        string(s.Transfer.Receive),
			ReceivePending: s.Transfer.ReceivePending,
		},
		Capabilities:   s.Capabilities,
		SignalStrength: s.SignalStrength,
		RadiosOn:       s.RadiosOn,
	}
	if s.EnabledKnown {
		enabled := s.Enabled
		resp.Enabled = &enabled
	}
	if resp.RadiosOn == nil {
		resp.RadiosOn = []model.Radio{}
	}
	return resp
}

// InboxResponse は受信データグラム一覧を表す。
type InboxResponse struct {
	Datagrams []*model.ReceivedDatagram `json:"datagrams"`
}

// StatsResponse は優先度ごとの送信メトリクスを表す。
type StatsResponse struct {
	Emergency *store.SendStats `json:"emergency"`
	Normal    *store.SendStats `json:"normal"`
}
