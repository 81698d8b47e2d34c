package events

import "github.com/oyaguma3/ntn-session-poc/pkg/model"

// ModemStateEvent はモデム状態変化イベント
type ModemStateEvent struct {
	State string `json:"state"`
}

// ProvisionEvent はプロビジョニング状態変化イベント
type ProvisionEvent struct {
	Provisioned bool `json:"provisioned"`
}

// DatagramEvent はデータグラム受信イベント。Payloadがnullの場合は未受信データグラムなし。
type DatagramEvent struct {
	Payload []byte `json:"payload"` // base64
	Pending int    `json:"pending"`
}

// RadioEvent は共存無線の状態変化イベント
type RadioEvent struct {
	Radio string `json:"radio"`
	On    bool   `json:"on"`
}

// LinkEvent は物理リンク層のオン・オフイベント
type LinkEvent struct {
	On bool `json:"on"`
}

// CapabilitiesEvent と SignalEvent はモデルの型をそのまま使う。
type (
	CapabilitiesEvent = model.Capabilities
	SignalEvent       = model.SignalStrength
)

// SessionStateMessage は<prefix>.session.stateに配信するメッセージ
type SessionStateMessage struct {
	ID         string           `json:"id"`
	State      string           `json:"state"`
	ModemState model.ModemState `json:"modem_state"`
	ChangedAt  int64            `json:"changed_at"` // Unixミリ秒
}
