package model

// Priority はデータグラムの優先度クラスを表す。
type Priority string

const (
	// PriorityEmergency は緊急（SOS）データグラム。常に通常より先に送信される
	PriorityEmergency Priority = "emergency"
	// PriorityNormal は通常データグラム
	PriorityNormal Priority = "normal"
)

// PriorityOf はemergencyフラグから優先度クラスを返す。
func PriorityOf(emergency bool) Priority {
	if emergency {
		return PriorityEmergency
	}
	return PriorityNormal
}

// IsEmergency は緊急データグラムかどうかを判定する。
func (p Priority) IsEmergency() bool {
	return p == PriorityEmergency
}

// ReceivedDatagram は衛星経由で受信したデータグラムを表す。
// Valkeyキー: ntn:inbox（リスト）
type ReceivedDatagram struct {
	Payload    []byte `json:"payload"`     // 受信ペイロード（JSONではbase64）
	ReceivedAt int64  `json:"received_at"` // 受信時刻（Unixミリ秒）
	Pending    int    `json:"pending"`     // 受信時点のモデム側未受信件数
}

// NewReceivedDatagram は新しいReceivedDatagramを生成する。
func NewReceivedDatagram(payload []byte, receivedAt int64, pending int) *ReceivedDatagram {
	return &ReceivedDatagram{
		Payload:    payload,
		ReceivedAt: receivedAt,
		Pending:    pending,
	}
}
