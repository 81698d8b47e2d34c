package model

// Capabilities はモデムが報告する衛星機能情報を表す。
type Capabilities struct {
	RadioTechnologies   []string `json:"radio_technologies"`     // 対応無線方式（NB_IOT_NTN等）
	PointingRequired    bool     `json:"is_pointing_required"`   // アンテナ指向が必要か
	MaxBytesPerDatagram int      `json:"max_bytes_per_datagram"` // 1データグラムの最大バイト数
}

// AllowsPayload はペイロード長が最大バイト数以内かどうかを判定する。
// MaxBytesPerDatagramが0以下の場合は上限なしとみなす。
func (c *Capabilities) AllowsPayload(n int) bool {
	if c == nil || c.MaxBytesPerDatagram <= 0 {
		return true
	}
	return n <= c.MaxBytesPerDatagram
}

// SignalStrength はNTN信号強度を表す。
type SignalStrength struct {
	Level int `json:"level"` // 0（圏外）〜4（強）
}
