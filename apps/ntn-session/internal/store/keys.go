package store

// Valkeyキー
const (
	KeyProvisioned    = "ntn:provisioned"     // プロビジョニング状態（"1" / "0"）
	KeyInbox          = "ntn:inbox"           // 受信データグラム（リスト、新しい順）
	KeyStatsPrefix    = "ntn:stats:"          // 送信メトリクス（優先度ごとのハッシュ）
	KeySessionState   = "ntn:session"         // 現在のセッション状態（ハッシュ）
	KeySessionHistory = "ntn:session:history" // セッション状態の履歴（リスト、新しい順）
)

// 送信メトリクスのハッシュフィールド
const (
	fieldCount          = "count"
	fieldBytes          = "bytes"
	fieldLatencyMsTotal = "latency_ms_total"
	fieldDemoCount      = "demo_count"
	fieldResultPrefix   = "result:"
)

// sessionHistoryCapacity はセッション状態履歴の保持件数
const sessionHistoryCapacity = 50
