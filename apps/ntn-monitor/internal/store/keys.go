// Package store はNTNセッション制御サービスがValkeyに書き込んだデータの読み出しを提供する。
package store

// Valkeyキー（ntn-sessionと共通）
const (
	KeySessionState   = "ntn:session"
	KeySessionHistory = "ntn:session:history"
	KeyInbox          = "ntn:inbox"
	KeyStatsPrefix    = "ntn:stats:"
)

// StatsKey は優先度ごとの送信メトリクスのキーを返す。
func StatsKey(priority string) string {
	return KeyStatsPrefix + priority
}
