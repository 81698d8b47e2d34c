package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID      = "trace_id"
	FieldEventID      = "event_id"
	FieldError        = "error"
	FieldLatencyMs    = "latency_ms"
	FieldHTTPStatus   = "http_status"
	FieldRequestID    = "request_id"
	FieldDatagramID   = "datagram_id"
	FieldSessionState = "session_state"
	FieldModemState   = "modem_state"
	FieldPendingCount = "pending_count"
	FieldPayload      = "payload"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithRequestID は有効化要求IDのslog.Attrを返す。
func WithRequestID(id uint64) slog.Attr {
	return slog.Uint64(FieldRequestID, id)
}

// WithDatagramID はデータグラムIDのslog.Attrを返す。
func WithDatagramID(id uint64) slog.Attr {
	return slog.Uint64(FieldDatagramID, id)
}

// WithSessionState はセッション状態のslog.Attrを返す。
func WithSessionState(state string) slog.Attr {
	return slog.String(FieldSessionState, state)
}

// WithModemState はモデム状態のslog.Attrを返す。
func WithModemState(state string) slog.Attr {
	return slog.String(FieldModemState, state)
}

// WithPendingCount は送信待ち件数のslog.Attrを返す。
func WithPendingCount(count int) slog.Attr {
	return slog.Int(FieldPendingCount, count)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithPayload はマスキングされたペイロードのslog.Attrを返す。
func (cf *CommonFields) WithPayload(payload []byte) slog.Attr {
	return slog.String(FieldPayload, cf.masker.Payload(payload))
}

// DatagramLogFields はデータグラムログ用の共通フィールドを返す。
func (cf *CommonFields) DatagramLogFields(eventID string, datagramID uint64, payload []byte) []any {
	return []any{
		WithEventID(eventID),
		WithDatagramID(datagramID),
		cf.WithPayload(payload),
	}
}
