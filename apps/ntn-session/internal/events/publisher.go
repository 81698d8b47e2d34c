package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
)

// Publisher はセッション状態の変化を<prefix>.session.stateに配信する。
// session.Listenerを実装する。
type Publisher struct {
	conn    Conn
	subject string
	now     func() time.Time
}

// NewPublisher は新しいPublisherを生成する。
func NewPublisher(conn Conn, prefix string) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: SessionStateSubject(prefix),
		now:     time.Now,
	}
}

// OnSessionStateChanged はセッション状態を配信する。
// NATSのPublishはバッファに書き込むだけのためイベントループ上で呼び出してよい。
func (p *Publisher) OnSessionStateChanged(state session.State) {
	msg := SessionStateMessage{
		ID:         uuid.NewString(),
		State:      string(state),
		ModemState: state.ModemState(),
		ChangedAt:  p.now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal session state",
			"event_id", "NATS_PUBLISH_ERR",
			"error", err,
		)
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("failed to publish session state",
			"event_id", "NATS_PUBLISH_ERR",
			"subject", p.subject,
			"session_state", state,
			"error", err,
		)
	}
}
