package events

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
)

// Connect はNATSに接続する。切断時は再接続間隔を倍増させながら上限まで再試行する。
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("ntn-session"),
		nats.MaxReconnects(config.NATSMaxReconnects),
		nats.CustomReconnectDelay(reconnectDelay),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("NATS disconnected",
				"event_id", "NATS_CONN_ERR",
				"error", err,
			)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected",
				"event_id", "NATS_RECONNECTED",
				"url", nc.ConnectedUrl(),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

// reconnectDelay は試行回数に応じた再接続間隔を返す。
func reconnectDelay(attempts int) time.Duration {
	d := config.NATSReconnectWait
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= config.NATSMaxReconnectWait {
			return config.NATSMaxReconnectWait
		}
	}
	return d
}
