// Package datagram はデータグラムの送信キュー制御と受信ポーリングを提供する。
package datagram

import (
	"context"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Loop はDispatcher・Receiverが依存するイベントループの操作。
// *eventloop.Loopが実装する。
type Loop interface {
	Now() time.Time
	Schedule(tag string, delay time.Duration, fn func()) bool
	Cancel(tag string) bool
	IsScheduled(tag string) bool
	Async(work func(ctx context.Context) error, done func(error))
}

// Sender はモデムへのデータグラム送信操作。
type Sender interface {
	SendDatagram(ctx context.Context, payload []byte, emergency, needsPointingUI bool) error
	AbortAllSends(ctx context.Context) error
}

// Poller はモデムへの未受信データグラム取得要求。
type Poller interface {
	PollPendingDatagrams(ctx context.Context) error
}

// Inbox は受信データグラムの保存先。
type Inbox interface {
	Push(ctx context.Context, d *model.ReceivedDatagram) error
}

// SendRecord は送信結果のメトリクス1件分。
type SendRecord struct {
	Priority model.Priority
	Size     int // ROUNDING_UNIT単位に切り上げたバイト数
	Result   string
	Latency  time.Duration
	Demo     bool
}

// Recorder は送信結果のメトリクスを記録する。
type Recorder interface {
	RecordSend(ctx context.Context, rec SendRecord) error
}

// Drainer は保留中の送信を再開する。
type Drainer interface {
	DrainNext()
}
