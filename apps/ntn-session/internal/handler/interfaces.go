package handler

import (
	"context"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/controller"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/store"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// SessionService はハンドラーが使うセッション制御の操作。*controller.Controllerが実装する。
type SessionService interface {
	SnapshotSync(ctx context.Context) (controller.Snapshot, error)
	RequestEnabledSync(ctx context.Context, want, demoMode, emergency bool) error
	SendDatagramSync(ctx context.Context, payload []byte, emergency, needsPointingUI bool) (uint64, error)
	PollDatagramsSync(ctx context.Context) error
	OnRadioStateChanged(radio model.Radio, on bool)
	SetLinkLayerOn(on bool)
}

// InboxReader は受信データグラムの読み出し。
type InboxReader interface {
	List(ctx context.Context, limit int) ([]*model.ReceivedDatagram, error)
}

// StatsReader は送信メトリクスの読み出し。
type StatsReader interface {
	Get(ctx context.Context, priority model.Priority) (*store.SendStats, error)
}
