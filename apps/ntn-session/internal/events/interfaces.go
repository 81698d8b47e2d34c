// Package events はNATS経由のモデムプッシュイベント受信とセッション状態の配信を提供する。
package events

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=events

import (
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/modem"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Sink はプッシュイベントの転送先。*controller.Controllerが実装する。
type Sink interface {
	modem.EventSink
	OnRadioStateChanged(radio model.Radio, on bool)
	SetLinkLayerOn(on bool)
}

// Conn はセッション状態の配信に使うNATS接続の操作。*nats.Connが実装する。
type Conn interface {
	Publish(subject string, data []byte) error
}
