// Package modem はモデムゲートウェイとの要求・応答・プッシュイベントの契約と実装を提供する。
package modem

import (
	"context"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=modem

// Gateway はモデムへの要求インターフェースを定義する。
// 各メソッドはモデムの応答まで呼び出し元をブロックする。
type Gateway interface {
	// RequestEnabled は衛星モードの有効化・無効化を要求する
	RequestEnabled(ctx context.Context, enable, demoMode, emergency bool) error
	// IsEnabled は衛星モードが有効かどうかを問い合わせる
	IsEnabled(ctx context.Context) (bool, error)
	// IsSupported は衛星機能をサポートしているかを問い合わせる
	IsSupported(ctx context.Context) (bool, error)
	// Capabilities は衛星機能情報を問い合わせる
	Capabilities(ctx context.Context) (*model.Capabilities, error)
	// IsProvisioned はプロビジョニング済みかどうかを問い合わせる
	IsProvisioned(ctx context.Context) (bool, error)
	// SendDatagram はデータグラムを送信する
	SendDatagram(ctx context.Context, payload []byte, emergency, needsPointingUI bool) error
	// AbortAllSends は送信中の全データグラムの中断を要求する
	AbortAllSends(ctx context.Context) error
	// PollPendingDatagrams は未受信データグラムの取得を要求する
	PollPendingDatagrams(ctx context.Context) error
	// SetListeningEnabled は着信待ち受けモードを切り替える
	SetListeningEnabled(ctx context.Context, enabled bool, timeout time.Duration) error
	// SetTerrestrialScanning は地上網スキャンの可否を切り替える
	SetTerrestrialScanning(ctx context.Context, enabled bool) error
	// SetSignalStrengthReporting は信号強度通知の開始・停止を要求する
	SetSignalStrengthReporting(ctx context.Context, enabled bool) error
}

// EventSink はモデムからのプッシュイベントを受け取る。
// 任意のゴルーチンから呼び出される。
type EventSink interface {
	OnModemStateChanged(state model.ModemState)
	OnProvisionStateChanged(provisioned bool)
	OnDatagramReceived(payload []byte, pending int)
	OnCapabilitiesChanged(caps model.Capabilities)
	OnSignalStrengthChanged(strength model.SignalStrength)
}
