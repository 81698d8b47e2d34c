package modem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// simulatedSignalLevel はシミュレーターが通知する信号強度
const simulatedSignalLevel = 3

// SimulatorConfig はSimulatorの初期設定。
type SimulatorConfig struct {
	Supported      bool
	Provisioned    bool
	AttachRequired bool
	Capabilities   model.Capabilities
}

// Simulator はモデムゲートウェイを使用しない場合のインプロセス実装。
// 要求には即座に成功応答し、実機と同様のプッシュイベントをEventSinkへ通知する。
type Simulator struct {
	mu sync.Mutex

	cfg     SimulatorConfig
	sink    EventSink
	enabled bool
	inbox   [][]byte
	sent    int
}

// NewSimulator は新しいSimulatorを生成する。
func NewSimulator(cfg SimulatorConfig) *Simulator {
	return &Simulator{cfg: cfg}
}

// SetSink はプッシュイベントの通知先を設定する。
func (s *Simulator) SetSink(sink EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Deliver は次回のポーリングで受信されるデータグラムを追加する。
func (s *Simulator) Deliver(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox = append(s.inbox, append([]byte(nil), payload...))
}

// SentCount はモデムに届いたデータグラムの件数を返す。
func (s *Simulator) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

// RequestEnabled は有効状態を切り替え、モデム状態を通知する。
func (s *Simulator) RequestEnabled(ctx context.Context, enable, demoMode, emergency bool) error {
	s.mu.Lock()
	if !s.cfg.Supported {
		s.mu.Unlock()
		return apperr.ErrNotSupported
	}
	s.enabled = enable
	sink := s.sink
	attach := s.cfg.AttachRequired
	s.mu.Unlock()

	slog.Debug("simulated modem enablement",
		"event_id", "MODEM_SIM_ENABLE",
		"enable", enable,
		"demo_mode", demoMode,
		"emergency", emergency,
	)

	if sink == nil {
		return nil
	}
	switch {
	case !enable:
		sink.OnModemStateChanged(model.ModemStateOff)
	case attach:
		sink.OnModemStateChanged(model.ModemStateNotConnected)
	default:
		sink.OnModemStateChanged(model.ModemStateIdle)
	}
	return nil
}

// IsEnabled は有効状態を返す。
func (s *Simulator) IsEnabled(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled, nil
}

// IsSupported は衛星機能のサポート有無を返す。
func (s *Simulator) IsSupported(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Supported, nil
}

// Capabilities は設定された衛星機能情報を返す。
func (s *Simulator) Capabilities(ctx context.Context) (*model.Capabilities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	caps := s.cfg.Capabilities
	caps.RadioTechnologies = append([]string(nil), caps.RadioTechnologies...)
	return &caps, nil
}

// IsProvisioned はプロビジョニング状態を返す。
func (s *Simulator) IsProvisioned(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Provisioned, nil
}

// SendDatagram は送信を受け付けて成功を返す。無効状態では失敗する。
func (s *Simulator) SendDatagram(ctx context.Context, payload []byte, emergency, needsPointingUI bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return apperr.ErrInvalidState
	}
	if limit := s.cfg.Capabilities.MaxBytesPerDatagram; limit > 0 && len(payload) > limit {
		return apperr.ErrPayloadTooLarge
	}
	s.sent++
	return nil
}

// AbortAllSends は何もせず成功を返す。
func (s *Simulator) AbortAllSends(ctx context.Context) error {
	return nil
}

// PollPendingDatagrams は保持しているデータグラムを1件ずつ通知する。
func (s *Simulator) PollPendingDatagrams(ctx context.Context) error {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return apperr.ErrInvalidState
	}
	sink := s.sink
	var payload []byte
	if len(s.inbox) > 0 {
		payload = s.inbox[0]
		s.inbox = s.inbox[1:]
	}
	pending := len(s.inbox)
	s.mu.Unlock()

	if sink != nil {
		sink.OnDatagramReceived(payload, pending)
	}
	return nil
}

// SetListeningEnabled は待ち受けモードの切替を受け付ける。
func (s *Simulator) SetListeningEnabled(ctx context.Context, enabled bool, timeout time.Duration) error {
	slog.Debug("simulated listening mode",
		"event_id", "MODEM_SIM_LISTENING",
		"enabled", enabled,
		"timeout", timeout,
	)
	return nil
}

// SetTerrestrialScanning は地上網スキャンの切替を受け付ける。
// 接続必須の構成でスキャンを停止すると衛星ネットワークに接続済みとなる。
func (s *Simulator) SetTerrestrialScanning(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	sink := s.sink
	connect := !enabled && s.enabled && s.cfg.AttachRequired
	s.mu.Unlock()

	if connect && sink != nil {
		sink.OnModemStateChanged(model.ModemStateConnected)
	}
	return nil
}

// SetSignalStrengthReporting は通知開始時に現在の信号強度を1回通知する。
func (s *Simulator) SetSignalStrengthReporting(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()

	if enabled && sink != nil {
		sink.OnSignalStrengthChanged(model.SignalStrength{Level: simulatedSignalLevel})
	}
	return nil
}
