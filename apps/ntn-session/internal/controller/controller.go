// Package controller はモデムの有効化・無効化要求とモデムからの通知を
// セッション状態機械・データグラム送受信に橋渡しする。
package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/datagram"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/eventloop"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/modem"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/logging"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Option はControllerのオプション設定関数。
type Option func(*options)

type options struct {
	provision ProvisionStore
	inbox     datagram.Inbox
	recorder  datagram.Recorder
	fields    *logging.CommonFields
}

// WithProvisionStore はプロビジョニング状態の保存先を設定する。
func WithProvisionStore(s ProvisionStore) Option {
	return func(o *options) { o.provision = s }
}

// WithInbox は受信データグラムの保存先を設定する。
func WithInbox(i datagram.Inbox) Option {
	return func(o *options) { o.inbox = i }
}

// WithRecorder は送信メトリクスの記録先を設定する。
func WithRecorder(r datagram.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogFields はペイロードのログ出力方法を設定する。
func WithLogFields(cf *logging.CommonFields) Option {
	return func(o *options) { o.fields = cf }
}

// Controller は衛星セッションの制御を統括する。
// 公開メソッドのうちOn*とSetLinkLayerOnは任意のゴルーチンから呼び出せる。
// それ以外はイベントループ上で呼び出すか、*Syncメソッドを使用する。
type Controller struct {
	loop      *eventloop.Loop
	gw        modem.Gateway
	cfg       *config.Config
	provision ProvisionStore

	machine    *session.Machine
	tracker    *datagram.Tracker
	dispatcher *datagram.Dispatcher
	receiver   *datagram.Receiver

	// 有効化要求
	current   *enableRequest
	pending   map[uint64]*enableRequest
	nextReqID uint64

	// キャッシュ
	supported    bool
	provisioned  bool
	enabledKnown bool
	enabled      bool
	demoMode     bool
	emergency    bool
	linkLayerOn  bool
	caps         *model.Capabilities
	signal       *model.SignalStrength
	modemState   model.ModemState
	radios       map[model.Radio]bool
}

// New は新しいControllerを生成する。
func New(loop *eventloop.Loop, gw modem.Gateway, cfg *config.Config, opts ...Option) *Controller {
	o := &options{fields: logging.NewCommonFields(nil)}
	for _, opt := range opts {
		opt(o)
	}

	c := &Controller{
		loop:        loop,
		gw:          gw,
		cfg:         cfg,
		provision:   o.provision,
		pending:     make(map[uint64]*enableRequest),
		linkLayerOn: true,
		modemState:  model.ModemStateUnknown,
		radios:      make(map[model.Radio]bool),
	}
	for _, r := range cfg.Radios() {
		c.radios[r] = false
	}

	c.tracker = datagram.NewTracker(cfg.AttachRequired)
	dopts := []datagram.Option{datagram.WithLogFields(o.fields)}
	if o.recorder != nil {
		dopts = append(dopts, datagram.WithRecorder(o.recorder))
	}
	c.dispatcher = datagram.NewDispatcher(loop, gw, c.tracker, datagram.Config{
		SendResponseTimeout:     cfg.SendResponseTimeout,
		WaitForConnectedTimeout: cfg.WaitForConnectedTimeout,
		DemoSendDelay:           cfg.DemoSendDelay,
		DemoSendToModem:         cfg.DemoSendToModem,
		RoundingUnit:            cfg.RoundingUnit,
		MaxID:                   config.MaxDatagramID,
	}, dopts...)
	c.receiver = datagram.NewReceiver(loop, gw, o.inbox, c.tracker, c.dispatcher, datagram.ReceiverConfig{
		PollResponseTimeout:     cfg.PollResponseTimeout,
		WaitForConnectedTimeout: cfg.WaitForConnectedTimeout,
	})
	c.machine = session.NewMachine(loop, c, session.Timing{
		ListeningFromSending:   cfg.ListeningFromSending,
		ListeningFromReceiving: cfg.ListeningFromReceiving,
		DemoListening:          cfg.DemoListening,
		Inactivity:             cfg.NBIoTInactivityTimeout,
		DemoInactivity:         cfg.DemoNBIoTInactivityTimeout,
	}, cfg.AttachRequired)

	// 転送状態の変化は現在の処理が完了してから状態機械に渡す
	c.tracker.Subscribe(func(st model.DatagramTransferState) {
		loop.Post(func() {
			c.machine.Handle(session.TransferStateChanged(st))
		})
	})
	c.machine.Register(session.ListenerFunc(c.onSessionStateChanged))
	return c
}

// Start はゲートウェイからサポート状況・プロビジョニング状態・有効状態・
// 衛星機能情報を取得し、状態機械を初期化する。
// 取得は呼び出し元のゴルーチンで行い、初期化はイベントループ上で行う。
func (c *Controller) Start(ctx context.Context) error {
	supported, err := c.gw.IsSupported(ctx)
	if err != nil {
		return fmt.Errorf("failed to query satellite support: %w", err)
	}
	if !c.cfg.SatelliteSupported {
		supported = false
	}

	var (
		provisioned bool
		enabled     bool
		caps        *model.Capabilities
	)
	if supported {
		provisioned = c.loadProvisioned(ctx)
		if enabled, err = c.gw.IsEnabled(ctx); err != nil {
			return fmt.Errorf("failed to query satellite enabled state: %w", err)
		}
		if caps, err = c.gw.Capabilities(ctx); err != nil {
			slog.Warn("failed to query satellite capabilities",
				"event_id", "CAPABILITIES_ERR",
				"error", err,
			)
		}
	}

	slog.Info("satellite modem status loaded",
		"event_id", "CONTROLLER_START",
		"supported", supported,
		"provisioned", provisioned,
		"enabled", enabled,
	)

	c.loop.Post(func() {
		c.supported = supported
		c.provisioned = provisioned
		c.caps = caps
		c.machine.Handle(session.SupportChanged(supported))
		if !supported {
			return
		}
		c.enabledKnown = true
		c.enabled = enabled
		if enabled {
			// 前回のセッションが残っている場合は無効化して初期状態に揃える
			c.submit(c.newRequest(false, false, false, logResult("startup disable")))
		}
	})
	return nil
}

// loadProvisioned はゲートウェイからプロビジョニング状態を取得する。
// 取得できない場合は保存済みの値を使用する。
func (c *Controller) loadProvisioned(ctx context.Context) bool {
	provisioned, err := c.gw.IsProvisioned(ctx)
	if err == nil {
		c.persistProvisioned(provisioned)
		return provisioned
	}
	slog.Warn("failed to query provisioning state",
		"event_id", "PROVISION_QUERY_ERR",
		"error", err,
	)
	if c.provision == nil {
		return false
	}
	stored, found, serr := c.provision.Provisioned(ctx)
	if serr != nil || !found {
		slog.Warn("persisted provisioning state unavailable",
			"event_id", "PROVISION_LOAD_ERR",
			"found", found,
			"error", serr,
		)
		return false
	}
	return stored
}

// RegisterSessionListener はセッション状態のリスナーを登録してIDを返す。
// イベントループ開始前、またはイベントループ上で呼び出す。
func (c *Controller) RegisterSessionListener(l session.Listener) string {
	return c.machine.Register(l)
}

// UnregisterSessionListener はリスナーの登録を解除する。
func (c *Controller) UnregisterSessionListener(id string) bool {
	return c.machine.Unregister(id)
}

// SessionState は現在のセッション状態を返す。
func (c *Controller) SessionState() session.State {
	return c.machine.State()
}

// onSessionStateChanged はセッション状態をデータグラム送受信側のモデム状態として伝える。
func (c *Controller) onSessionStateChanged(state session.State) {
	ms := state.ModemState()
	c.dispatcher.OnModemStateChanged(ms)
	c.receiver.OnModemStateChanged(ms)
}

// logResult は結果をログに記録するだけのコールバックを返す。
func logResult(what string) func(error) {
	return func(err error) {
		if err != nil {
			slog.Warn("internal request failed",
				"event_id", "INTERNAL_REQUEST_ERR",
				"request", what,
				"error", err,
			)
			return
		}
		slog.Debug("internal request completed", "request", what)
	}
}
