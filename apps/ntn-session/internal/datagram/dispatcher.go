package datagram

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/logging"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// タイマーのタグ
const (
	timerSendResponse     = "datagram.send_response"
	timerWaitForConnected = "datagram.wait_for_connected"
	timerDemoAck          = "datagram.demo_ack"
)

// defaultMaxID はConfig.MaxIDが未指定の場合のID上限
const defaultMaxID = 1 << 16

// Config はDispatcherの動作設定。
type Config struct {
	SendResponseTimeout     time.Duration
	WaitForConnectedTimeout time.Duration
	DemoSendDelay           time.Duration
	DemoSendToModem         bool
	RoundingUnit            int
	MaxID                   uint64
}

// Option はDispatcherのオプション設定関数。
type Option func(*Dispatcher)

// WithRecorder は送信結果のメトリクス記録先を設定する。
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// WithLogFields はペイロードのログ出力方法を設定する。
func WithLogFields(cf *logging.CommonFields) Option {
	return func(d *Dispatcher) {
		d.fields = cf
	}
}

// Dispatcher は送信待ちデータグラムを優先度順に1件ずつモデムへ送信する。
// 緊急キューが空でない限り通常キューは処理しない。送信失敗時は残りの全要求を中断する。
// すべてのメソッドはイベントループ上で呼び出す。
type Dispatcher struct {
	loop     Loop
	sender   Sender
	tracker  *Tracker
	recorder Recorder
	fields   *logging.CommonFields
	cfg      Config

	emergency *queue
	normal    *queue
	nextID    uint64
	inFlight  *Request
	demoMode  bool
}

// NewDispatcher は新しいDispatcherを生成する。
func NewDispatcher(loop Loop, sender Sender, tracker *Tracker, cfg Config, opts ...Option) *Dispatcher {
	if cfg.MaxID == 0 {
		cfg.MaxID = defaultMaxID
	}
	d := &Dispatcher{
		loop:      loop,
		sender:    sender,
		tracker:   tracker,
		fields:    logging.NewCommonFields(nil),
		cfg:       cfg,
		emergency: newQueue(),
		normal:    newQueue(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetDemoMode はデモモードを切り替える。
func (d *Dispatcher) SetDemoMode(demo bool) {
	d.demoMode = demo
}

// PendingCount は送信待ち（送信中を含む）の件数を返す。
func (d *Dispatcher) PendingCount() int {
	return d.emergency.len() + d.normal.len()
}

// InFlightID は送信中の要求IDを返す。送信中でなければfalseを返す。
func (d *Dispatcher) InFlightID() (uint64, bool) {
	if d.inFlight == nil {
		return 0, false
	}
	return d.inFlight.ID, true
}

// Enqueue はデータグラムを優先度に応じたキューに追加してIDを返す。
// cbは送信結果で必ず1回だけ呼び出される。
func (d *Dispatcher) Enqueue(priority model.Priority, payload []byte, needsPointingUI bool, cb func(error)) uint64 {
	id := d.allocateID()
	r := &Request{
		ID:              id,
		Priority:        priority,
		Payload:         payload,
		NeedsPointingUI: needsPointingUI,
		callback:        cb,
	}
	d.queueFor(priority).push(r)

	slog.Debug("datagram enqueued",
		append(d.fields.DatagramLogFields("DATAGRAM_ENQUEUED", id, payload),
			"priority", priority,
			"pending_count", d.PendingCount(),
		)...,
	)

	if d.tracker.NeedsWaitingForConnected() {
		d.waitForConnected()
		return id
	}
	d.DrainNext()
	return id
}

// DrainNext は送信中の要求がなく受信処理も行われていなければ、
// 緊急キュー、通常キューの順に先頭の要求を送信する。
func (d *Dispatcher) DrainNext() {
	if d.inFlight != nil {
		return
	}
	if !d.tracker.IsReceiveIdle() {
		slog.Debug("datagram send deferred while receiving", "event_id", "DATAGRAM_DEFERRED")
		return
	}
	r := d.emergency.front()
	if r == nil {
		r = d.normal.front()
	}
	if r == nil {
		return
	}
	if d.tracker.NeedsWaitingForConnected() {
		d.waitForConnected()
		return
	}

	d.inFlight = r
	r.SendStartedAt = d.loop.Now()
	d.tracker.UpdateSend(model.TransferSending, d.PendingCount())

	id := r.ID
	if d.demoMode && !d.cfg.DemoSendToModem {
		d.loop.Schedule(timerDemoAck, d.cfg.DemoSendDelay, func() {
			d.CompleteSend(id, nil)
		})
		return
	}

	payload := r.Payload
	emergency := r.Priority.IsEmergency()
	pointing := r.NeedsPointingUI
	d.loop.Async(func(ctx context.Context) error {
		return d.sender.SendDatagram(ctx, payload, emergency, pointing)
	}, func(err error) {
		d.CompleteSend(id, err)
	})
	d.loop.Schedule(timerSendResponse, d.cfg.SendResponseTimeout, func() {
		d.OnResponseTimeout(id)
	})
}

// CompleteSend は送信結果を処理する。送信中の要求と一致しないIDは破棄する。
func (d *Dispatcher) CompleteSend(id uint64, err error) {
	if d.inFlight == nil || d.inFlight.ID != id {
		slog.Warn("stale datagram send result discarded",
			"event_id", "DATAGRAM_STALE",
			"datagram_id", id,
		)
		return
	}
	r := d.inFlight
	d.inFlight = nil
	d.loop.Cancel(timerSendResponse)
	d.loop.Cancel(timerDemoAck)
	d.queueFor(r.Priority).remove(id)
	d.record(r, err)

	if err == nil {
		slog.Info("datagram sent",
			"event_id", "DATAGRAM_SEND_OK",
			"datagram_id", id,
			"pending_count", d.PendingCount(),
		)
		d.tracker.UpdateSend(model.TransferSendSuccess, d.PendingCount())
		if d.PendingCount() > 0 {
			r.callback(nil)
			d.DrainNext()
			return
		}
		d.tracker.UpdateSend(model.TransferIdle, 0)
		r.callback(nil)
		return
	}

	slog.Warn("datagram send failed",
		"event_id", "DATAGRAM_SEND_ERR",
		"datagram_id", id,
		"error", err,
	)
	d.failInFlight(r, err)
}

// OnResponseTimeout は送信応答の待ち時間切れを処理する。
// モデムに全送信の中断を要求し、送信中の要求にはタイムアウト、残りには中断を通知する。
func (d *Dispatcher) OnResponseTimeout(id uint64) {
	if d.inFlight == nil || d.inFlight.ID != id {
		return
	}
	r := d.inFlight
	d.inFlight = nil
	d.loop.Cancel(timerSendResponse)

	slog.Warn("datagram send response timed out",
		"event_id", "DATAGRAM_TIMEOUT",
		"datagram_id", id,
		"timeout", d.cfg.SendResponseTimeout,
	)
	d.loop.Async(d.sender.AbortAllSends, func(err error) {
		if err != nil {
			slog.Warn("failed to abort sends",
				"event_id", "DATAGRAM_ABORT_ERR",
				"error", err,
			)
		}
	})

	d.queueFor(r.Priority).remove(id)
	d.record(r, apperr.ErrModemTimeout)
	d.failInFlight(r, apperr.ErrModemTimeout)
}

// failInFlight は送信失敗した要求と残りの全要求に結果を通知する。
// コールバック内で新たに追加された要求が中断対象に含まれないよう、
// 通知の前に両キューを空にして転送状態をIDLEに戻す。
func (d *Dispatcher) failInFlight(r *Request, err error) {
	aborted := d.takePending()
	d.tracker.UpdateSend(model.TransferSendFailed, len(aborted))
	d.tracker.UpdateSend(model.TransferIdle, 0)

	r.callback(err)
	d.notifyAborted(aborted, apperr.ErrAborted)
}

// AbortAll は全要求にreasonを通知してキューを空にする。モデムへの中断要求は行わない。
func (d *Dispatcher) AbortAll(reason error) {
	d.inFlight = nil
	d.loop.Cancel(timerSendResponse)
	d.loop.Cancel(timerDemoAck)
	d.loop.Cancel(timerWaitForConnected)

	if n := d.PendingCount(); n > 0 {
		d.tracker.UpdateSend(model.TransferSendFailed, n)
	}
	d.tracker.UpdateSend(model.TransferIdle, 0)
	d.abortPending(reason)
}

// OnModemStateChanged はモデム状態の変化に応じて送信を再開または全中断する。
func (d *Dispatcher) OnModemStateChanged(state model.ModemState) {
	d.tracker.SetModemState(state)

	switch {
	case state.IsPoweredDown():
		d.AbortAll(apperr.ErrAborted)
		d.demoMode = false
	case state == model.ModemStateIdle:
		d.DrainNext()
	case state == model.ModemStateConnected && d.loop.IsScheduled(timerWaitForConnected):
		d.loop.Cancel(timerWaitForConnected)
		d.DrainNext()
	}
}

// waitForConnected は衛星接続待ちを通知し、待ち時間タイマーを開始する。
func (d *Dispatcher) waitForConnected() {
	if d.loop.IsScheduled(timerWaitForConnected) {
		return
	}
	slog.Debug("datagram send waiting for connected",
		"event_id", "DATAGRAM_WAIT_CONNECTED",
		"pending_count", d.PendingCount(),
	)
	d.tracker.UpdateSend(model.TransferWaitingToConnect, d.PendingCount())
	d.loop.Schedule(timerWaitForConnected, d.cfg.WaitForConnectedTimeout, d.onWaitForConnectedTimeout)
}

func (d *Dispatcher) onWaitForConnectedTimeout() {
	slog.Warn("timed out waiting for satellite connection",
		"event_id", "DATAGRAM_NOT_REACHABLE",
		"pending_count", d.PendingCount(),
	)
	d.tracker.UpdateSend(model.TransferSendFailed, d.PendingCount())
	d.tracker.UpdateSend(model.TransferIdle, 0)
	d.abortPending(apperr.ErrNotReachable)
}

// abortPending は両キューの全要求にreasonを通知して空にする。
func (d *Dispatcher) abortPending(reason error) {
	d.notifyAborted(d.takePending(), reason)
}

// takePending は両キューの全要求を緊急、通常の順に取り出す。
func (d *Dispatcher) takePending() []*Request {
	return append(d.emergency.drain(), d.normal.drain()...)
}

func (d *Dispatcher) notifyAborted(aborted []*Request, reason error) {
	if len(aborted) == 0 {
		return
	}
	slog.Warn("pending datagrams aborted",
		"event_id", "DATAGRAM_ABORTED",
		"pending_count", len(aborted),
		"error", reason,
	)
	for _, r := range aborted {
		d.record(r, reason)
		r.callback(reason)
	}
}

// allocateID は未使用の次のIDを払い出す。
func (d *Dispatcher) allocateID() uint64 {
	for {
		id := d.nextID
		d.nextID = (d.nextID + 1) % d.cfg.MaxID
		if !d.emergency.contains(id) && !d.normal.contains(id) {
			return id
		}
	}
}

func (d *Dispatcher) queueFor(p model.Priority) *queue {
	if p.IsEmergency() {
		return d.emergency
	}
	return d.normal
}

func (d *Dispatcher) record(r *Request, err error) {
	if d.recorder == nil {
		return
	}
	var latency time.Duration
	if !r.SendStartedAt.IsZero() {
		latency = d.loop.Now().Sub(r.SendStartedAt)
	}
	rec := SendRecord{
		Priority: r.Priority,
		Size:     RoundUpSize(len(r.Payload), d.cfg.RoundingUnit),
		Result:   apperr.ResultCode(err),
		Latency:  latency,
		Demo:     d.demoMode,
	}
	d.loop.Async(func(ctx context.Context) error {
		return d.recorder.RecordSend(ctx, rec)
	}, func(err error) {
		if err != nil {
			slog.Warn("failed to record datagram metrics",
				"event_id", "DATAGRAM_METRICS_ERR",
				"error", err,
			)
		}
	})
}
