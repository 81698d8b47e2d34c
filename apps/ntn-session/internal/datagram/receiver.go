package datagram

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// タイマーのタグ
const (
	timerReceive              = "datagram.receive"
	timerPollWaitForConnected = "datagram.poll_wait_for_connected"
)

// ReceiverConfig はReceiverの動作設定。
type ReceiverConfig struct {
	PollResponseTimeout     time.Duration
	WaitForConnectedTimeout time.Duration
}

// Receiver はモデムに未受信データグラムの取得を要求し、受信したデータグラムを保存する。
// 受信処理中はDispatcherの送信を保留し、受信完了後に送信を再開させる。
// すべてのメソッドはイベントループ上で呼び出す。
type Receiver struct {
	loop    Loop
	poller  Poller
	inbox   Inbox
	tracker *Tracker
	drainer Drainer
	cfg     ReceiverConfig

	// inFlight はモデムの応答を待っているポーリング要求のコールバック
	inFlight func(error)
	// waiting は衛星接続を待っているポーリング要求のコールバック
	waiting func(error)
}

// NewReceiver は新しいReceiverを生成する。
func NewReceiver(loop Loop, poller Poller, inbox Inbox, tracker *Tracker, drainer Drainer, cfg ReceiverConfig) *Receiver {
	return &Receiver{
		loop:    loop,
		poller:  poller,
		inbox:   inbox,
		tracker: tracker,
		drainer: drainer,
		cfg:     cfg,
	}
}

// Poll はモデムに未受信データグラムの取得を要求する。
// 受信処理中の場合はErrRequestInProgressでcbを呼び出す。
func (r *Receiver) Poll(cb func(error)) {
	if !r.tracker.IsReceiveIdle() {
		cb(apperr.ErrRequestInProgress)
		return
	}
	r.poll(cb)
}

func (r *Receiver) poll(cb func(error)) {
	if !r.tracker.IsSendIdle() {
		slog.Debug("poll rejected while sending", "event_id", "DATAGRAM_POLL_BUSY")
		cb(apperr.ErrRequestInProgress)
		return
	}
	pending := r.tracker.State().ReceivePending

	if r.tracker.NeedsWaitingForConnected() {
		if r.waiting != nil {
			cb(apperr.ErrRequestInProgress)
			return
		}
		r.waiting = cb
		r.tracker.UpdateReceive(model.TransferWaitingToConnect, pending)
		r.loop.Schedule(timerPollWaitForConnected, r.cfg.WaitForConnectedTimeout, r.onWaitForConnectedTimeout)
		return
	}

	r.inFlight = cb
	r.tracker.UpdateReceive(model.TransferReceiving, pending)
	r.loop.Schedule(timerReceive, r.cfg.PollResponseTimeout, r.onReceiveTimeout)
	r.loop.Async(r.poller.PollPendingDatagrams, r.onPollDone)
}

func (r *Receiver) onPollDone(err error) {
	cb := r.inFlight
	if cb == nil {
		return
	}
	r.inFlight = nil
	if err != nil {
		slog.Warn("poll pending datagrams failed",
			"event_id", "DATAGRAM_POLL_ERR",
			"error", err,
		)
		r.fail()
	}
	cb(err)
}

// OnDatagramReceived はモデムから届いたデータグラムを処理する。
// payloadがnilでpendingが0以下の場合は未受信データグラムなしとして扱う。
func (r *Receiver) OnDatagramReceived(payload []byte, pending int) {
	switch {
	case payload == nil && pending <= 0:
		r.tracker.UpdateReceive(model.TransferReceiveNone, pending)
	case payload != nil:
		r.tracker.UpdateReceive(model.TransferReceiveSuccess, pending)
		r.store(payload, pending)
	}

	r.loop.Cancel(timerReceive)
	if pending > 0 {
		r.poll(func(err error) {
			if errors.Is(err, apperr.ErrRequestInProgress) {
				slog.Debug("follow-up poll not started",
					"event_id", "DATAGRAM_POLL_BUSY",
					"pending_count", pending,
				)
				r.idle(pending)
			}
		})
		return
	}
	r.idle(0)
}

// OnModemStateChanged はモデム状態の変化に応じて待機中のポーリングを再開または中断する。
func (r *Receiver) OnModemStateChanged(state model.ModemState) {
	switch {
	case state.IsPoweredDown():
		r.cleanup()
	case state == model.ModemStateConnected && r.loop.IsScheduled(timerPollWaitForConnected):
		r.loop.Cancel(timerPollWaitForConnected)
		cb := r.waiting
		r.waiting = nil
		if cb != nil {
			r.poll(cb)
		}
	}
}

func (r *Receiver) store(payload []byte, pending int) {
	if r.inbox == nil {
		return
	}
	d := model.NewReceivedDatagram(payload, r.loop.Now().UnixMilli(), pending)
	r.loop.Async(func(ctx context.Context) error {
		return r.inbox.Push(ctx, d)
	}, func(err error) {
		if err != nil {
			slog.Error("failed to store received datagram",
				"event_id", "DATAGRAM_INBOX_ERR",
				"error", err,
			)
		}
	})
}

func (r *Receiver) onReceiveTimeout() {
	slog.Warn("datagram receive timed out",
		"event_id", "DATAGRAM_RECEIVE_TIMEOUT",
		"timeout", r.cfg.PollResponseTimeout,
	)
	cb := r.inFlight
	r.inFlight = nil
	r.fail()
	if cb != nil {
		cb(apperr.ErrModemTimeout)
	}
}

func (r *Receiver) onWaitForConnectedTimeout() {
	slog.Warn("timed out waiting for satellite connection before polling",
		"event_id", "DATAGRAM_NOT_REACHABLE",
	)
	cb := r.waiting
	r.waiting = nil
	r.fail()
	if cb != nil {
		cb(apperr.ErrNotReachable)
	}
}

// fail は受信失敗を通知してIDLEに戻す。
func (r *Receiver) fail() {
	r.loop.Cancel(timerReceive)
	pending := r.tracker.State().ReceivePending
	r.tracker.UpdateReceive(model.TransferReceiveFailed, pending)
	r.idle(pending)
}

// idle は受信側をIDLEに戻し、保留中の送信を再開させる。
func (r *Receiver) idle(pending int) {
	r.tracker.UpdateReceive(model.TransferIdle, pending)
	if r.drainer != nil {
		r.drainer.DrainNext()
	}
}

// cleanup は待機中・処理中のポーリングを中断して受信側を初期化する。
func (r *Receiver) cleanup() {
	r.loop.Cancel(timerReceive)
	r.loop.Cancel(timerPollWaitForConnected)

	aborted := []func(error){r.waiting, r.inFlight}
	r.waiting = nil
	r.inFlight = nil

	if r.tracker.State().Receive == model.TransferReceiving {
		r.tracker.UpdateReceive(model.TransferReceiveFailed, r.tracker.State().ReceivePending)
	}
	r.tracker.UpdateReceive(model.TransferIdle, 0)

	for _, cb := range aborted {
		if cb != nil {
			cb(apperr.ErrAborted)
		}
	}
}
