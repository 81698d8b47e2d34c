package datagram

import "github.com/oyaguma3/ntn-session-poc/pkg/model"

// Tracker は送受信の転送状態とモデム状態を保持する。
// 送信側はDispatcher、受信側はReceiverのみが更新する。
type Tracker struct {
	state          model.DatagramTransferState
	modem          model.ModemState
	attachRequired bool
	observers      []func(model.DatagramTransferState)
}

// NewTracker は新しいTrackerを生成する。
func NewTracker(attachRequired bool) *Tracker {
	return &Tracker{
		state:          model.IdleTransferState(),
		modem:          model.ModemStateUnknown,
		attachRequired: attachRequired,
	}
}

// Subscribe は転送状態の更新通知先を追加する。
func (t *Tracker) Subscribe(fn func(model.DatagramTransferState)) {
	t.observers = append(t.observers, fn)
}

// State は現在の転送状態を返す。
func (t *Tracker) State() model.DatagramTransferState {
	return t.state
}

// UpdateSend は送信側の状態を更新して通知する。
func (t *Tracker) UpdateSend(s model.TransferState, pending int) {
	t.state.Send = s
	t.state.SendPending = pending
	t.publish()
}

// UpdateReceive は受信側の状態を更新して通知する。
func (t *Tracker) UpdateReceive(s model.TransferState, pending int) {
	t.state.Receive = s
	t.state.ReceivePending = pending
	t.publish()
}

// IsSendIdle は送信側がIDLEかどうかを判定する。
func (t *Tracker) IsSendIdle() bool {
	return t.state.Send == model.TransferIdle
}

// IsReceiveIdle は受信側がIDLEかどうかを判定する。
func (t *Tracker) IsReceiveIdle() bool {
	return t.state.Receive == model.TransferIdle
}

// SetModemState は最新のモデム状態を記録する。
func (t *Tracker) SetModemState(s model.ModemState) {
	t.modem = s
}

// ModemState は最新のモデム状態を返す。
func (t *Tracker) ModemState() model.ModemState {
	return t.modem
}

// NeedsWaitingForConnected は転送前に衛星ネットワークへの接続を待つ必要があるかを判定する。
func (t *Tracker) NeedsWaitingForConnected() bool {
	if !t.attachRequired {
		return false
	}
	return t.modem != model.ModemStateConnected && t.modem != model.ModemStateTransferring
}

func (t *Tracker) publish() {
	for _, fn := range t.observers {
		fn(t.state)
	}
}
