package controller

import (
	"log/slog"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// SendDatagram はデータグラムを送信キューに追加してIDを返す。cbは送信結果で1回だけ呼び出される。
// 衛星セッションが確立していない場合やペイロードが上限を超える場合はキューに追加せずcbを呼び出す。
func (c *Controller) SendDatagram(payload []byte, emergency, needsPointingUI bool, cb func(error)) (uint64, bool) {
	if !c.machine.State().IsActive() {
		slog.Info("datagram rejected while session inactive",
			"event_id", "DATAGRAM_REJECTED",
			"session_state", c.machine.State(),
		)
		cb(apperr.ErrInvalidState)
		return 0, false
	}
	if c.caps != nil && !c.caps.AllowsPayload(len(payload)) {
		slog.Info("datagram rejected: payload too large",
			"event_id", "DATAGRAM_REJECTED",
			"size", len(payload),
			"max_size", c.caps.MaxBytesPerDatagram,
		)
		cb(apperr.ErrPayloadTooLarge)
		return 0, false
	}
	id := c.dispatcher.Enqueue(model.PriorityOf(emergency), payload, needsPointingUI, cb)
	return id, true
}

// PollDatagrams はモデムに未受信データグラムの取得を要求する。
func (c *Controller) PollDatagrams(cb func(error)) {
	if !c.machine.State().IsActive() {
		cb(apperr.ErrInvalidState)
		return
	}
	c.receiver.Poll(cb)
}
