package controller

import (
	"context"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
)

// 以下はイベントループ外から呼び出す同期版のAPI。
// 呼び出し元のゴルーチンだけをブロックし、イベントループのゴルーチンから呼び出してはならない。

// RequestEnabledSync はRequestEnabledを実行し、結果が出るまで待つ。
func (c *Controller) RequestEnabledSync(ctx context.Context, want, demoMode, emergency bool) error {
	return c.await(ctx, func(cb func(error)) {
		c.RequestEnabled(want, demoMode, emergency, cb)
	})
}

// SendDatagramSync はSendDatagramを実行し、送信結果が出るまで待つ。
// 待ち時間の上限はconfig.DatagramWaitTimeout。
func (c *Controller) SendDatagramSync(ctx context.Context, payload []byte, emergency, needsPointingUI bool) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DatagramWaitTimeout)
	defer cancel()

	var id uint64
	err := c.await(ctx, func(cb func(error)) {
		id, _ = c.SendDatagram(payload, emergency, needsPointingUI, cb)
	})
	return id, err
}

// PollDatagramsSync はPollDatagramsを実行し、結果が出るまで待つ。
func (c *Controller) PollDatagramsSync(ctx context.Context) error {
	return c.await(ctx, c.PollDatagrams)
}

// SnapshotSync はイベントループ上でSnapshotを取得する。
func (c *Controller) SnapshotSync(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	if err := c.loop.Call(ctx, func() { s = c.Snapshot() }); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// await はstartをイベントループ上で実行し、startに渡したコールバックが呼ばれるまで待つ。
func (c *Controller) await(ctx context.Context, start func(cb func(error))) error {
	result := make(chan error, 1)
	cb := func(err error) {
		select {
		case result <- err:
		default:
		}
	}
	if err := c.loop.Call(ctx, func() { start(cb) }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return apperr.ErrModemTimeout
		}
		return ctx.Err()
	}
}
