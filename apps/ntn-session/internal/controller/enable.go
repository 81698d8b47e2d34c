package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// enableRequest は有効化・無効化要求
type enableRequest struct {
	id        uint64
	want      bool
	demoMode  bool
	emergency bool
	callback  func(error)

	// waitingForRadios はモデムの有効化応答が成功し、共存無線の停止を待っている状態
	waitingForRadios bool
	answered         bool
}

// answer はコールバックを1回だけ呼び出す。
func (r *enableRequest) answer(err error) {
	if r.answered {
		return
	}
	r.answered = true
	if r.callback != nil {
		r.callback(err)
	}
}

func (r *enableRequest) timerTag() string {
	return fmt.Sprintf("controller.enable_response.%d", r.id)
}

func (c *Controller) newRequest(want, demoMode, emergency bool, cb func(error)) *enableRequest {
	r := &enableRequest{
		id:        c.nextReqID,
		want:      want,
		demoMode:  demoMode,
		emergency: emergency,
		callback:  cb,
	}
	c.nextReqID++
	return r
}

// RequestEnabled は衛星モードの有効化・無効化を要求する。cbは結果で1回だけ呼び出される。
// 同方向の要求が処理中の場合はErrRequestInProgress、無効化中の有効化要求はErrInvalidStateで拒否する。
// 有効化中の無効化要求は有効化要求を置き換えてモデムに送る。
func (c *Controller) RequestEnabled(want, demoMode, emergency bool, cb func(error)) {
	reject := func(err error, reason string) {
		slog.Info("enable request rejected",
			"event_id", "ENABLE_REJECTED",
			"enable", want,
			"reason", reason,
		)
		cb(err)
	}

	if !c.supported {
		reject(apperr.ErrNotSupported, "not supported")
		return
	}
	if !c.provisioned {
		reject(apperr.ErrNotProvisioned, "not provisioned")
		return
	}
	if !c.linkLayerOn {
		reject(apperr.ErrInvalidState, "link layer off")
		return
	}
	if !want {
		demoMode = false
	}

	if cur := c.current; cur != nil {
		switch {
		case cur.want == want:
			reject(apperr.ErrRequestInProgress, "same request in progress")
			return
		case !cur.want:
			reject(apperr.ErrInvalidState, "disable in progress")
			return
		default:
			c.supersede(cur)
		}
	} else if c.enabledKnown && c.enabled == want {
		if demoMode != c.demoMode {
			reject(apperr.ErrInvalidArguments, "demo mode mismatch")
			return
		}
		slog.Debug("enable request matches current state", "enable", want)
		cb(nil)
		return
	}

	c.submit(c.newRequest(want, demoMode, emergency, cb))
}

// supersede は処理中の有効化要求を無効化要求で置き換える。
// モデムの有効化応答が成功済みで共存無線の停止待ちの場合は成功、それ以外は中断を通知する。
func (c *Controller) supersede(r *enableRequest) {
	c.loop.Cancel(r.timerTag())
	delete(c.pending, r.id)
	c.current = nil

	slog.Info("enable request superseded by disable",
		"event_id", "ENABLE_SUPERSEDED",
		"request_id", r.id,
		"waiting_for_radios", r.waitingForRadios,
	)
	if r.waitingForRadios {
		r.answer(nil)
		return
	}
	r.answer(apperr.ErrAborted)
}

// submit は要求を現在の要求としてモデムへ送り、応答待ちタイマーを開始する。
func (c *Controller) submit(r *enableRequest) {
	c.current = r
	c.pending[r.id] = r

	slog.Info("enable request submitted",
		"event_id", "ENABLE_SUBMIT",
		"request_id", r.id,
		"enable", r.want,
		"demo_mode", r.demoMode,
		"emergency", r.emergency,
	)

	c.machine.Handle(session.EnablementStarted(r.want))
	c.loop.Schedule(r.timerTag(), c.cfg.EnableResponseTimeout, func() {
		c.onEnableTimeout(r)
	})
	want, demo, emergency := r.want, r.demoMode, r.emergency
	c.loop.Async(func(ctx context.Context) error {
		return c.gw.RequestEnabled(ctx, want, demo, emergency)
	}, func(err error) {
		c.onEnableResponse(r, err)
	})
}

// onEnableResponse はモデムの応答を処理する。タイムアウト済み・置き換え済みの応答は破棄する。
func (c *Controller) onEnableResponse(r *enableRequest, err error) {
	if _, ok := c.pending[r.id]; !ok {
		slog.Warn("stale enable response discarded",
			"event_id", "ENABLE_STALE",
			"request_id", r.id,
			"enable", r.want,
			"error", err,
		)
		return
	}
	delete(c.pending, r.id)
	c.loop.Cancel(r.timerTag())

	if err != nil {
		slog.Warn("enable request failed",
			"event_id", "ENABLE_ERR",
			"request_id", r.id,
			"enable", r.want,
			"error", err,
		)
		c.machine.Handle(session.EnablementFailed(r.want))
		if c.current == r {
			c.current = nil
		}
		r.answer(err)
		return
	}

	slog.Info("enable request acknowledged",
		"event_id", "ENABLE_OK",
		"request_id", r.id,
		"enable", r.want,
	)
	if r.want {
		r.waitingForRadios = true
		c.evaluateEnableSuccess()
	} else {
		c.moveToOff(nil, r)
	}
	c.setSignalStrengthReporting(r.want)
}

// onEnableTimeout はモデム応答の待ち時間切れを処理する。
// 有効化要求の場合は補償のための無効化要求を送る。
func (c *Controller) onEnableTimeout(r *enableRequest) {
	if _, ok := c.pending[r.id]; !ok {
		return
	}
	delete(c.pending, r.id)

	slog.Warn("enable response timed out",
		"event_id", "ENABLE_TIMEOUT",
		"request_id", r.id,
		"enable", r.want,
		"timeout", c.cfg.EnableResponseTimeout,
	)
	if c.current == r {
		c.current = nil
	}
	r.answer(apperr.ErrModemTimeout)

	if !r.want {
		c.moveToOff(nil, nil)
		return
	}
	c.machine.Handle(session.EnablementFailed(true))
	if c.current == nil {
		c.submit(c.newRequest(false, false, false, logResult("compensating disable")))
	}
}

// evaluateEnableSuccess は有効化応答が成功済みで全共存無線が停止していれば、
// 有効状態を確定させて呼び出し元に成功を通知する。
func (c *Controller) evaluateEnableSuccess() {
	r := c.current
	if r == nil || !r.want || !r.waitingForRadios {
		return
	}
	if on := c.radiosOn(); len(on) > 0 {
		slog.Info("waiting for coexistence radios to turn off",
			"event_id", "ENABLE_WAIT_RADIOS",
			"radios", on,
		)
		return
	}

	c.current = nil
	c.enabledKnown = true
	c.enabled = true
	c.setDemoMode(r.demoMode)
	c.emergency = r.emergency
	r.answer(nil)
	c.machine.Handle(session.EnabledStateChanged(true))
}

// moveToOff は無効状態に移行して関連する状態を初期化する。
// rがあればresultで応答する。処理中の有効化要求が共存無線の停止待ちであれば成功を通知する。
func (c *Controller) moveToOff(result error, r *enableRequest) {
	if cur := c.current; cur != nil && cur != r {
		c.loop.Cancel(cur.timerTag())
		delete(c.pending, cur.id)
		if cur.want && cur.waitingForRadios {
			cur.answer(nil)
		} else {
			cur.answer(apperr.ErrAborted)
		}
	}
	c.current = nil
	c.setDemoMode(false)
	c.emergency = false
	c.enabledKnown = true
	c.enabled = false
	c.signal = nil
	if r != nil {
		r.answer(result)
	}
	c.machine.Handle(session.EnabledStateChanged(false))
}

func (c *Controller) setDemoMode(demo bool) {
	c.demoMode = demo
	c.machine.SetDemoMode(demo)
	c.dispatcher.SetDemoMode(demo)
}

// radiosOn は有効なままの共存無線を返す。
func (c *Controller) radiosOn() []model.Radio {
	var on []model.Radio
	for _, r := range c.cfg.Radios() {
		if c.radios[r] {
			on = append(on, r)
		}
	}
	return on
}

func (c *Controller) setSignalStrengthReporting(enabled bool) {
	c.loop.Async(func(ctx context.Context) error {
		return c.gw.SetSignalStrengthReporting(ctx, enabled)
	}, func(err error) {
		if err != nil {
			slog.Warn("failed to update signal strength reporting",
				"event_id", "SIGNAL_REPORTING_ERR",
				"enabled", enabled,
				"error", err,
			)
		}
	})
}
