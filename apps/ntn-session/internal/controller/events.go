package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/modem"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

var (
	_ modem.EventSink      = (*Controller)(nil)
	_ session.ModemControl = (*Controller)(nil)
)

// OnModemStateChanged はモデム状態の通知を受け取る。
func (c *Controller) OnModemStateChanged(state model.ModemState) {
	c.loop.Post(func() {
		c.handleModemState(state)
	})
}

// OnProvisionStateChanged はプロビジョニング状態の通知を受け取り、保存する。
func (c *Controller) OnProvisionStateChanged(provisioned bool) {
	c.loop.Post(func() {
		slog.Info("provisioning state changed",
			"event_id", "PROVISION_CHANGED",
			"provisioned", provisioned,
		)
		c.provisioned = provisioned
		c.persistProvisioned(provisioned)
	})
}

// OnDatagramReceived はモデムから届いたデータグラムを受け取る。
func (c *Controller) OnDatagramReceived(payload []byte, pending int) {
	c.loop.Post(func() {
		c.receiver.OnDatagramReceived(payload, pending)
	})
}

// OnCapabilitiesChanged は衛星機能情報の変化を受け取る。
func (c *Controller) OnCapabilitiesChanged(caps model.Capabilities) {
	c.loop.Post(func() {
		c.caps = &caps
	})
}

// OnSignalStrengthChanged は信号強度の変化を受け取る。
func (c *Controller) OnSignalStrengthChanged(strength model.SignalStrength) {
	c.loop.Post(func() {
		c.signal = &strength
	})
}

// OnRadioStateChanged は共存無線の状態変化を受け取る。
// 停止通知で全共存無線が停止した場合、保留中の有効化要求を完了させる。
func (c *Controller) OnRadioStateChanged(radio model.Radio, on bool) {
	c.loop.Post(func() {
		if _, watched := c.radios[radio]; !watched {
			return
		}
		c.radios[radio] = on
		slog.Debug("coexistence radio state changed",
			"event_id", "RADIO_CHANGED",
			"radio", radio,
			"on", on,
		)
		if !on {
			c.evaluateEnableSuccess()
		}
	})
}

// SetLinkLayerOn は物理リンク層のオン・オフを受け取る。
// リンク層が停止した時点で衛星モードが有効または有効化中であれば無効化する。
func (c *Controller) SetLinkLayerOn(on bool) {
	c.loop.Post(func() {
		wasOn := c.linkLayerOn
		c.linkLayerOn = on
		if wasOn && !on {
			c.disableOnLinkLayerOff()
		}
	})
}

// disableOnLinkLayerOff はクライアント要求の受付条件を経由せずに無効化要求を送る。
func (c *Controller) disableOnLinkLayerOff() {
	switch cur := c.current; {
	case cur != nil && !cur.want:
		return
	case cur != nil:
		c.supersede(cur)
	case !c.enabledKnown || !c.enabled:
		return
	}
	slog.Info("disabling satellite mode on link layer off", "event_id", "LINK_LAYER_OFF")
	c.submit(c.newRequest(false, false, false, logResult("link layer off")))
}

// handleModemState はモデム状態を処理する。OFF・UNAVAILABLEは無効化の完了として扱う。
func (c *Controller) handleModemState(state model.ModemState) {
	slog.Debug("modem state changed",
		"event_id", "MODEM_STATE_CHANGED",
		"modem_state", state,
	)
	c.modemState = state

	if state == model.ModemStateUnavailable {
		c.caps = nil
		c.signal = nil
		c.enabledKnown = false
	}
	if !state.IsPoweredDown() {
		c.machine.Handle(session.ModemStateChanged(state))
		return
	}

	// 無効化要求の応答待ちであれば応答で無効状態に移行する
	disabling := c.current != nil && !c.current.want
	if state == model.ModemStateUnavailable || (!disabling && (!c.enabledKnown || c.enabled || c.current != nil)) {
		var result error
		if state == model.ModemStateUnavailable || (c.current != nil && c.current.want) {
			result = apperr.ErrInvalidState
		}
		cur := c.current
		if cur != nil {
			c.loop.Cancel(cur.timerTag())
			delete(c.pending, cur.id)
		}
		c.moveToOff(result, cur)
		if state == model.ModemStateUnavailable {
			c.enabledKnown = false
		}
	}
	c.machine.Handle(session.ModemStateChanged(state))
}

func (c *Controller) persistProvisioned(provisioned bool) {
	if c.provision == nil {
		return
	}
	c.loop.Async(func(ctx context.Context) error {
		return c.provision.SetProvisioned(ctx, provisioned)
	}, func(err error) {
		if err != nil {
			slog.Error("failed to persist provisioning state",
				"event_id", "PROVISION_SAVE_ERR",
				"error", err,
			)
		}
	})
}

// SetListeningEnabled はモデムの待ち受けモードを切り替える。
func (c *Controller) SetListeningEnabled(enabled bool, timeout time.Duration) {
	c.loop.Async(func(ctx context.Context) error {
		return c.gw.SetListeningEnabled(ctx, enabled, timeout)
	}, func(err error) {
		if err != nil {
			slog.Warn("failed to set listening mode",
				"event_id", "LISTENING_ERR",
				"enabled", enabled,
				"error", err,
			)
		}
	})
}

// SetTerrestrialScanning はモデムの地上網スキャンを切り替える。doneはイベントループ上で呼び出される。
func (c *Controller) SetTerrestrialScanning(enabled bool, done func(error)) {
	c.loop.Async(func(ctx context.Context) error {
		return c.gw.SetTerrestrialScanning(ctx, enabled)
	}, func(err error) {
		if err != nil && done == nil {
			slog.Warn("failed to set terrestrial scanning",
				"event_id", "TN_SCAN_ERR",
				"enabled", enabled,
				"error", err,
			)
		}
		if done != nil {
			done(err)
		}
	})
}
