package session

import "github.com/oyaguma3/ntn-session-poc/pkg/model"

// Transition は現在の状態とイベントから次の状態と副作用を計算する。
// 状態が変化する場合は旧状態の終了処理、新状態の開始処理の順に副作用を並べる。
func Transition(s Status, ev Event) Result {
	t := &transition{status: s}
	t.status.Deferred = append([]model.ModemState(nil), s.Deferred...)

	if ev.Kind == EventTransferStateChanged {
		t.status.Transfer = ev.Transfer
		if ev.Transfer.Send == model.TransferSending {
			t.status.SendTriggered = true
		}
	}

	handled := t.dispatch(ev)
	if ev.Kind == EventScanningDisabled {
		t.status.ScanningDisableInProgress = false
	}
	return Result{Status: t.status, Effects: t.effects, Handled: handled}
}

// transition は1回の遷移計算の作業領域
type transition struct {
	status  Status
	effects []Effect
}

func (t *transition) emit(e Effect) {
	t.effects = append(t.effects, e)
}

func (t *transition) dispatch(ev Event) bool {
	if ev.Kind == EventSupportChanged {
		return t.onSupportChanged(ev.Enabled)
	}

	switch t.status.Current {
	case StateUnavailable:
		return false
	case StatePowerOff:
		return t.onPowerOff(ev)
	case StateEnabling:
		return t.onEnabling(ev)
	case StateDisabling:
		return t.onDisabling(ev)
	}

	if t.onActive(ev) {
		return true
	}

	switch t.status.Current {
	case StateIdle:
		return t.onIdle(ev)
	case StateTransferring:
		return t.onTransferring(ev)
	case StateListening:
		return t.onListening(ev)
	case StateNotConnected:
		return t.onNotConnected(ev)
	case StateConnected:
		return t.onConnected(ev)
	}
	return false
}

func (t *transition) onSupportChanged(supported bool) bool {
	switch {
	case supported && t.status.Current == StateUnavailable:
		t.enter(StatePowerOff)
		return true
	case !supported && t.status.Current != StateUnavailable:
		t.enter(StateUnavailable)
		return true
	}
	return false
}

func (t *transition) onPowerOff(ev Event) bool {
	// 無効化開始はここでは無視する
	if ev.Kind == EventEnablementStarted && ev.Enabled {
		t.enter(StateEnabling)
		return true
	}
	return false
}

func (t *transition) onEnabling(ev Event) bool {
	switch ev.Kind {
	case EventEnablementStarted:
		if !ev.Enabled {
			t.enter(StateDisabling)
			return true
		}
	case EventEnabledStateChanged:
		if !ev.Enabled {
			t.status.Deferred = nil
			t.enter(StatePowerOff)
			return true
		}
		if t.status.AttachRequired {
			t.enter(StateNotConnected)
		} else {
			t.enter(StateIdle)
		}
		deferred := t.status.Deferred
		t.status.Deferred = nil
		for _, ms := range deferred {
			t.dispatch(ModemStateChanged(ms))
		}
		return true
	case EventEnablementFailed:
		t.status.Deferred = nil
		t.enter(StatePowerOff)
		return true
	case EventModemStateChanged:
		t.status.Deferred = append(t.status.Deferred, ev.Modem)
		return true
	}
	return false
}

func (t *transition) onDisabling(ev Event) bool {
	switch ev.Kind {
	case EventEnabledStateChanged:
		if !ev.Enabled {
			t.enter(StatePowerOff)
			return true
		}
		// 有効化が無効化より後に成功した場合、無効化失敗時の復帰先を更新する
		if t.status.AttachRequired {
			t.status.Previous = StateNotConnected
		} else {
			t.status.Previous = StateIdle
		}
		return true
	case EventEnablementFailed:
		if ev.Enabled {
			t.status.Previous = StatePowerOff
			return true
		}
		t.enter(t.restoreTarget())
		return true
	case EventModemStateChanged:
		switch {
		case ev.Modem == model.ModemStateNotConnected:
			t.status.Previous = StateNotConnected
			return true
		case ev.Modem.IsPoweredDown():
			t.enter(StatePowerOff)
			return true
		}
	}
	return false
}

// restoreTarget は無効化失敗時の復帰先状態を返す。
func (t *transition) restoreTarget() State {
	attach := t.status.AttachRequired
	switch t.status.Previous {
	case StateTransferring, StateListening, StateConnected:
		if attach {
			return StateConnected
		}
		return StateIdle
	case StateEnabling:
		return StateEnabling
	case StatePowerOff:
		return StatePowerOff
	case StateIdle:
		return StateIdle
	default:
		if attach {
			return StateNotConnected
		}
		return StateIdle
	}
}

// onActive はセッション確立済みの全状態に共通する遷移を処理する。
func (t *transition) onActive(ev Event) bool {
	switch ev.Kind {
	case EventEnablementStarted:
		if !ev.Enabled {
			t.enter(StateDisabling)
			return true
		}
	case EventEnabledStateChanged:
		if !ev.Enabled {
			t.enter(StatePowerOff)
			return true
		}
	case EventModemStateChanged:
		if ev.Modem.IsPoweredDown() {
			t.enter(StatePowerOff)
			return true
		}
	}
	return false
}

func (t *transition) onIdle(ev Event) bool {
	switch ev.Kind {
	case EventTransferStateChanged:
		tr := ev.Transfer
		if tr.Send == model.TransferSending || tr.Receive == model.TransferReceiving {
			if t.status.AttachRequired {
				return false
			}
			t.enter(StateTransferring)
			return true
		}
		if tr.IsWaitingToConnect() {
			if !t.status.AttachRequired || t.status.ScanningDisableInProgress {
				return false
			}
			t.status.ScanningDisableInProgress = true
			t.emit(Effect{Kind: EffectDisableScanningForAttach})
			return true
		}
	case EventScanningDisabled:
		if !t.status.ScanningDisableInProgress {
			return false
		}
		if ev.Enabled {
			t.enter(StateNotConnected)
		}
		return true
	}
	return false
}

func (t *transition) onTransferring(ev Event) bool {
	switch ev.Kind {
	case EventTransferStateChanged:
		tr := ev.Transfer
		if tr.IsActive() {
			return true
		}
		switch {
		case t.status.AttachRequired:
			t.enter(StateConnected)
		case tr.HasFailure():
			t.enter(StateIdle)
		default:
			t.enter(StateListening)
		}
		return true
	case EventModemStateChanged:
		if ev.Modem == model.ModemStateNotConnected {
			t.enter(StateNotConnected)
			return true
		}
	}
	return false
}

func (t *transition) onListening(ev Event) bool {
	switch ev.Kind {
	case EventListeningTimeout:
		t.enter(StateIdle)
		return true
	case EventTransferStateChanged:
		tr := ev.Transfer
		if tr.Send == model.TransferSending || tr.Receive == model.TransferReceiving {
			t.enter(StateTransferring)
			return true
		}
	}
	return false
}

func (t *transition) onNotConnected(ev Event) bool {
	switch ev.Kind {
	case EventModemStateChanged:
		if ev.Modem == model.ModemStateConnected {
			t.enter(StateConnected)
			return true
		}
	case EventInactivityTimeout:
		t.enter(StateIdle)
		return true
	case EventTransferStateChanged:
		return t.adjustInactivityTimer(ev.Transfer)
	}
	return false
}

func (t *transition) onConnected(ev Event) bool {
	switch ev.Kind {
	case EventModemStateChanged:
		if ev.Modem == model.ModemStateNotConnected {
			t.enter(StateNotConnected)
			return true
		}
	case EventInactivityTimeout:
		t.enter(StateIdle)
		return true
	case EventTransferStateChanged:
		if ev.Transfer.IsActive() {
			t.enter(StateTransferring)
			return true
		}
		return t.adjustInactivityTimer(ev.Transfer)
	}
	return false
}

// adjustInactivityTimer は転送状態に応じてNB-IoT無通信タイマーを停止・再始動する。
func (t *transition) adjustInactivityTimer(tr model.DatagramTransferState) bool {
	switch {
	case tr.IsWaitingToConnect(), tr.IsActive():
		t.emit(Effect{Kind: EffectStopInactivityTimer})
		return true
	case tr.IsIdle():
		t.emit(Effect{Kind: EffectRestartInactivityTimer})
		return true
	}
	return false
}

// enter は状態を変更し、終了処理と開始処理の副作用を積む。
func (t *transition) enter(next State) {
	prev := t.status.Current
	t.exitEffects(prev)
	t.status.Previous = prev
	t.status.Current = next
	t.entryEffects(next)
}

func (t *transition) exitEffects(s State) {
	switch s {
	case StateIdle:
		if !t.status.AttachRequired {
			t.emit(Effect{Kind: EffectSetTerrestrialScanning, On: false})
		}
	case StateListening:
		t.emit(Effect{Kind: EffectStopListeningTimer})
		t.emit(Effect{Kind: EffectSetModemListening, On: false})
	}
}

func (t *transition) entryEffects(s State) {
	switch s {
	case StateUnavailable:
		t.emit(Effect{Kind: EffectStopAllTimers})
	case StatePowerOff:
		t.status.SendTriggered = false
		t.status.ScanningDisableInProgress = false
		t.status.Deferred = nil
		t.emit(Effect{Kind: EffectStopAllTimers})
	case StateIdle:
		t.status.SendTriggered = false
		t.emit(Effect{Kind: EffectStopInactivityTimer})
		t.emit(Effect{Kind: EffectSetTerrestrialScanning, On: true})
	case StateTransferring:
		t.emit(Effect{Kind: EffectStopInactivityTimer})
	case StateListening:
		origin := OriginReceiving
		if t.status.SendTriggered {
			origin = OriginSending
		}
		t.emit(Effect{Kind: EffectSetModemListening, On: true, Origin: origin})
		t.emit(Effect{Kind: EffectStartListeningTimer, Origin: origin})
		t.status.SendTriggered = false
	}

	t.emit(Effect{Kind: EffectNotifyState, State: s})

	switch s {
	case StateNotConnected, StateConnected:
		if t.status.Transfer.IsIdle() {
			t.emit(Effect{Kind: EffectStartInactivityTimer})
		}
	}
}
