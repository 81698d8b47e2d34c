// Package session はNTNモデムのセッション状態機械を提供する。
package session

import "github.com/oyaguma3/ntn-session-poc/pkg/model"

// State はセッション状態を表す型
type State string

// セッション状態の定数（9状態）
const (
	StateUnavailable  State = "UNAVAILABLE"   // 衛星機能未サポート
	StatePowerOff     State = "POWER_OFF"     // 無効
	StateEnabling     State = "ENABLING"      // 有効化処理中
	StateDisabling    State = "DISABLING"     // 無効化処理中
	StateIdle         State = "IDLE"          // 有効・転送なし
	StateTransferring State = "TRANSFERRING"  // データグラム転送中
	StateListening    State = "LISTENING"     // 着信待ち受け中
	StateNotConnected State = "NOT_CONNECTED" // 衛星ネットワーク未接続
	StateConnected    State = "CONNECTED"     // 衛星ネットワーク接続済み
)

// IsActive は衛星セッションが確立済みの状態かどうかを判定する。
func (s State) IsActive() bool {
	switch s {
	case StateIdle, StateTransferring, StateListening, StateNotConnected, StateConnected:
		return true
	default:
		return false
	}
}

// ModemState はセッション状態をデータグラム送信側が参照するモデム状態に変換する。
func (s State) ModemState() model.ModemState {
	switch s {
	case StateUnavailable:
		return model.ModemStateUnavailable
	case StatePowerOff:
		return model.ModemStateOff
	case StateIdle:
		return model.ModemStateIdle
	case StateTransferring:
		return model.ModemStateTransferring
	case StateListening:
		return model.ModemStateListening
	case StateNotConnected:
		return model.ModemStateNotConnected
	case StateConnected:
		return model.ModemStateConnected
	default:
		return model.ModemStateUnknown
	}
}

// EventKind は状態遷移イベントの種別
type EventKind string

// 状態遷移イベントの定数
const (
	EventSupportChanged       EventKind = "SUPPORT_CHANGED"        // 衛星サポート可否の確定
	EventEnablementStarted    EventKind = "ENABLEMENT_STARTED"     // 有効化/無効化要求の開始
	EventEnablementFailed     EventKind = "ENABLEMENT_FAILED"      // 有効化/無効化要求の失敗
	EventEnabledStateChanged  EventKind = "ENABLED_STATE_CHANGED"  // 有効状態の確定
	EventModemStateChanged    EventKind = "MODEM_STATE_CHANGED"    // モデム状態通知
	EventTransferStateChanged EventKind = "TRANSFER_STATE_CHANGED" // データグラム転送状態の変化
	EventListeningTimeout     EventKind = "LISTENING_TIMEOUT"      // 待ち受けタイマー満了
	EventInactivityTimeout    EventKind = "INACTIVITY_TIMEOUT"     // NB-IoT無通信タイマー満了
	EventScanningDisabled     EventKind = "SCANNING_DISABLED"      // 地上網スキャン停止の完了
)

// Event は状態遷移関数への入力
type Event struct {
	Kind     EventKind
	Enabled  bool // SupportChanged/EnablementStarted/EnablementFailed/EnabledStateChanged/ScanningDisabled
	Modem    model.ModemState
	Transfer model.DatagramTransferState
}

// SupportChanged は衛星サポート可否のイベントを返す。
func SupportChanged(supported bool) Event {
	return Event{Kind: EventSupportChanged, Enabled: supported}
}

// EnablementStarted は有効化（enabled=true）または無効化の開始イベントを返す。
func EnablementStarted(enabled bool) Event {
	return Event{Kind: EventEnablementStarted, Enabled: enabled}
}

// EnablementFailed は有効化（enabled=true）または無効化の失敗イベントを返す。
func EnablementFailed(enabled bool) Event {
	return Event{Kind: EventEnablementFailed, Enabled: enabled}
}

// EnabledStateChanged は有効状態確定イベントを返す。
func EnabledStateChanged(enabled bool) Event {
	return Event{Kind: EventEnabledStateChanged, Enabled: enabled}
}

// ModemStateChanged はモデム状態通知イベントを返す。
func ModemStateChanged(state model.ModemState) Event {
	return Event{Kind: EventModemStateChanged, Modem: state}
}

// TransferStateChanged は転送状態変化イベントを返す。
func TransferStateChanged(state model.DatagramTransferState) Event {
	return Event{Kind: EventTransferStateChanged, Transfer: state}
}

// ListeningTimeout は待ち受けタイマー満了イベントを返す。
func ListeningTimeout() Event {
	return Event{Kind: EventListeningTimeout}
}

// InactivityTimeout は無通信タイマー満了イベントを返す。
func InactivityTimeout() Event {
	return Event{Kind: EventInactivityTimeout}
}

// ScanningDisabled は地上網スキャン停止の完了イベントを返す。
func ScanningDisabled(ok bool) Event {
	return Event{Kind: EventScanningDisabled, Enabled: ok}
}

// ListeningOrigin は待ち受け状態に入る直前の転送が送信か受信かを表す。
type ListeningOrigin string

const (
	OriginSending   ListeningOrigin = "sending"
	OriginReceiving ListeningOrigin = "receiving"
)

// EffectKind は遷移に伴う副作用の種別
type EffectKind string

// 副作用の定数
const (
	EffectNotifyState              EffectKind = "NOTIFY_STATE"
	EffectStopAllTimers            EffectKind = "STOP_ALL_TIMERS"
	EffectStartListeningTimer      EffectKind = "START_LISTENING_TIMER"
	EffectStopListeningTimer       EffectKind = "STOP_LISTENING_TIMER"
	EffectSetModemListening        EffectKind = "SET_MODEM_LISTENING"
	EffectSetTerrestrialScanning   EffectKind = "SET_TERRESTRIAL_SCANNING"
	EffectDisableScanningForAttach EffectKind = "DISABLE_SCANNING_FOR_ATTACH"
	EffectStartInactivityTimer     EffectKind = "START_INACTIVITY_TIMER"
	EffectStopInactivityTimer      EffectKind = "STOP_INACTIVITY_TIMER"
	EffectRestartInactivityTimer   EffectKind = "RESTART_INACTIVITY_TIMER"
)

// Effect は遷移関数が返す副作用
type Effect struct {
	Kind   EffectKind
	State  State           // NotifyState
	On     bool            // SetModemListening/SetTerrestrialScanning
	Origin ListeningOrigin // StartListeningTimer/SetModemListening
}

// Status は状態機械の全状態
type Status struct {
	Current        State
	Previous       State
	AttachRequired bool
	// SendTriggered は直近の転送で送信が開始されたかどうか（待ち受け時間の選択に使用）
	SendTriggered bool
	Transfer      model.DatagramTransferState
	// ScanningDisableInProgress は接続待ちによる地上網スキャン停止が要求済みかどうか
	ScanningDisableInProgress bool
	// Deferred は有効化処理中に受信し、有効化完了後に再処理するモデム状態
	Deferred []model.ModemState
}

// NewStatus は初期状態（UNAVAILABLE）のStatusを返す。
func NewStatus(attachRequired bool) Status {
	return Status{
		Current:        StateUnavailable,
		Previous:       StateUnavailable,
		AttachRequired: attachRequired,
		Transfer:       model.IdleTransferState(),
	}
}

// Result は遷移関数の結果
type Result struct {
	Status  Status
	Effects []Effect
	Handled bool // falseの場合、イベントは現在の状態で無視された
}
