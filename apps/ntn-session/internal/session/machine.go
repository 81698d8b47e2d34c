package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// タイマーのタグ
const (
	timerListening  = "session.listening"
	timerInactivity = "session.inactivity"
)

// Scheduler はタグ付きタイマーを提供する。
type Scheduler interface {
	Schedule(tag string, delay time.Duration, fn func()) bool
	Cancel(tag string) bool
}

// ModemControl は状態機械がモデムに要求する操作を定義する。
// doneはイベントループ上で呼び出されなければならない。
type ModemControl interface {
	SetListeningEnabled(enabled bool, timeout time.Duration)
	SetTerrestrialScanning(enabled bool, done func(error))
}

// Listener はセッション状態の変化を受け取る。
type Listener interface {
	OnSessionStateChanged(state State)
}

// ListenerFunc は関数をListenerとして扱うためのアダプター。
type ListenerFunc func(state State)

// OnSessionStateChanged はListenerインターフェースを実装する。
func (f ListenerFunc) OnSessionStateChanged(state State) {
	f(state)
}

// Timing は状態機械が使用するタイマー時間。
type Timing struct {
	ListeningFromSending   time.Duration
	ListeningFromReceiving time.Duration
	DemoListening          time.Duration
	Inactivity             time.Duration
	DemoInactivity         time.Duration
}

// Machine は遷移関数の結果をタイマー・モデム・リスナーに反映する実行器。
// すべてのメソッドはイベントループ上で呼び出す。
type Machine struct {
	status   Status
	sched    Scheduler
	modem    ModemControl
	timing   Timing
	demoMode bool

	listeners map[string]Listener
	order     []string

	pending []Event
	busy    bool
}

// NewMachine は新しいMachineを生成する。初期状態はUNAVAILABLE。
func NewMachine(sched Scheduler, modem ModemControl, timing Timing, attachRequired bool) *Machine {
	return &Machine{
		status:    NewStatus(attachRequired),
		sched:     sched,
		modem:     modem,
		timing:    timing,
		listeners: make(map[string]Listener),
	}
}

// State は現在のセッション状態を返す。
func (m *Machine) State() State {
	return m.status.Current
}

// Status は状態機械の全状態を返す。
func (m *Machine) Status() Status {
	return m.status
}

// SetDemoMode はデモモードを切り替える。待ち受け・無通信タイマーの時間に反映される。
func (m *Machine) SetDemoMode(demo bool) {
	m.demoMode = demo
}

// Register はリスナーを登録してIDを返す。登録直後に現在の状態を通知する。
func (m *Machine) Register(l Listener) string {
	id := uuid.NewString()
	m.listeners[id] = l
	m.order = append(m.order, id)
	l.OnSessionStateChanged(m.status.Current)
	return id
}

// Unregister はリスナーの登録を解除する。未登録のIDの場合はfalseを返す。
func (m *Machine) Unregister(id string) bool {
	if _, ok := m.listeners[id]; !ok {
		return false
	}
	delete(m.listeners, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Handle はイベントを処理する。
// 副作用の実行中に発生したイベントは現在のイベントの処理完了後に順に処理する。
func (m *Machine) Handle(ev Event) {
	m.pending = append(m.pending, ev)
	if m.busy {
		return
	}
	m.busy = true
	defer func() { m.busy = false }()

	for len(m.pending) > 0 {
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.process(next)
	}
}

func (m *Machine) process(ev Event) {
	from := m.status.Current
	r := Transition(m.status, ev)
	m.status = r.Status

	if !r.Handled {
		if ev.Kind == EventEnablementStarted && !ev.Enabled {
			slog.Warn("unexpected disablement started",
				"event_id", "SESSION_EVENT_IGNORED",
				"session_state", from,
			)
		} else {
			slog.Debug("session event ignored",
				"event_id", "SESSION_EVENT_IGNORED",
				"session_state", from,
				"event", ev.Kind,
			)
		}
	}
	if from != m.status.Current {
		slog.Info("session state changed",
			"event_id", "SESSION_TRANSITION",
			"from", from,
			"to", m.status.Current,
			"event", ev.Kind,
		)
	}

	for _, e := range r.Effects {
		m.apply(e)
	}
}

func (m *Machine) apply(e Effect) {
	switch e.Kind {
	case EffectNotifyState:
		m.notify(e.State)
	case EffectStopAllTimers:
		m.sched.Cancel(timerListening)
		m.sched.Cancel(timerInactivity)
	case EffectStartListeningTimer:
		m.sched.Schedule(timerListening, m.listeningDuration(e.Origin), func() {
			m.Handle(ListeningTimeout())
		})
	case EffectStopListeningTimer:
		m.sched.Cancel(timerListening)
	case EffectSetModemListening:
		m.modem.SetListeningEnabled(e.On, m.listeningDuration(e.Origin))
	case EffectSetTerrestrialScanning:
		m.modem.SetTerrestrialScanning(e.On, nil)
	case EffectDisableScanningForAttach:
		m.modem.SetTerrestrialScanning(false, func(err error) {
			if err != nil {
				slog.Warn("failed to disable terrestrial scanning",
					"event_id", "TN_SCAN_DISABLE_ERR",
					"error", err,
				)
			}
			m.Handle(ScanningDisabled(err == nil))
		})
	case EffectStartInactivityTimer:
		m.startInactivityTimer()
	case EffectStopInactivityTimer:
		m.sched.Cancel(timerInactivity)
	case EffectRestartInactivityTimer:
		m.sched.Cancel(timerInactivity)
		m.startInactivityTimer()
	}
}

func (m *Machine) startInactivityTimer() {
	d := m.timing.Inactivity
	if m.demoMode {
		d = m.timing.DemoInactivity
	}
	m.sched.Schedule(timerInactivity, d, func() {
		m.Handle(InactivityTimeout())
	})
}

// listeningDuration は待ち受け時間を返す。デモモードでは送受信に関わらず固定値。
func (m *Machine) listeningDuration(origin ListeningOrigin) time.Duration {
	switch {
	case m.demoMode:
		return m.timing.DemoListening
	case origin == OriginSending:
		return m.timing.ListeningFromSending
	default:
		return m.timing.ListeningFromReceiving
	}
}

func (m *Machine) notify(state State) {
	for _, id := range append([]string(nil), m.order...) {
		if l, ok := m.listeners[id]; ok {
			l.OnSessionStateChanged(state)
		}
	}
}
