// Package eventlooptest はeventloopを決定的に駆動するテスト用ヘルパーを提供する。
package eventlooptest

import (
	"sync"
	"time"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/eventloop"
)

// Clock は手動で進める時刻ソース。
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock は2024-01-01T00:00:00Zを起点とするClockを生成する。
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now は現在時刻を返す。
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set は現在時刻を設定する。
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance は現在時刻をdだけ進める。
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Executor はRunAllが呼ばれるまで処理を保留する非同期実行器。
type Executor struct {
	mu      sync.Mutex
	pending []func()
}

// NewExecutor は新しいExecutorを生成する。
func NewExecutor() *Executor {
	return &Executor{}
}

// Go は処理を保留キューに積む。
func (e *Executor) Go(fn func()) {
	e.mu.Lock()
	e.pending = append(e.pending, fn)
	e.mu.Unlock()
}

// Len は保留中の処理数を返す。
func (e *Executor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// RunAll は保留中の処理を積まれた順にすべて実行し、実行件数を返す。
func (e *Executor) RunAll() int {
	n := 0
	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.mu.Unlock()
			return n
		}
		fn := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()
		fn()
		n++
	}
}

// Discard は保留中の処理を実行せずに破棄する。
// 応答が返らないモデムを再現する。
func (e *Executor) Discard() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.pending)
	e.pending = nil
	return n
}

// Harness はLoop・Clock・Executorを束ねたテスト用ドライバー。
type Harness struct {
	Loop  *eventloop.Loop
	Clock *Clock
	Exec  *Executor
}

// NewHarness は手動ClockとExecutorで駆動するLoopを生成する。
func NewHarness() *Harness {
	c := NewClock()
	e := NewExecutor()
	return &Harness{
		Loop:  eventloop.New(eventloop.WithClock(c), eventloop.WithExecutor(e)),
		Clock: c,
		Exec:  e,
	}
}

// Settle はループと非同期処理が両方とも静止するまで交互に実行する。
func (h *Harness) Settle() {
	for {
		h.Loop.Drain()
		if h.Exec.RunAll() == 0 {
			h.Loop.Drain()
			return
		}
	}
}

// Advance はタイマーを発火予定時刻順に1つずつ処理しながら時刻をdだけ進める。
func (h *Harness) Advance(d time.Duration) {
	h.Settle()
	target := h.Clock.Now().Add(d)
	for {
		next, ok := h.Loop.NextDeadline()
		if !ok || next.After(target) {
			break
		}
		if next.After(h.Clock.Now()) {
			h.Clock.Set(next)
		}
		h.Settle()
	}
	h.Clock.Set(target)
	h.Settle()
}

// AdvanceWithoutResponses はAdvanceと同様に時刻を進めるが、
// 非同期処理は実行せずに破棄する。応答しないモデムの再現に用いる。
func (h *Harness) AdvanceWithoutResponses(d time.Duration) {
	h.Loop.Drain()
	h.Exec.Discard()
	target := h.Clock.Now().Add(d)
	for {
		next, ok := h.Loop.NextDeadline()
		if !ok || next.After(target) {
			break
		}
		if next.After(h.Clock.Now()) {
			h.Clock.Set(next)
		}
		h.Loop.Drain()
		h.Exec.Discard()
	}
	h.Clock.Set(target)
	h.Loop.Drain()
}
