// Package eventloop はセッション制御の単一スレッド実行ループとタイマーを提供する。
//
// すべての可変状態はループのゴルーチン上でのみ操作する。
// 外部からの入力はPostでキューに積み、ブロッキングI/OはAsyncで
// ループ外に逃がして結果をループに戻す。
package eventloop

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"
)

// Clock は現在時刻を提供する。
type Clock interface {
	Now() time.Time
}

// Executor はループ外でブロッキング処理を実行する。
type Executor interface {
	Go(fn func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type goroutineExecutor struct{}

func (goroutineExecutor) Go(fn func()) { go fn() }

// Option はLoopの生成オプション。
type Option func(*Loop)

// WithClock は時刻ソースを差し替える。
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithExecutor は非同期処理の実行方法を差し替える。
func WithExecutor(e Executor) Option {
	return func(l *Loop) { l.exec = e }
}

// Loop はFIFOメッセージキューとタグ付きタイマーを持つ実行ループ。
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	timers timerHeap
	byTag  map[string]*timer
	seq    uint64

	clock Clock
	exec  Executor
	wake  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// New は新しいLoopを生成する。
func New(opts ...Option) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		byTag:  make(map[string]*timer),
		clock:  systemClock{},
		exec:   goroutineExecutor{},
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now はループの時刻ソースによる現在時刻を返す。
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post はfnをキューの末尾に積む。任意のゴルーチンから呼び出せる。
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.notify()
}

// Schedule はtagのタイマーをdelay後に設定する。
// 同じtagのタイマーが既に待機中の場合は何もせずfalseを返す。
func (l *Loop) Schedule(tag string, delay time.Duration, fn func()) bool {
	l.mu.Lock()
	if _, ok := l.byTag[tag]; ok {
		l.mu.Unlock()
		return false
	}
	l.seq++
	t := &timer{
		tag:    tag,
		fireAt: l.clock.Now().Add(delay),
		seq:    l.seq,
		fn:     fn,
	}
	heap.Push(&l.timers, t)
	l.byTag[tag] = t
	l.mu.Unlock()
	l.notify()
	return true
}

// Cancel はtagのタイマーを取り消す。待機中のタイマーがあった場合はtrueを返す。
func (l *Loop) Cancel(tag string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byTag[tag]
	if !ok {
		return false
	}
	heap.Remove(&l.timers, t.index)
	delete(l.byTag, tag)
	return true
}

// IsScheduled はtagのタイマーが待機中かどうかを返す。
func (l *Loop) IsScheduled(tag string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.byTag[tag]
	return ok
}

// Deadline はtagのタイマーの発火予定時刻を返す。
func (l *Loop) Deadline(tag string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byTag[tag]
	if !ok {
		return time.Time{}, false
	}
	return t.fireAt, true
}

// NextDeadline は最も早いタイマーの発火予定時刻を返す。
func (l *Loop) NextDeadline() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].fireAt, true
}

// Async はworkをループ外で実行し、完了後にdone(err)をループに積む。
func (l *Loop) Async(work func(ctx context.Context) error, done func(error)) {
	ctx := l.ctx
	l.exec.Go(func() {
		err := work(ctx)
		if done != nil {
			l.Post(func() { done(err) })
		}
	})
}

// Call はfnをループ上で実行し、完了まで呼び出し元をブロックする。
// ループのゴルーチンから呼び出してはならない。
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run はctxが終了するまでメッセージとタイマーを処理する。
func (l *Loop) Run(ctx context.Context) error {
	defer l.cancel()

	wait := time.NewTimer(time.Hour)
	wait.Stop()
	defer wait.Stop()

	for {
		l.Drain()

		if next, ok := l.NextDeadline(); ok {
			wait.Reset(max(next.Sub(l.clock.Now()), 0))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-wait.C:
		}
		wait.Stop()
	}
}

// Drain はキューが空になり期限到来済みのタイマーがなくなるまで処理を続ける。
// メッセージはタイマーより先に処理する。
func (l *Loop) Drain() {
	for {
		if fn := l.popMessage(); fn != nil {
			l.invoke("message", fn)
			continue
		}
		if t := l.popDueTimer(); t != nil {
			l.invoke(t.tag, t.fn)
			continue
		}
		return
	}
}

// Close はAsyncに渡したコンテキストを取り消す。
func (l *Loop) Close() {
	l.cancel()
}

func (l *Loop) popMessage() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

func (l *Loop) popDueTimer() *timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.timers) == 0 {
		return nil
	}
	t := l.timers[0]
	if t.fireAt.After(l.clock.Now()) {
		return nil
	}
	heap.Pop(&l.timers)
	delete(l.byTag, t.tag)
	return t
}

// invoke はパニックでループが停止しないようにfnを実行する。
func (l *Loop) invoke(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in event loop",
				"event_id", "EVENT_LOOP_PANIC",
				"source", name,
				"panic", r,
			)
		}
	}()
	fn()
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
