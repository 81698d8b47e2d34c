package eventloop_test

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/eventloop"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/eventloop/eventlooptest"
)

func TestPostRunsInOrder(t *testing.T) {
	h := eventlooptest.NewHarness()
	var got []int
	for i := 1; i <= 3; i++ {
		h.Loop.Post(func() { got = append(got, i) })
	}
	h.Loop.Drain()

	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestScheduleIsIdempotentPerTag(t *testing.T) {
	h := eventlooptest.NewHarness()
	fired := 0

	if !h.Loop.Schedule("listening", 3*time.Second, func() { fired++ }) {
		t.Fatal("first Schedule() = false, want true")
	}
	if h.Loop.Schedule("listening", 1*time.Second, func() { fired += 10 }) {
		t.Error("second Schedule() = true, want false")
	}

	h.Advance(2 * time.Second)
	if fired != 0 {
		t.Errorf("fired = %d before deadline, want 0", fired)
	}
	h.Advance(1 * time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if h.Loop.IsScheduled("listening") {
		t.Error("IsScheduled() = true after firing, want false")
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	h := eventlooptest.NewHarness()
	fired := false
	h.Loop.Schedule("inactivity", time.Second, func() { fired = true })

	if !h.Loop.Cancel("inactivity") {
		t.Error("Cancel() = false, want true")
	}
	if h.Loop.Cancel("inactivity") {
		t.Error("second Cancel() = true, want false")
	}
	h.Advance(time.Minute)
	if fired {
		t.Error("canceled timer fired")
	}
}

func TestCancelFromEarlierTimerAtSameInstant(t *testing.T) {
	h := eventlooptest.NewHarness()
	fired := false
	h.Loop.Schedule("a", time.Second, func() { h.Loop.Cancel("b") })
	h.Loop.Schedule("b", time.Second, func() { fired = true })

	h.Advance(time.Second)
	if fired {
		t.Error("timer canceled by an earlier timer fired")
	}
}

func TestTimersFireInDeadlineOrder(t *testing.T) {
	h := eventlooptest.NewHarness()
	var got []string
	h.Loop.Schedule("late", 5*time.Second, func() { got = append(got, "late") })
	h.Loop.Schedule("early", 1*time.Second, func() { got = append(got, "early") })
	h.Loop.Schedule("mid", 3*time.Second, func() { got = append(got, "mid") })

	h.Advance(10 * time.Second)
	if want := []string{"early", "mid", "late"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDeadline(t *testing.T) {
	h := eventlooptest.NewHarness()
	start := h.Clock.Now()
	h.Loop.Schedule("send", 180*time.Second, func() {})

	got, ok := h.Loop.Deadline("send")
	if !ok {
		t.Fatal("Deadline() ok = false, want true")
	}
	if want := start.Add(180 * time.Second); !got.Equal(want) {
		t.Errorf("Deadline() = %v, want %v", got, want)
	}
	if _, ok := h.Loop.Deadline("missing"); ok {
		t.Error("Deadline(missing) ok = true, want false")
	}
}

func TestAsyncPostsResultBackToLoop(t *testing.T) {
	h := eventlooptest.NewHarness()
	wantErr := errors.New("modem busy")
	var got error
	done := false

	h.Loop.Async(func(ctx context.Context) error {
		return wantErr
	}, func(err error) {
		got = err
		done = true
	})

	h.Loop.Drain()
	if done {
		t.Fatal("done ran before executor")
	}
	h.Settle()
	if !done {
		t.Fatal("done did not run")
	}
	if !errors.Is(got, wantErr) {
		t.Errorf("err = %v, want %v", got, wantErr)
	}
}

func TestDiscardedAsyncNeverCompletes(t *testing.T) {
	h := eventlooptest.NewHarness()
	done := false
	h.Loop.Async(func(ctx context.Context) error { return nil }, func(error) { done = true })

	h.AdvanceWithoutResponses(time.Minute)
	h.Settle()
	if done {
		t.Error("discarded async work completed")
	}
}

func TestPanicDoesNotStopLoop(t *testing.T) {
	h := eventlooptest.NewHarness()
	ran := false
	h.Loop.Post(func() { panic("boom") })
	h.Loop.Post(func() { ran = true })
	h.Loop.Drain()

	if !ran {
		t.Error("message after panic did not run")
	}
}

func TestRunAndCall(t *testing.T) {
	l := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var counter atomic.Int32
	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()
	if err := l.Call(callCtx, func() { counter.Add(1) }); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if counter.Load() != 1 {
		t.Errorf("counter = %d, want 1", counter.Load())
	}

	fired := make(chan struct{})
	l.Post(func() {
		l.Schedule("tick", 10*time.Millisecond, func() { close(fired) })
	})
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire under Run")
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want %v", err, context.Canceled)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestCallHonorsContext(t *testing.T) {
	l := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// ループを起動していないため処理は実行されない
	err := l.Call(ctx, func() {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Call() error = %v, want %v", err, context.Canceled)
	}
}
