package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/datagram"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

func newTestConfig(mr *miniredis.Miniredis) *config.Config {
	return &config.Config{
		RedisHost: mr.Host(),
		RedisPort: mr.Port(),
	}
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *ValkeyClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	vc, err := NewValkeyClient(newTestConfig(mr))
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { vc.Close() })
	return mr, vc
}

func TestNewValkeyClientConnectionError(t *testing.T) {
	cfg := &config.Config{RedisHost: "127.0.0.1", RedisPort: "1"}
	_, err := NewValkeyClient(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Errorf("expected ErrValkeyConnection, got: %v", err)
	}
}

func TestProvisionStore(t *testing.T) {
	mr, vc := newTestClient(t)
	ps := NewProvisionStore(vc)
	ctx := context.Background()

	_, found, err := ps.Provisioned(ctx)
	if err != nil {
		t.Fatalf("Provisioned failed: %v", err)
	}
	if found {
		t.Error("found = true before any write, want false")
	}

	if err := ps.SetProvisioned(ctx, true); err != nil {
		t.Fatalf("SetProvisioned failed: %v", err)
	}
	if got, _ := mr.Get(KeyProvisioned); got != "1" {
		t.Errorf("stored value = %q, want %q", got, "1")
	}

	provisioned, found, err := ps.Provisioned(ctx)
	if err != nil {
		t.Fatalf("Provisioned failed: %v", err)
	}
	if !found || !provisioned {
		t.Errorf("Provisioned() = (%v, %v), want (true, true)", provisioned, found)
	}

	if err := ps.SetProvisioned(ctx, false); err != nil {
		t.Fatalf("SetProvisioned failed: %v", err)
	}
	provisioned, found, _ = ps.Provisioned(ctx)
	if !found || provisioned {
		t.Errorf("Provisioned() = (%v, %v), want (false, true)", provisioned, found)
	}
}

func TestProvisionStoreCommandError(t *testing.T) {
	mr, vc := newTestClient(t)
	ps := NewProvisionStore(vc)
	mr.SetError("ERR simulated failure")

	_, _, err := ps.Provisioned(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var vErr *apperr.ValkeyError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValkeyError, got: %T", err)
	}
	if vErr.Key != KeyProvisioned {
		t.Errorf("Key = %q, want %q", vErr.Key, KeyProvisioned)
	}
	if !errors.Is(err, apperr.ErrValkeyCommand) {
		t.Errorf("expected ErrValkeyCommand, got: %v", err)
	}
}

func TestInboxStore(t *testing.T) {
	_, vc := newTestClient(t)
	is := NewInboxStore(vc, 3)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		d := model.NewReceivedDatagram([]byte{byte(i)}, int64(1000*i), 4-i)
		if err := is.Push(ctx, d); err != nil {
			t.Fatalf("Push(%d) failed: %v", i, err)
		}
	}

	all, err := is.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List length = %d, want 3", len(all))
	}
	// 新しい順、最古の1件は上限超過で破棄される
	wantFirst := []byte{4, 3, 2}
	for i, d := range all {
		if d.Payload[0] != wantFirst[i] {
			t.Errorf("all[%d].Payload = %v, want [%d]", i, d.Payload, wantFirst[i])
		}
	}
	if all[0].ReceivedAt != 4000 || all[0].Pending != 0 {
		t.Errorf("all[0] = %+v, want ReceivedAt=4000 Pending=0", all[0])
	}

	limited, err := is.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) length = %d, want 2", len(limited))
	}
}

func TestInboxStoreSkipsUndecodableItems(t *testing.T) {
	mr, vc := newTestClient(t)
	is := NewInboxStore(vc, 10)
	ctx := context.Background()

	if err := is.Push(ctx, model.NewReceivedDatagram([]byte("ok"), 1, 0)); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	mr.Lpush(KeyInbox, "not-json")

	items, err := is.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || string(items[0].Payload) != "ok" {
		t.Errorf("List() = %+v, want single item with payload %q", items, "ok")
	}
}

func TestStatsStore(t *testing.T) {
	_, vc := newTestClient(t)
	ss := NewStatsStore(vc)
	ctx := context.Background()

	records := []datagram.SendRecord{
		{Priority: model.PriorityEmergency, Size: 20, Result: "SUCCESS", Latency: 150 * time.Millisecond},
		{Priority: model.PriorityEmergency, Size: 10, Result: "ABORTED"},
		{Priority: model.PriorityNormal, Size: 30, Result: "SUCCESS", Latency: 2 * time.Second, Demo: true},
	}
	for _, rec := range records {
		if err := ss.RecordSend(ctx, rec); err != nil {
			t.Fatalf("RecordSend failed: %v", err)
		}
	}

	em, err := ss.Get(ctx, model.PriorityEmergency)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if em.Count != 2 || em.Bytes != 30 || em.LatencyMsTotal != 150 || em.DemoCount != 0 {
		t.Errorf("emergency stats = %+v", em)
	}
	if em.Results["SUCCESS"] != 1 || em.Results["ABORTED"] != 1 {
		t.Errorf("emergency results = %v", em.Results)
	}

	normal, err := ss.Get(ctx, model.PriorityNormal)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if normal.Count != 1 || normal.DemoCount != 1 || normal.LatencyMsTotal != 2000 {
		t.Errorf("normal stats = %+v", normal)
	}
}

func TestStatsStoreEmpty(t *testing.T) {
	_, vc := newTestClient(t)
	stats, err := NewStatsStore(vc).Get(context.Background(), model.PriorityNormal)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stats.Count != 0 || len(stats.Results) != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestStateStoreSave(t *testing.T) {
	_, vc := newTestClient(t)
	st := NewStateStore(vc)
	ctx := context.Background()

	if cur, err := st.Current(ctx); err != nil || cur != nil {
		t.Fatalf("Current() = (%v, %v), want (nil, nil)", cur, err)
	}

	for i, s := range []session.State{session.StatePowerOff, session.StateEnabling, session.StateIdle} {
		if err := st.Save(ctx, StateRecord{State: s, ChangedAt: int64(i + 1)}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	cur, err := st.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cur.State != session.StateIdle || cur.ChangedAt != 3 {
		t.Errorf("Current() = %+v, want IDLE at 3", cur)
	}

	history, err := st.History(ctx, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 || history[0].State != session.StateIdle || history[1].State != session.StateEnabling {
		t.Errorf("History(2) = %+v", history)
	}
}

func TestStateStoreRun(t *testing.T) {
	_, vc := newTestClient(t)
	st := NewStateStore(vc)
	st.now = func() time.Time { return time.UnixMilli(1704067200000) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx)
		close(done)
	}()

	st.OnSessionStateChanged(session.StatePowerOff)
	st.OnSessionStateChanged(session.StateEnabling)

	deadline := time.Now().Add(2 * time.Second)
	for {
		history, err := st.History(context.Background(), 0)
		if err == nil && len(history) == 2 {
			if history[0].State != session.StateEnabling || history[0].ChangedAt != 1704067200000 {
				t.Errorf("history[0] = %+v", history[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state history, got %d items", len(history))
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStateStoreDropsWhenFull(t *testing.T) {
	_, vc := newTestClient(t)
	st := NewStateStore(vc)

	for i := 0; i < stateBufferSize+5; i++ {
		st.OnSessionStateChanged(session.StateIdle)
	}
	if got := len(st.records); got != stateBufferSize {
		t.Errorf("buffered records = %d, want %d", got, stateBufferSize)
	}
}

var (
	_ datagram.Inbox    = (*InboxStore)(nil)
	_ datagram.Recorder = (*StatsStore)(nil)
	_ session.Listener  = (*StateStore)(nil)
)
