package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// stateBufferSize は書き込み待ちのセッション状態の上限件数
const stateBufferSize = 64

// StateRecord はValkeyに保存するセッション状態1件。
type StateRecord struct {
	State     session.State `json:"state"`
	ChangedAt int64         `json:"changed_at"` // Unixミリ秒
}

// StateStore はセッション状態の変化をValkeyに記録する。
// OnSessionStateChangedはイベントループ上で呼ばれるため書き込みはRunのゴルーチンで行う。
type StateStore struct {
	client  *ValkeyClient
	records chan StateRecord
	now     func() time.Time
}

// NewStateStore は新しいStateStoreを生成する。
func NewStateStore(client *ValkeyClient) *StateStore {
	return &StateStore{
		client:  client,
		records: make(chan StateRecord, stateBufferSize),
		now:     time.Now,
	}
}

// OnSessionStateChanged はsession.Listenerを実装する。
// バッファが満杯の場合は記録を破棄する。
func (s *StateStore) OnSessionStateChanged(state session.State) {
	rec := StateRecord{State: state, ChangedAt: s.now().UnixMilli()}
	select {
	case s.records <- rec:
	default:
		slog.Warn("session state record dropped",
			"event_id", "STATE_STORE_DROP",
			"session_state", state,
		)
	}
}

// Run はctxが終了するまでセッション状態を書き込む。
func (s *StateStore) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-s.records:
			wctx, cancel := context.WithTimeout(ctx, config.ValkeyCommandTimeout)
			if err := s.Save(wctx, rec); err != nil {
				slog.Error("failed to save session state",
					"event_id", "VALKEY_CONN_ERR",
					"session_state", rec.State,
					"error", err,
				)
			}
			cancel()
		}
	}
}

// Save は現在状態を更新し、履歴に追加する。
func (s *StateStore) Save(ctx context.Context, rec StateRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	pipe := s.client.client.TxPipeline()
	pipe.HSet(ctx, KeySessionState, "state", string(rec.State), "changed_at", rec.ChangedAt)
	pipe.LPush(ctx, KeySessionHistory, data)
	pipe.LTrim(ctx, KeySessionHistory, 0, sessionHistoryCapacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.WrapError("HSET", KeySessionState, err)
	}
	return nil
}

// Current は保存済みの現在状態を返す。未保存の場合はnilを返す。
func (s *StateStore) Current(ctx context.Context) (*StateRecord, error) {
	fields, err := s.client.client.HGetAll(ctx, KeySessionState).Result()
	if err != nil {
		return nil, valkey.WrapError("HGETALL", KeySessionState, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	rec := &StateRecord{State: session.State(fields["state"])}
	rec.ChangedAt, _ = strconv.ParseInt(fields["changed_at"], 10, 64)
	return rec, nil
}

// History は新しい順に最大limit件の状態履歴を返す。
func (s *StateStore) History(ctx context.Context, limit int) ([]StateRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := s.client.client.LRange(ctx, KeySessionHistory, 0, stop).Result()
	if err != nil {
		return nil, valkey.WrapError("LRANGE", KeySessionHistory, err)
	}
	result := make([]StateRecord, 0, len(items))
	for _, item := range items {
		var rec StateRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}
