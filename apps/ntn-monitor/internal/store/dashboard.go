package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// StateEntry はセッション状態1件を表す。
type StateEntry struct {
	State     string `json:"state"`
	ChangedAt int64  `json:"changed_at"`
}

// SendStats は送信メトリクスの集計値を表す。
type SendStats struct {
	Count          int64
	Bytes          int64
	LatencyMsTotal int64
	DemoCount      int64
	Results        map[string]int64
}

// Dashboard はモニター画面1回分の表示データを表す。
type Dashboard struct {
	Current   *StateEntry // 未記録の場合はnil
	History   []StateEntry
	Inbox     []*model.ReceivedDatagram
	Emergency SendStats
	Normal    SendStats
	UpdatedAt time.Time
}

// DashboardStore はDashboardの読み出しを提供する。
type DashboardStore struct {
	client *redis.Client
	limit  int64
}

// NewDashboardStore は新しいDashboardStoreを生成する。limitは履歴・受信一覧の表示件数。
func NewDashboardStore(client *redis.Client, limit int) *DashboardStore {
	if limit <= 0 {
		limit = 10
	}
	return &DashboardStore{client: client, limit: int64(limit)}
}

// Get はDashboardを1回のパイプラインで読み出す。
func (s *DashboardStore) Get(ctx context.Context) (*Dashboard, error) {
	pipe := s.client.Pipeline()
	current := pipe.HGetAll(ctx, KeySessionState)
	history := pipe.LRange(ctx, KeySessionHistory, 0, s.limit-1)
	inbox := pipe.LRange(ctx, KeyInbox, 0, s.limit-1)
	emergency := pipe.HGetAll(ctx, StatsKey(string(model.PriorityEmergency)))
	normal := pipe.HGetAll(ctx, StatsKey(string(model.PriorityNormal)))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, valkey.WrapError("PIPELINE", KeySessionState, err)
	}

	d := &Dashboard{
		Emergency: parseStats(emergency.Val()),
		Normal:    parseStats(normal.Val()),
		UpdatedAt: time.Now(),
	}
	if fields := current.Val(); len(fields) > 0 {
		entry := &StateEntry{State: fields["state"]}
		entry.ChangedAt, _ = strconv.ParseInt(fields["changed_at"], 10, 64)
		d.Current = entry
	}
	for _, item := range history.Val() {
		var e StateEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		d.History = append(d.History, e)
	}
	for _, item := range inbox.Val() {
		var r model.ReceivedDatagram
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			continue
		}
		d.Inbox = append(d.Inbox, &r)
	}
	return d, nil
}

// ClearInbox は受信データグラム一覧を削除する。
func (s *DashboardStore) ClearInbox(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyInbox).Err(); err != nil {
		return fmt.Errorf("failed to clear inbox: %w", valkey.WrapError("DEL", KeyInbox, err))
	}
	return nil
}

func parseStats(fields map[string]string) SendStats {
	stats := SendStats{Results: make(map[string]int64)}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == "count":
			stats.Count = n
		case field == "bytes":
			stats.Bytes = n
		case field == "latency_ms_total":
			stats.LatencyMsTotal = n
		case field == "demo_count":
			stats.DemoCount = n
		case strings.HasPrefix(field, "result:"):
			stats.Results[strings.TrimPrefix(field, "result:")] = n
		}
	}
	return stats
}
