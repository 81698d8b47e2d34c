package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/datagram"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// SendStats は優先度ごとの送信メトリクスの集計値。
type SendStats struct {
	Count          int64            `json:"count"`
	Bytes          int64            `json:"bytes"`
	LatencyMsTotal int64            `json:"latency_ms_total"`
	DemoCount      int64            `json:"demo_count"`
	Results        map[string]int64 `json:"results"`
}

// StatsStore は送信メトリクスをValkeyのハッシュに集計する。
type StatsStore struct {
	client *ValkeyClient
}

// NewStatsStore は新しいStatsStoreを生成する。
func NewStatsStore(client *ValkeyClient) *StatsStore {
	return &StatsStore{client: client}
}

// RecordSend は送信結果1件を集計に加える。
func (s *StatsStore) RecordSend(ctx context.Context, rec datagram.SendRecord) error {
	key := statsKey(rec.Priority)

	pipe := s.client.client.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldCount, 1)
	pipe.HIncrBy(ctx, key, fieldBytes, int64(rec.Size))
	pipe.HIncrBy(ctx, key, fieldLatencyMsTotal, rec.Latency.Milliseconds())
	pipe.HIncrBy(ctx, key, fieldResultPrefix+rec.Result, 1)
	if rec.Demo {
		pipe.HIncrBy(ctx, key, fieldDemoCount, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.WrapError("HINCRBY", key, err)
	}
	return nil
}

// Get は優先度ごとの集計値を返す。記録がない場合はゼロ値を返す。
func (s *StatsStore) Get(ctx context.Context, priority model.Priority) (*SendStats, error) {
	key := statsKey(priority)
	fields, err := s.client.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.WrapError("HGETALL", key, err)
	}

	stats := &SendStats{Results: make(map[string]int64)}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == fieldCount:
			stats.Count = n
		case field == fieldBytes:
			stats.Bytes = n
		case field == fieldLatencyMsTotal:
			stats.LatencyMsTotal = n
		case field == fieldDemoCount:
			stats.DemoCount = n
		case strings.HasPrefix(field, fieldResultPrefix):
			stats.Results[strings.TrimPrefix(field, fieldResultPrefix)] = n
		}
	}
	return stats, nil
}

func statsKey(p model.Priority) string {
	return KeyStatsPrefix + string(p)
}
