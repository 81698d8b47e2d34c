package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// InboxStore は受信データグラムを上限件数つきのリストに保存する。
type InboxStore struct {
	client   *ValkeyClient
	capacity int64
}

// NewInboxStore は新しいInboxStoreを生成する。capacityを超えた古いデータグラムは破棄される。
func NewInboxStore(client *ValkeyClient, capacity int) *InboxStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &InboxStore{client: client, capacity: int64(capacity)}
}

// Push は受信データグラムを先頭に追加する。
func (s *InboxStore) Push(ctx context.Context, d *model.ReceivedDatagram) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal datagram: %w", err)
	}

	pipe := s.client.client.TxPipeline()
	pipe.LPush(ctx, KeyInbox, data)
	pipe.LTrim(ctx, KeyInbox, 0, s.capacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.WrapError("LPUSH", KeyInbox, err)
	}
	return nil
}

// List は新しい順に最大limit件の受信データグラムを返す。limitが0以下の場合は全件を返す。
// デコードできない要素はスキップする。
func (s *InboxStore) List(ctx context.Context, limit int) ([]*model.ReceivedDatagram, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := s.client.client.LRange(ctx, KeyInbox, 0, stop).Result()
	if err != nil {
		return nil, valkey.WrapError("LRANGE", KeyInbox, err)
	}

	result := make([]*model.ReceivedDatagram, 0, len(items))
	for _, item := range items {
		var d model.ReceivedDatagram
		if err := json.Unmarshal([]byte(item), &d); err != nil {
			slog.Warn("skipping undecodable inbox item",
				"event_id", "INBOX_DECODE_ERR",
				"error", err,
			)
			continue
		}
		result = append(result, &d)
	}
	return result, nil
}
