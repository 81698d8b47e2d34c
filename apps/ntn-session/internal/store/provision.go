package store

import (
	"context"

	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// ProvisionStore はプロビジョニング状態の永続化を提供する。
type ProvisionStore struct {
	client *ValkeyClient
}

// NewProvisionStore は新しいProvisionStoreを生成する。
func NewProvisionStore(client *ValkeyClient) *ProvisionStore {
	return &ProvisionStore{client: client}
}

// Provisioned は保存済みのプロビジョニング状態を返す。
// 未保存の場合はfoundにfalseを返す。
func (s *ProvisionStore) Provisioned(ctx context.Context) (provisioned, found bool, err error) {
	val, err := s.client.client.Get(ctx, KeyProvisioned).Result()
	if valkey.IsKeyNotFound(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, valkey.WrapError("GET", KeyProvisioned, err)
	}
	return val == "1", true, nil
}

// SetProvisioned はプロビジョニング状態を保存する。
func (s *ProvisionStore) SetProvisioned(ctx context.Context, provisioned bool) error {
	val := "0"
	if provisioned {
		val = "1"
	}
	if err := s.client.client.Set(ctx, KeyProvisioned, val, 0).Err(); err != nil {
		return valkey.WrapError("SET", KeyProvisioned, err)
	}
	return nil
}
