package controller

import "context"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=controller

// ProvisionStore はプロビジョニング状態の永続化インターフェース
type ProvisionStore interface {
	// Provisioned は保存済みのプロビジョニング状態を返す。未保存の場合はfoundがfalse。
	Provisioned(ctx context.Context) (provisioned bool, found bool, err error)
	// SetProvisioned はプロビジョニング状態を保存する。
	SetProvisioned(ctx context.Context, provisioned bool) error
}
