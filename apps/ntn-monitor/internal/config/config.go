// Package config はNTNモニターの設定管理を提供する。
package config

import (
	"os"
	"time"
)

// DefaultRefreshInterval は自動更新間隔の既定値
const DefaultRefreshInterval = 2 * time.Second

// Config はNTNモニターの設定を表す。
type Config struct {
	ValkeyAddr      string        // Valkeyアドレス
	ValkeyPassword  string        // Valkeyパスワード
	RefreshInterval time.Duration // 自動更新間隔
}

// Load は環境変数から設定を読み込む。
func Load() *Config {
	cfg := &Config{
		ValkeyAddr:      "127.0.0.1:6379",
		ValkeyPassword:  os.Getenv("VALKEY_PASSWORD"),
		RefreshInterval: DefaultRefreshInterval,
	}
	if addr := os.Getenv("VALKEY_ADDR"); addr != "" {
		cfg.ValkeyAddr = addr
	}
	if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}
	return cfg
}
