package valkey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	opts := DefaultOptions().WithAddr(mr.Addr())
	client, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	// 接続確認
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if pong != "PONG" {
		t.Errorf("Ping() = %q, want %q", pong, "PONG")
	}
}

func TestNewClientWithContext(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := DefaultOptions().WithAddr(mr.Addr())
	client, err := NewClientWithContext(ctx, opts)
	if err != nil {
		t.Fatalf("NewClientWithContext() error = %v", err)
	}
	defer client.Close()

	// SET/GETテスト
	err = client.Set(ctx, "test-key", "test-value", 0).Err()
	if err != nil {
		t.Errorf("Set() error = %v", err)
	}

	val, err := client.Get(ctx, "test-key").Result()
	if err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if val != "test-value" {
		t.Errorf("Get() = %q, want %q", val, "test-value")
	}
}

func TestNewClientWithNilOptions(t *testing.T) {
	mr := miniredis.RunT(t)

	// nilオプションでもデフォルト値が使用される
	// ただし、miniredisのアドレスは使えないのでエラーになる
	// このテストはデフォルトオプションが適用されることの確認
	opts := DefaultOptions().WithAddr(mr.Addr())
	client, err := NewClientWithContext(context.Background(), opts)
	if err != nil {
		t.Fatalf("NewClientWithContext() error = %v", err)
	}
	defer client.Close()
}

func TestNewClientConnectionError(t *testing.T) {
	// 存在しないアドレスへの接続
	opts := DefaultOptions().
		WithAddr("localhost:59999").
		WithTimeouts(100*time.Millisecond, 100*time.Millisecond, 100*time.Millisecond)

	_, err := NewClient(opts)
	if err == nil {
		t.Error("NewClient() expected error for invalid address")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantNil  bool
		wantKind error
	}{
		{"nil error", nil, true, nil},
		{"redis.Nil is passed through", redis.Nil, false, redis.Nil},
		{"deadline exceeded", context.DeadlineExceeded, false, apperr.ErrValkeyConnection},
		{"command error", errors.New("WRONGTYPE Operation"), false, apperr.ErrValkeyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError("GET", "ntn:provisioned", tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.wantKind) {
				t.Errorf("WrapError() = %v, want errors.Is %v", got, tt.wantKind)
			}
		})
	}

	t.Run("ValkeyError carries operation and key", func(t *testing.T) {
		err := WrapError("RPUSH", "ntn:inbox", errors.New("OOM"))
		var ve *apperr.ValkeyError
		if !errors.As(err, &ve) {
			t.Fatalf("errors.As(ValkeyError) = false, err = %v", err)
		}
		if ve.Operation != "RPUSH" || ve.Key != "ntn:inbox" {
			t.Errorf("ValkeyError = {%q, %q}, want {%q, %q}", ve.Operation, ve.Key, "RPUSH", "ntn:inbox")
		}
	})
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"regular error", errors.New("some error"), false},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsConnectionError(tt.err)
			if got != tt.want {
				t.Errorf("IsConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsKeyNotFound(t *testing.T) {
	mr := miniredis.RunT(t)

	opts := DefaultOptions().WithAddr(mr.Addr())
	client, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	// 存在しないキーを取得
	_, err = client.Get(ctx, "non-existent-key").Result()
	if !IsKeyNotFound(err) {
		t.Errorf("IsKeyNotFound(%v) = false, want true", err)
	}

	// redis.Nilを直接テスト
	if !IsKeyNotFound(redis.Nil) {
		t.Error("IsKeyNotFound(redis.Nil) = false, want true")
	}

	// 他のエラーではfalse
	if IsKeyNotFound(errors.New("other error")) {
		t.Error("IsKeyNotFound(other error) = true, want false")
	}

	if IsKeyNotFound(nil) {
		t.Error("IsKeyNotFound(nil) = true, want false")
	}
}
