package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 1 * time.Second
	ValkeyPoolSize       = 4
)

// モデムゲートウェイ接続設定
const (
	GatewayConnectTimeout = 2 * time.Second
	GatewayRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "modem-gateway"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// データグラム設定
const (
	// MaxDatagramID はデータグラムIDの上限（IDはこの値で循環する）
	MaxDatagramID = 1 << 16
	// InboxCapacity は受信データグラムの保持上限件数
	InboxCapacity = 100
	// DatagramWaitTimeout はHTTPからの同期送信で結果を待つ上限
	DatagramWaitTimeout = 5 * time.Minute
)

// NATS接続設定
const (
	NATSReconnectWait    = 2 * time.Second
	NATSMaxReconnectWait = 64 * time.Second
	NATSMaxReconnects    = -1
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
