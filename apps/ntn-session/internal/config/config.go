// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Config はNTNセッション制御サービスの設定を保持する。
type Config struct {
	// Valkey設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" default:""`

	// サーバー設定
	ListenAddr     string `envconfig:"LISTEN_ADDR" default:":8080"`
	GinMode        string `envconfig:"GIN_MODE" default:"release"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskPayload bool   `envconfig:"LOG_MASK_PAYLOAD" default:"true"`

	// モデムゲートウェイ設定（空の場合はシミュレーター）
	ModemGatewayURL string `envconfig:"MODEM_GATEWAY_URL" default:""`

	// NATS設定（空の場合はイベント受信無効）
	NATSURL           string `envconfig:"NATS_URL" default:""`
	NATSSubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"ntn"`

	// 衛星設定
	SatelliteSupported bool   `envconfig:"SATELLITE_SUPPORTED" default:"true"`
	AttachRequired     bool   `envconfig:"ATTACH_REQUIRED" default:"false"`
	CoexistRadios      string `envconfig:"COEXIST_RADIOS" default:""`

	// タイマー設定
	EnableResponseTimeout      time.Duration `envconfig:"ENABLE_RESPONSE_TIMEOUT" default:"20s"`
	SendResponseTimeout        time.Duration `envconfig:"SEND_RESPONSE_TIMEOUT" default:"180s"`
	PollResponseTimeout        time.Duration `envconfig:"POLL_RESPONSE_TIMEOUT" default:"60s"`
	ListeningFromSending       time.Duration `envconfig:"LISTENING_FROM_SENDING" default:"180s"`
	ListeningFromReceiving     time.Duration `envconfig:"LISTENING_FROM_RECEIVING" default:"30s"`
	DemoListening              time.Duration `envconfig:"DEMO_LISTENING" default:"3s"`
	NBIoTInactivityTimeout     time.Duration `envconfig:"NB_IOT_INACTIVITY_TIMEOUT" default:"180s"`
	DemoNBIoTInactivityTimeout time.Duration `envconfig:"DEMO_NB_IOT_INACTIVITY_TIMEOUT" default:"60s"`
	WaitForConnectedTimeout    time.Duration `envconfig:"WAIT_FOR_CONNECTED_TIMEOUT" default:"60s"`
	DemoSendDelay              time.Duration `envconfig:"DEMO_SEND_DELAY" default:"10s"`

	// データグラム設定
	RoundingUnit    int  `envconfig:"ROUNDING_UNIT" default:"10"`
	DemoSendToModem bool `envconfig:"DEMO_SEND_TO_MODEM" default:"false"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// RedisAddr はValkey接続文字列を返す。
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// UseSimulator はモデムシミュレーターを使用するかどうかを返す。
func (c *Config) UseSimulator() bool {
	return c.ModemGatewayURL == ""
}

// Radios は衛星有効化前に停止を待つ共存無線の一覧を返す。
func (c *Config) Radios() []model.Radio {
	var radios []model.Radio
	for _, name := range strings.Split(c.CoexistRadios, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if r, ok := model.ParseRadio(name); ok {
			radios = append(radios, r)
		}
	}
	return radios
}

// validate は設定値のバリデーションを行う。
func (c *Config) validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"ENABLE_RESPONSE_TIMEOUT", c.EnableResponseTimeout},
		{"SEND_RESPONSE_TIMEOUT", c.SendResponseTimeout},
		{"POLL_RESPONSE_TIMEOUT", c.PollResponseTimeout},
		{"LISTENING_FROM_SENDING", c.ListeningFromSending},
		{"LISTENING_FROM_RECEIVING", c.ListeningFromReceiving},
		{"DEMO_LISTENING", c.DemoListening},
		{"NB_IOT_INACTIVITY_TIMEOUT", c.NBIoTInactivityTimeout},
		{"DEMO_NB_IOT_INACTIVITY_TIMEOUT", c.DemoNBIoTInactivityTimeout},
		{"WAIT_FOR_CONNECTED_TIMEOUT", c.WaitForConnectedTimeout},
		{"DEMO_SEND_DELAY", c.DemoSendDelay},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive: %v", d.name, d.d)
		}
	}
	if c.RoundingUnit <= 0 {
		return fmt.Errorf("ROUNDING_UNIT must be positive: %d", c.RoundingUnit)
	}
	for _, name := range strings.Split(c.CoexistRadios, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := model.ParseRadio(name); !ok {
			return fmt.Errorf("COEXIST_RADIOS contains unknown radio: %q", name)
		}
	}
	if c.ModemGatewayURL != "" &&
		!strings.HasPrefix(c.ModemGatewayURL, "http://") && !strings.HasPrefix(c.ModemGatewayURL, "https://") {
		return fmt.Errorf("MODEM_GATEWAY_URL must start with http:// or https://")
	}
	return nil
}
