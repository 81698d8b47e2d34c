package modem

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Client はモデムゲートウェイHTTPクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string

	enableTimeout time.Duration
	sendTimeout   time.Duration
	pollTimeout   time.Duration
}

// NewClient は新しいモデムゲートウェイクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New()

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
					"from", from.String(),
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient:    httpClient,
		cb:            gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:       strings.TrimRight(cfg.ModemGatewayURL, "/"),
		enableTimeout: orDefault(cfg.EnableResponseTimeout),
		sendTimeout:   orDefault(cfg.SendResponseTimeout),
		pollTimeout:   orDefault(cfg.PollResponseTimeout),
	}
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return config.GatewayRequestTimeout
	}
	return d
}

// RequestEnabled は衛星モードの有効化・無効化を要求する。
func (c *Client) RequestEnabled(ctx context.Context, enable, demoMode, emergency bool) error {
	_, err := c.do(ctx, c.enableTimeout, http.MethodPost, PathEnable, &enableRequest{
		Enable:    enable,
		DemoMode:  demoMode,
		Emergency: emergency,
	})
	return err
}

// IsEnabled は衛星モードが有効かどうかを問い合わせる。
func (c *Client) IsEnabled(ctx context.Context) (bool, error) {
	return c.getBool(ctx, PathEnabled)
}

// IsSupported は衛星機能をサポートしているかを問い合わせる。
func (c *Client) IsSupported(ctx context.Context) (bool, error) {
	return c.getBool(ctx, PathSupported)
}

// IsProvisioned はプロビジョニング済みかどうかを問い合わせる。
func (c *Client) IsProvisioned(ctx context.Context) (bool, error) {
	return c.getBool(ctx, PathProvisioned)
}

// Capabilities は衛星機能情報を問い合わせる。
func (c *Client) Capabilities(ctx context.Context) (*model.Capabilities, error) {
	body, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodGet, PathCapabilities, nil)
	if err != nil {
		return nil, err
	}
	var caps model.Capabilities
	if err := json.Unmarshal(body, &caps); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &caps, nil
}

// SendDatagram はデータグラムを送信する。
func (c *Client) SendDatagram(ctx context.Context, payload []byte, emergency, needsPointingUI bool) error {
	_, err := c.do(ctx, c.sendTimeout, http.MethodPost, PathDatagrams, &sendDatagramRequest{
		Payload:         payload,
		Emergency:       emergency,
		NeedsPointingUI: needsPointingUI,
	})
	return err
}

// AbortAllSends は送信中の全データグラムの中断を要求する。
func (c *Client) AbortAllSends(ctx context.Context) error {
	_, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodPost, PathDatagramsAbort, nil)
	return err
}

// PollPendingDatagrams は未受信データグラムの取得を要求する。
// データグラム本体はプッシュイベントで届く。
func (c *Client) PollPendingDatagrams(ctx context.Context) error {
	_, err := c.do(ctx, c.pollTimeout, http.MethodPost, PathDatagramsPoll, nil)
	return err
}

// SetListeningEnabled は着信待ち受けモードを切り替える。
func (c *Client) SetListeningEnabled(ctx context.Context, enabled bool, timeout time.Duration) error {
	_, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodPost, PathListening, &listeningRequest{
		Enabled:   enabled,
		TimeoutMs: timeout.Milliseconds(),
	})
	return err
}

// SetTerrestrialScanning は地上網スキャンの可否を切り替える。
func (c *Client) SetTerrestrialScanning(ctx context.Context, enabled bool) error {
	_, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodPost, PathTerrestrialScanning, &toggleRequest{Enabled: enabled})
	return err
}

// SetSignalStrengthReporting は信号強度通知の開始・停止を要求する。
func (c *Client) SetSignalStrengthReporting(ctx context.Context, enabled bool) error {
	_, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodPost, PathSignalStrengthReporting, &toggleRequest{Enabled: enabled})
	return err
}

func (c *Client) getBool(ctx context.Context, path string) (bool, error) {
	body, err := c.do(ctx, config.GatewayRequestTimeout, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	var resp boolResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return resp.Value, nil
}

// do はCircuit Breaker経由でゲートウェイAPIを呼び出し、正常時のレスポンスボディを返す。
func (c *Client) do(ctx context.Context, timeout time.Duration, method, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderContentType, ContentTypeJSON)
		if traceID, ok := ctx.Value(traceIDKey{}).(string); ok && traceID != "" {
			req.SetHeader(HeaderTraceID, traceID)
		}
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, c.baseURL+path)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx（501除く）
		if statusCode >= 500 && statusCode != http.StatusNotImplemented {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Error("modem gateway error",
				"event_id", "MODEM_API_ERR",
				"path", path,
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		// CB失敗判定対象外のエラー: 4xx, 501
		if statusCode < 200 || statusCode >= 300 {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Warn("modem gateway rejected request",
				"event_id", "MODEM_API_ERR",
				"path", path,
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return apiErr, nil
		}

		slog.Debug("modem gateway success",
			"path", path,
			"latency_ms", latencyMs,
		)
		return resp.Body(), nil
	})

	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, ErrCircuitOpen
		}
		if apiErr, ok := err.(*APIError); ok {
			return nil, toModemError(apiErr)
		}
		return nil, err
	}

	if apiErr, ok := result.(*APIError); ok {
		return nil, toModemError(apiErr)
	}

	respBody, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return respBody, nil
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
func (c *Client) parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}
