package modem

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = fmt.Errorf("%w: circuit breaker is open", apperr.ErrGatewayUnavailable)

	// ErrInvalidResponse はゲートウェイからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from modem gateway")
)

// APIError はHTTP APIエラーを表す
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetails
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("modem gateway error: %d %s - %s", e.StatusCode, e.Details.Title, e.Details.Detail)
	}
	return fmt.Sprintf("modem gateway error: %d %s", e.StatusCode, e.Message)
}

// Unwrap はサーバーエラーの場合にErrGatewayUnavailableを返す。
func (e *APIError) Unwrap() error {
	if e.IsServerError() {
		return apperr.ErrGatewayUnavailable
	}
	return nil
}

// ModemCode はモデムのエラーコードを返す。含まれない場合は0。
func (e *APIError) ModemCode() int {
	if e.Details == nil {
		return 0
	}
	return e.Details.Code
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is はErrGatewayUnavailableとの比較を可能にする。
func (e *ConnectionError) Is(target error) bool {
	return target == apperr.ErrGatewayUnavailable
}

// toModemError はモデムのエラーコードを含むAPIErrorをapperr.ModemErrorに変換する。
func toModemError(err *APIError) error {
	if code := err.ModemCode(); code != 0 {
		return apperr.NewModemError(code, err)
	}
	return err
}
