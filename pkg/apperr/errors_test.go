package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		// セッション制御関連
		{"ErrModemTimeout", ErrModemTimeout, "modem timeout"},
		{"ErrModem", ErrModem, "modem error"},
		{"ErrInvalidState", ErrInvalidState, "invalid state"},
		{"ErrRequestInProgress", ErrRequestInProgress, "request in progress"},
		{"ErrNotSupported", ErrNotSupported, "satellite not supported"},
		{"ErrNotProvisioned", ErrNotProvisioned, "satellite not provisioned"},
		{"ErrInvalidArguments", ErrInvalidArguments, "invalid arguments"},
		// データグラム関連
		{"ErrAborted", ErrAborted, "request aborted"},
		{"ErrNotReachable", ErrNotReachable, "satellite not reachable"},
		{"ErrPayloadTooLarge", ErrPayloadTooLarge, "payload too large"},
		// インフラ関連
		{"ErrValkeyConnection", ErrValkeyConnection, "valkey connection error"},
		{"ErrValkeyCommand", ErrValkeyCommand, "valkey command error"},
		{"ErrGatewayUnavailable", ErrGatewayUnavailable, "modem gateway unavailable"},
		// バリデーション関連
		{"ErrInvalidRequest", ErrInvalidRequest, "invalid request"},
		{"ErrInvalidRadio", ErrInvalidRadio, "invalid radio name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrModemTimeout, ErrModem, ErrInvalidState, ErrRequestInProgress,
		ErrNotSupported, ErrNotProvisioned, ErrInvalidArguments,
		ErrAborted, ErrNotReachable, ErrPayloadTooLarge,
		ErrValkeyConnection, ErrValkeyCommand, ErrGatewayUnavailable,
		ErrInvalidRequest, ErrInvalidRadio,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("errors.Is(%v, %v) = true, want false", err1, err2)
			}
		}
	}
}

func TestResultCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ResultSuccess},
		{"timeout", ErrModemTimeout, ResultModemTimeout},
		{"wrapped timeout", fmt.Errorf("enable: %w", ErrModemTimeout), ResultModemTimeout},
		{"modem error", NewModemError(7, nil), ResultModemError},
		{"invalid state", ErrInvalidState, ResultInvalidState},
		{"in progress", ErrRequestInProgress, ResultRequestInProgress},
		{"not supported", ErrNotSupported, ResultNotSupported},
		{"not provisioned", ErrNotProvisioned, ResultNotProvisioned},
		{"invalid arguments", ErrInvalidArguments, ResultInvalidArguments},
		{"payload too large", ErrPayloadTooLarge, ResultInvalidArguments},
		{"validation", NewValidationError("payload", "empty"), ResultInvalidArguments},
		{"aborted", ErrAborted, ResultAborted},
		{"not reachable", ErrNotReachable, ResultNotReachable},
		{"gateway unavailable", ErrGatewayUnavailable, ResultGatewayUnavailable},
		{"unknown", errors.New("boom"), ResultInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResultCode(tt.err); got != tt.want {
				t.Errorf("ResultCode(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
