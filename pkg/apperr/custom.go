package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// Unwrap はErrInvalidRequestを返す。
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ModemError はモデムが返したエラーコードを表す。
type ModemError struct {
	Code  int   // モデム固有のエラーコード
	Cause error // 根本原因（任意）
}

// Error はerrorインターフェースを実装する。
func (e *ModemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("modem error: code=%d, cause=%v", e.Code, e.Cause)
	}
	return fmt.Sprintf("modem error: code=%d", e.Code)
}

// Is はErrModemとの比較を可能にする。
func (e *ModemError) Is(target error) bool {
	return target == ErrModem
}

// Unwrap は根本原因を返す。
func (e *ModemError) Unwrap() error {
	return e.Cause
}

// NewModemError はModemErrorを生成する。
func NewModemError(code int, cause error) *ModemError {
	return &ModemError{
		Code:  code,
		Cause: cause,
	}
}

// ValkeyError はValkeyとの操作エラーを表す。
type ValkeyError struct {
	Operation string // 操作名（GET, SET, RPUSH等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
