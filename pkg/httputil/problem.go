// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
)

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
type ProblemDetail struct {
	Type   string `json:"type"`             // エラータイプのURI
	Title  string `json:"title"`            // エラータイトル
	Status int    `json:"status"`           // HTTPステータスコード
	Detail string `json:"detail,omitempty"` // 詳細説明
	Code   string `json:"code,omitempty"`   // 結果コード（apperr.Result*）
}

// NewProblemDetail は新しいProblemDetailを生成する。
func NewProblemDetail(status int, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// BadRequest は400 Bad Requestのエラーレスポンスを生成する。
func BadRequest(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadRequest, "Bad Request", detail)
}

// NotFound は404 Not Foundのエラーレスポンスを生成する。
func NotFound(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotFound, "Not Found", detail)
}

// Forbidden は403 Forbiddenのエラーレスポンスを生成する。
func Forbidden(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusForbidden, "Forbidden", detail)
}

// Conflict は409 Conflictのエラーレスポンスを生成する。
func Conflict(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusConflict, "Conflict", detail)
}

// InternalServerError は500 Internal Server Errorのエラーレスポンスを生成する。
func InternalServerError(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusInternalServerError, "Internal Server Error", detail)
}

// BadGateway は502 Bad Gatewayのエラーレスポンスを生成する。
func BadGateway(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadGateway, "Bad Gateway", detail)
}

// NotImplemented は501 Not Implementedのエラーレスポンスを生成する。
func NotImplemented(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotImplemented, "Not Implemented", detail)
}

// ServiceUnavailable は503 Service Unavailableのエラーレスポンスを生成する。
func ServiceUnavailable(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusServiceUnavailable, "Service Unavailable", detail)
}

// GatewayTimeout は504 Gateway Timeoutのエラーレスポンスを生成する。
func GatewayTimeout(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusGatewayTimeout, "Gateway Timeout", detail)
}

// WithCode は結果コードを設定したProblemDetailを返す。
func (p *ProblemDetail) WithCode(code string) *ProblemDetail {
	p.Code = code
	return p
}

// FromError はエラーを結果コードに応じたProblemDetailに変換する。
func FromError(err error) *ProblemDetail {
	code := apperr.ResultCode(err)
	var detail string
	if err != nil {
		detail = err.Error()
	}

	var p *ProblemDetail
	switch code {
	case apperr.ResultInvalidArguments:
		p = BadRequest(detail)
	case apperr.ResultNotProvisioned:
		p = Forbidden(detail)
	case apperr.ResultInvalidState, apperr.ResultRequestInProgress, apperr.ResultAborted:
		p = Conflict(detail)
	case apperr.ResultNotSupported:
		p = NotImplemented(detail)
	case apperr.ResultModemError:
		p = BadGateway(detail)
	case apperr.ResultModemTimeout:
		p = GatewayTimeout(detail)
	case apperr.ResultNotReachable, apperr.ResultGatewayUnavailable:
		p = ServiceUnavailable(detail)
	default:
		// Valkey障害等の内部エラーは詳細を隠す
		if errors.Is(err, apperr.ErrValkeyConnection) || errors.Is(err, apperr.ErrValkeyCommand) {
			detail = "storage unavailable"
		}
		p = InternalServerError(detail)
	}
	return p.WithCode(code)
}

// JSON はProblemDetailをJSON形式にエンコードする。
func (p *ProblemDetail) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// MustJSON はProblemDetailをJSON形式にエンコードする。
// エンコードに失敗した場合はパニックする。
func (p *ProblemDetail) MustJSON() []byte {
	data, err := p.JSON()
	if err != nil {
		panic(err)
	}
	return data
}

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"
