// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// セッション制御関連エラー
var (
	// ErrModemTimeout はモデムが期限内に応答しなかった場合のエラー
	ErrModemTimeout = errors.New("modem timeout")
	// ErrModem はモデムがエラーコードを返した場合のエラー（ModemErrorがラップする）
	ErrModem = errors.New("modem error")
	// ErrInvalidState は現在のライフサイクルと矛盾する要求のエラー
	ErrInvalidState = errors.New("invalid state")
	// ErrRequestInProgress は同方向の要求が処理中の場合のエラー
	ErrRequestInProgress = errors.New("request in progress")
	// ErrNotSupported は衛星機能が未サポートの場合のエラー
	ErrNotSupported = errors.New("satellite not supported")
	// ErrNotProvisioned は衛星サービスが未プロビジョニングの場合のエラー
	ErrNotProvisioned = errors.New("satellite not provisioned")
	// ErrInvalidArguments は要求パラメータが現在のセッションと矛盾する場合のエラー
	ErrInvalidArguments = errors.New("invalid arguments")
)

// データグラム関連エラー
var (
	// ErrAborted は兄弟要求の失敗に伴う巻き添えキャンセルのエラー
	ErrAborted = errors.New("request aborted")
	// ErrNotReachable は衛星接続待ちがタイムアウトした場合のエラー
	ErrNotReachable = errors.New("satellite not reachable")
	// ErrPayloadTooLarge はペイロードがモデムの上限を超える場合のエラー
	ErrPayloadTooLarge = errors.New("payload too large")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
	// ErrGatewayUnavailable はモデムゲートウェイへ到達できない場合のエラー
	ErrGatewayUnavailable = errors.New("modem gateway unavailable")
)

// バリデーション関連エラー
var (
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRadio は未知の共存無線名エラー
	ErrInvalidRadio = errors.New("invalid radio name")
)

// 結果コード（APIレスポンス・ログ用）
const (
	ResultSuccess            = "SUCCESS"
	ResultModemTimeout       = "MODEM_TIMEOUT"
	ResultModemError         = "MODEM_ERROR"
	ResultInvalidState       = "INVALID_STATE"
	ResultRequestInProgress  = "REQUEST_IN_PROGRESS"
	ResultNotSupported       = "NOT_SUPPORTED"
	ResultNotProvisioned     = "NOT_PROVISIONED"
	ResultInvalidArguments   = "INVALID_ARGUMENTS"
	ResultAborted            = "REQUEST_ABORTED"
	ResultNotReachable       = "NOT_REACHABLE"
	ResultGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ResultInternalError      = "INTERNAL_ERROR"
)

// resultCodes はセンチネルエラーと結果コードの対応表（評価順）
var resultCodes = []struct {
	err  error
	code string
}{
	{ErrModemTimeout, ResultModemTimeout},
	{ErrModem, ResultModemError},
	{ErrInvalidState, ResultInvalidState},
	{ErrRequestInProgress, ResultRequestInProgress},
	{ErrNotSupported, ResultNotSupported},
	{ErrNotProvisioned, ResultNotProvisioned},
	{ErrInvalidArguments, ResultInvalidArguments},
	{ErrPayloadTooLarge, ResultInvalidArguments},
	{ErrInvalidRequest, ResultInvalidArguments},
	{ErrInvalidRadio, ResultInvalidArguments},
	{ErrAborted, ResultAborted},
	{ErrNotReachable, ResultNotReachable},
	{ErrGatewayUnavailable, ResultGatewayUnavailable},
}

// ResultCode はエラーを結果コード文字列に変換する。
// nilはSUCCESS、未分類のエラーはINTERNAL_ERRORを返す。
func ResultCode(err error) string {
	if err == nil {
		return ResultSuccess
	}
	for _, rc := range resultCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ResultInternalError
}
