package modem

// enableRequest は有効化・無効化要求のリクエストボディ
type enableRequest struct {
	Enable    bool `json:"enable"`
	DemoMode  bool `json:"demo_mode"`
	Emergency bool `json:"emergency"`
}

// sendDatagramRequest はデータグラム送信のリクエストボディ（payloadはbase64）
type sendDatagramRequest struct {
	Payload         []byte `json:"payload"`
	Emergency       bool   `json:"emergency"`
	NeedsPointingUI bool   `json:"needs_pointing_ui"`
}

// listeningRequest は待ち受けモード切替のリクエストボディ
type listeningRequest struct {
	Enabled   bool  `json:"enabled"`
	TimeoutMs int64 `json:"timeout_ms"`
}

// toggleRequest は有効・無効を切り替えるだけのリクエストボディ
type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

// boolResponse は真偽値の問い合わせ結果
type boolResponse struct {
	Value bool `json:"value"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
// Codeはモデムが返したエラーコード（0はモデム以外のエラー）
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Code   int    `json:"code,omitempty"`
}
