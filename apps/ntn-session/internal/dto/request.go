// Package dto はリクエスト・レスポンスのデータ転送オブジェクトを定義する。
package dto

// EnableRequest は衛星セッション有効化・無効化リクエストを表す。
type EnableRequest struct {
	Enable    *bool `json:"enable" binding:"required"`
	DemoMode  bool  `json:"demo_mode"`
	Emergency bool  `json:"emergency"`
}

// DatagramRequest はデータグラム送信リクエストを表す。
type DatagramRequest struct {
	Payload         []byte `json:"payload" binding:"required"` // base64
	Emergency       bool   `json:"emergency"`
	NeedsPointingUI bool   `json:"needs_pointing_ui"`
}

// RadioRequest は共存無線の状態通知を表す。
type RadioRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// LinkRequest は物理リンク層のオン・オフ通知を表す。
type LinkRequest struct {
	On *bool `json:"on" binding:"required"`
}
