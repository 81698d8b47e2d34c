// Package logging はログ関連のユーティリティを提供する。
package logging

import (
	"encoding/hex"
	"fmt"
)

// ペイロードプレビューの設定
const (
	// payloadPreviewBytes はマスキング無効時に出力する先頭バイト数
	payloadPreviewBytes = 16
	// payloadMaskedChars はマスキング有効時に残す先頭HEX文字数
	payloadMaskedChars = 4
	// payloadMaskedBytes はマスキング有効時に出力するバイト数
	payloadMaskedBytes = 8
)

// MaskPayload はデータグラムペイロードをログ出力用の文字列に変換する。
// 生のペイロードは出力しない。
// enabled=true の場合: 先頭8バイトまでのHEXのうち先頭4文字以外をマスク + 長さ
// 例: 0x48656c6c6f → 4865******(len=5)
// enabled=false の場合: 先頭16バイトまでのHEX + 長さ
func MaskPayload(payload []byte, enabled bool) string {
	if len(payload) == 0 {
		return ""
	}
	if !enabled {
		n := min(len(payload), payloadPreviewBytes)
		preview := hex.EncodeToString(payload[:n])
		if n < len(payload) {
			preview += "..."
		}
		return fmt.Sprintf("%s(len=%d)", preview, len(payload))
	}
	n := min(len(payload), payloadMaskedBytes)
	masked := MaskPartial(hex.EncodeToString(payload[:n]), payloadMaskedChars, 0, '*')
	return fmt.Sprintf("%s(len=%d)", masked, len(payload))
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)

	// 先頭部分をコピー
	for i := 0; i < keepPrefix; i++ {
		result[i] = runes[i]
	}

	// 中間部分をマスク
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}

	// 末尾部分をコピー
	for i := length - keepSuffix; i < length; i++ {
		result[i] = runes[i]
	}

	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// Payload はペイロードをマスキングする。
func (m *Masker) Payload(payload []byte) string {
	return MaskPayload(payload, m.enabled)
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
