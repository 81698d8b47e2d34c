// Package format はフォーマットユーティリティを提供する。
package format

import (
	"encoding/hex"
	"fmt"
	"time"
)

// DateTimeMilli はUnixミリ秒を "2006-01-02 15:04:05.000" 形式にフォーマットする。
// 0以下の場合は "-" を返す。
func DateTimeMilli(unixMilli int64) string {
	if unixMilli <= 0 {
		return "-"
	}
	return time.UnixMilli(unixMilli).Local().Format("2006-01-02 15:04:05.000")
}

// Bytes はバイト数を "1.00 KB" 形式にフォーマットする。
func Bytes(n int64) string {
	const kb = 1024
	switch {
	case n >= kb*kb:
		return fmt.Sprintf("%.2f MB", float64(n)/(kb*kb))
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// PayloadPreview はペイロード先頭maxBytesバイトを16進で返す。省略時は末尾に "..." を付ける。
func PayloadPreview(payload []byte, maxBytes int) string {
	if len(payload) <= maxBytes {
		return hex.EncodeToString(payload)
	}
	return hex.EncodeToString(payload[:maxBytes]) + "..."
}

// AverageMs は合計ミリ秒と件数から平均を返す。件数0の場合は "-" を返す。
func AverageMs(totalMs, count int64) string {
	if count <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d ms", totalMs/count)
}
