package datagram

// RoundUpSize はnをunitの倍数に切り上げる。unitが0以下の場合はnをそのまま返す。
func RoundUpSize(n, unit int) int {
	if unit <= 0 || n <= 0 {
		return max(n, 0)
	}
	return (n + unit - 1) / unit * unit
}
