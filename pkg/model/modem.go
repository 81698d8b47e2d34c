// Package model はセッション制御で共有するドメイン値型を定義する。
package model

// ModemState はモデムサービスから通知される衛星モデムの状態を表す。
type ModemState string

const (
	// ModemStateUnknown は状態未取得
	ModemStateUnknown ModemState = "UNKNOWN"
	// ModemStateOff はモデム電源オフ
	ModemStateOff ModemState = "OFF"
	// ModemStateUnavailable はモデムサービス利用不可
	ModemStateUnavailable ModemState = "UNAVAILABLE"
	// ModemStateIdle はモデム起動済み・データグラム転送なし
	ModemStateIdle ModemState = "IDLE"
	// ModemStateListening は着信ページ待ち受け中
	ModemStateListening ModemState = "LISTENING"
	// ModemStateTransferring はデータグラム転送中
	ModemStateTransferring ModemState = "DATAGRAM_TRANSFERRING"
	// ModemStateRetrying はデータグラム再送中
	ModemStateRetrying ModemState = "DATAGRAM_RETRYING"
	// ModemStateNotConnected は衛星ネットワーク未接続（アタッチ待ち）
	ModemStateNotConnected ModemState = "NOT_CONNECTED"
	// ModemStateConnected は衛星ネットワーク接続済み
	ModemStateConnected ModemState = "CONNECTED"
)

// validModemStates は有効なModemState一覧
var validModemStates = map[ModemState]struct{}{
	ModemStateUnknown:      {},
	ModemStateOff:          {},
	ModemStateUnavailable:  {},
	ModemStateIdle:         {},
	ModemStateListening:    {},
	ModemStateTransferring: {},
	ModemStateRetrying:     {},
	ModemStateNotConnected: {},
	ModemStateConnected:    {},
}

// ParseModemState は文字列をModemStateに変換する。
// 未知の値はModemStateUnknownとfalseを返す。
func ParseModemState(s string) (ModemState, bool) {
	st := ModemState(s)
	if _, ok := validModemStates[st]; !ok {
		return ModemStateUnknown, false
	}
	return st, true
}

// IsPoweredDown はモデムが停止またはサービス断の状態かどうかを判定する。
func (s ModemState) IsPoweredDown() bool {
	return s == ModemStateOff || s == ModemStateUnavailable
}

// Radio は衛星セッション中に停止が必要となる共存無線を表す。
type Radio string

const (
	RadioBluetooth Radio = "bt"
	RadioNFC       Radio = "nfc"
	RadioWiFi      Radio = "wifi"
	RadioUWB       Radio = "uwb"
)

// ParseRadio は文字列をRadioに変換する。
func ParseRadio(s string) (Radio, bool) {
	switch r := Radio(s); r {
	case RadioBluetooth, RadioNFC, RadioWiFi, RadioUWB:
		return r, true
	default:
		return "", false
	}
}
