package model

// TransferState はデータグラム送信側・受信側それぞれの転送状態を表す。
type TransferState string

const (
	TransferIdle             TransferState = "IDLE"
	TransferWaitingToConnect TransferState = "WAITING_TO_CONNECT"
	TransferSending          TransferState = "SENDING"
	TransferSendSuccess      TransferState = "SEND_SUCCESS"
	TransferSendFailed       TransferState = "SEND_FAILED"
	TransferReceiving        TransferState = "RECEIVING"
	TransferReceiveSuccess   TransferState = "RECEIVE_SUCCESS"
	TransferReceiveNone      TransferState = "RECEIVE_NONE"
	TransferReceiveFailed    TransferState = "RECEIVE_FAILED"
)

// DatagramTransferState は送信・受信の転送状態ペアを表す。
// 送信側はDispatcher、受信側はReceiverのみが更新する。
type DatagramTransferState struct {
	Send           TransferState `json:"send_state"`
	Receive        TransferState `json:"receive_state"`
	SendPending    int           `json:"send_pending_count"`
	ReceivePending int           `json:"receive_pending_count"`
}

// IdleTransferState は送受信ともにIDLEの転送状態を返す。
func IdleTransferState() DatagramTransferState {
	return DatagramTransferState{Send: TransferIdle, Receive: TransferIdle}
}

// IsSending は送信処理が継続中（SENDING/SEND_SUCCESS）かどうかを判定する。
func (t DatagramTransferState) IsSending() bool {
	return t.Send == TransferSending || t.Send == TransferSendSuccess
}

// IsReceiving は受信処理が継続中（RECEIVING/RECEIVE_SUCCESS/RECEIVE_NONE）かどうかを判定する。
func (t DatagramTransferState) IsReceiving() bool {
	return t.Receive == TransferReceiving ||
		t.Receive == TransferReceiveSuccess ||
		t.Receive == TransferReceiveNone
}

// IsActive は送信または受信が継続中かどうかを判定する。
func (t DatagramTransferState) IsActive() bool {
	return t.IsSending() || t.IsReceiving()
}

// IsIdle は送受信ともにIDLEかどうかを判定する。
func (t DatagramTransferState) IsIdle() bool {
	return t.Send == TransferIdle && t.Receive == TransferIdle
}

// IsWaitingToConnect は送信または受信が衛星接続待ちかどうかを判定する。
func (t DatagramTransferState) IsWaitingToConnect() bool {
	return t.Send == TransferWaitingToConnect || t.Receive == TransferWaitingToConnect
}

// HasFailure は直近の送信または受信が失敗したかどうかを判定する。
func (t DatagramTransferState) HasFailure() bool {
	return t.Send == TransferSendFailed || t.Receive == TransferReceiveFailed
}
