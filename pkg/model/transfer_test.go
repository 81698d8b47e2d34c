package model

import "testing"

func TestIdleTransferState(t *testing.T) {
	s := IdleTransferState()
	if !s.IsIdle() {
		t.Errorf("IsIdle() = false, want true: %+v", s)
	}
	if s.IsActive() {
		t.Error("IsActive() = true, want false")
	}
}

func TestDatagramTransferStatePredicates(t *testing.T) {
	tests := []struct {
		name        string
		state       DatagramTransferState
		wantSending bool
		wantRecv    bool
		wantWaiting bool
		wantFailure bool
	}{
		{
			name:  "idle",
			state: DatagramTransferState{Send: TransferIdle, Receive: TransferIdle},
		},
		{
			name:        "sending",
			state:       DatagramTransferState{Send: TransferSending, Receive: TransferIdle},
			wantSending: true,
		},
		{
			name:        "send success is still sending",
			state:       DatagramTransferState{Send: TransferSendSuccess, Receive: TransferIdle},
			wantSending: true,
		},
		{
			name:        "send failed",
			state:       DatagramTransferState{Send: TransferSendFailed, Receive: TransferIdle},
			wantFailure: true,
		},
		{
			name:     "receive none is still receiving",
			state:    DatagramTransferState{Send: TransferIdle, Receive: TransferReceiveNone},
			wantRecv: true,
		},
		{
			name:        "receive failed",
			state:       DatagramTransferState{Send: TransferIdle, Receive: TransferReceiveFailed},
			wantFailure: true,
		},
		{
			name:        "waiting to connect",
			state:       DatagramTransferState{Send: TransferWaitingToConnect, Receive: TransferIdle},
			wantWaiting: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsSending(); got != tt.wantSending {
				t.Errorf("IsSending() = %v, want %v", got, tt.wantSending)
			}
			if got := tt.state.IsReceiving(); got != tt.wantRecv {
				t.Errorf("IsReceiving() = %v, want %v", got, tt.wantRecv)
			}
			if got := tt.state.IsActive(); got != (tt.wantSending || tt.wantRecv) {
				t.Errorf("IsActive() = %v, want %v", got, tt.wantSending || tt.wantRecv)
			}
			if got := tt.state.IsWaitingToConnect(); got != tt.wantWaiting {
				t.Errorf("IsWaitingToConnect() = %v, want %v", got, tt.wantWaiting)
			}
			if got := tt.state.HasFailure(); got != tt.wantFailure {
				t.Errorf("HasFailure() = %v, want %v", got, tt.wantFailure)
			}
		})
	}
}
