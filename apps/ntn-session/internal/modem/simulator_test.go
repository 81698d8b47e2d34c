package modem

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/oyaguma3/ntn-session-poc/pkg/apperr"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

var _ Gateway = (*Simulator)(nil)
var _ Gateway = (*Client)(nil)

func newTestSimulator(attach bool) *Simulator {
	return NewSimulator(SimulatorConfig{
		Supported:      true,
		Provisioned:    true,
		AttachRequired: attach,
		Capabilities: model.Capabilities{
			RadioTechnologies:   []string{"NB_IOT_NTN"},
			MaxBytesPerDatagram: 8,
		},
	})
}

func TestSimulatorEnableEmitsIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockEventSink(ctrl)

	sim := newTestSimulator(false)
	sim.SetSink(sink)

	gomock.InOrder(
		sink.EXPECT().OnModemStateChanged(model.ModemStateIdle),
		sink.EXPECT().OnModemStateChanged(model.ModemStateOff),
	)

	ctx := context.Background()
	if err := sim.RequestEnabled(ctx, true, false, false); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	enabled, _ := sim.IsEnabled(ctx)
	if !enabled {
		t.Error("expected enabled")
	}
	if err := sim.RequestEnabled(ctx, false, false, false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
}

func TestSimulatorAttachConnectsAfterScanningDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockEventSink(ctrl)

	sim := newTestSimulator(true)
	sim.SetSink(sink)

	gomock.InOrder(
		sink.EXPECT().OnModemStateChanged(model.ModemStateNotConnected),
		sink.EXPECT().OnModemStateChanged(model.ModemStateConnected),
	)

	ctx := context.Background()
	if err := sim.RequestEnabled(ctx, true, false, false); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if err := sim.SetTerrestrialScanning(ctx, false); err != nil {
		t.Fatalf("SetTerrestrialScanning failed: %v", err)
	}
}

func TestSimulatorPollDeliversQueuedDatagrams(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockEventSink(ctrl)

	sim := newTestSimulator(false)
	sim.SetSink(sink)
	sim.Deliver([]byte("first"))
	sim.Deliver([]byte("second"))

	gomock.InOrder(
		sink.EXPECT().OnModemStateChanged(model.ModemStateIdle),
		sink.EXPECT().OnDatagramReceived([]byte("first"), 1),
		sink.EXPECT().OnDatagramReceived([]byte("second"), 0),
		sink.EXPECT().OnDatagramReceived(nil, 0),
	)

	ctx := context.Background()
	if err := sim.RequestEnabled(ctx, true, false, false); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := sim.PollPendingDatagrams(ctx); err != nil {
			t.Fatalf("poll %d failed: %v", i, err)
		}
	}
}

func TestSimulatorSendDatagram(t *testing.T) {
	sim := newTestSimulator(false)
	ctx := context.Background()

	if err := sim.SendDatagram(ctx, []byte("x"), false, false); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState while disabled, got %v", err)
	}

	if err := sim.RequestEnabled(ctx, true, false, false); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if err := sim.SendDatagram(ctx, []byte("12345678"), false, false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := sim.SendDatagram(ctx, []byte("123456789"), false, false); !errors.Is(err, apperr.ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
	if sim.SentCount() != 1 {
		t.Errorf("expected 1 sent, got %d", sim.SentCount())
	}
}

func TestSimulatorUnsupported(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{})
	err := sim.RequestEnabled(context.Background(), true, false, false)
	if !errors.Is(err, apperr.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}

func TestSimulatorSignalStrengthReporting(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockEventSink(ctrl)

	sim := newTestSimulator(false)
	sim.SetSink(sink)

	sink.EXPECT().OnSignalStrengthChanged(model.SignalStrength{Level: simulatedSignalLevel})

	ctx := context.Background()
	if err := sim.SetSignalStrengthReporting(ctx, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sim.SetSignalStrengthReporting(ctx, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
