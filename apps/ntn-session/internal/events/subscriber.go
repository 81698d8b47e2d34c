package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Subscriber は<prefix>.modem.*のイベントをデコードしてSinkに転送する。
type Subscriber struct {
	nc     *nats.Conn
	prefix string
	sink   Sink
	sub    *nats.Subscription
}

// NewSubscriber は新しいSubscriberを生成する。
func NewSubscriber(nc *nats.Conn, prefix string, sink Sink) *Subscriber {
	return &Subscriber{
		nc:     nc,
		prefix: prefix,
		sink:   sink,
	}
}

// Start は購読を開始する。
func (s *Subscriber) Start() error {
	subject := ModemSubject(s.prefix, "*")
	sub, err := s.nc.Subscribe(subject, s.handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub
	slog.Info("NATS subscriber started",
		"event_id", "NATS_SUBSCRIBED",
		"subject", subject,
	)
	return nil
}

// Stop は購読を解除する。
func (s *Subscriber) Stop() {
	if s.sub == nil {
		return
	}
	if err := s.sub.Unsubscribe(); err != nil {
		slog.Warn("failed to unsubscribe",
			"event_id", "NATS_CONN_ERR",
			"error", err,
		)
	}
	s.sub = nil
}

// handle はサブジェクト末尾に応じてメッセージをデコードし、Sinkに転送する。
func (s *Subscriber) handle(msg *nats.Msg) {
	name := strings.TrimPrefix(msg.Subject, ModemSubject(s.prefix, ""))
	if err := s.dispatch(name, msg.Data); err != nil {
		slog.Warn("invalid modem event",
			"event_id", "MODEM_EVENT_INVALID",
			"subject", msg.Subject,
			"error", err,
		)
	}
}

func (s *Subscriber) dispatch(name string, data []byte) error {
	switch name {
	case SubjectModemState:
		var ev ModemStateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		state, ok := model.ParseModemState(ev.State)
		if !ok {
			return fmt.Errorf("unknown modem state: %q", ev.State)
		}
		s.sink.OnModemStateChanged(state)

	case SubjectProvision:
		var ev ProvisionEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		s.sink.OnProvisionStateChanged(ev.Provisioned)

	case SubjectDatagram:
		var ev DatagramEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		s.sink.OnDatagramReceived(ev.Payload, ev.Pending)

	case SubjectCapabilities:
		var ev CapabilitiesEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		s.sink.OnCapabilitiesChanged(ev)

	case SubjectSignal:
		var ev SignalEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		s.sink.OnSignalStrengthChanged(ev)

	case SubjectRadio:
		var ev RadioEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		radio, ok := model.ParseRadio(ev.Radio)
		if !ok {
			return fmt.Errorf("unknown radio: %q", ev.Radio)
		}
		s.sink.OnRadioStateChanged(radio, ev.On)

	case SubjectLink:
		var ev LinkEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		s.sink.SetLinkLayerOn(ev.On)

	default:
		return fmt.Errorf("unknown event: %q", name)
	}
	return nil
}
