package controller

import (
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/session"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Snapshot はControllerが保持するキャッシュの複製
type Snapshot struct {
	Supported      bool
	Provisioned    bool
	Enabled        bool
	EnabledKnown   bool
	DemoMode       bool
	Emergency      bool
	LinkLayerOn    bool
	Capabilities   *model.Capabilities
	SignalStrength *model.SignalStrength
	ModemState     model.ModemState
	SessionState   session.State
	Transfer       model.DatagramTransferState
	PendingCount   int
	EnableInFlight bool
	RadiosOn       []model.Radio
}

// Snapshot は現在のキャッシュを返す。
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Supported:      c.supported,
		Provisioned:    c.provisioned,
		Enabled:        c.enabledKnown && c.enabled,
		EnabledKnown:   c.enabledKnown,
		DemoMode:       c.demoMode,
		Emergency:      c.emergency,
		LinkLayerOn:    c.linkLayerOn,
		ModemState:     c.modemState,
		SessionState:   c.machine.State(),
		Transfer:       c.tracker.State(),
		PendingCount:   c.dispatcher.PendingCount(),
		EnableInFlight: c.current != nil,
		RadiosOn:       c.radiosOn(),
	}
	if c.caps != nil {
		caps := *c.caps
		caps.RadioTechnologies = append([]string(nil), c.caps.RadioTechnologies...)
		s.Capabilities = &caps
	}
	if c.signal != nil {
		sig := *c.signal
		s.SignalStrength = &sig
	}
	return s
}
