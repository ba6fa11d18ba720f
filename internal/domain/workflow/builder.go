package workflow

import (
	"context"
	"fmt"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
)

// GuardFunc evaluates whether a transition should be allowed.
type GuardFunc func(ctx context.Context) bool

// Builder configures status transitions and produces machine instances.
type Builder interface {
	// Configure returns a configuration for the given status
	Configure(status billing.Status) StatusConfiguration

	// Build creates a new state machine with the given initial status
	Build(initial billing.Status) StateMachine
}

// StatusConfiguration configures transitions out of a specific status.
type StatusConfiguration interface {
	// Permit allows a trigger to transition to the target status
	Permit(trigger Trigger, to billing.Status) StatusConfiguration

	// PermitIf allows the transition only when the guard passes
	PermitIf(trigger Trigger, to billing.Status, guard GuardFunc) StatusConfiguration
}

type transition struct {
	to    billing.Status
	guard GuardFunc
}

type statusConfig struct {
	from        billing.Status
	transitions map[Trigger][]transition
}

type builder struct {
	configs map[billing.Status]*statusConfig
}

// NewBuilder creates an empty state machine builder.
func NewBuilder() Builder {
	return &builder{configs: make(map[billing.Status]*statusConfig)}
}

func (b *builder) Configure(status billing.Status) StatusConfiguration {
	if !status.IsValid() {
		panic(fmt.Sprintf("not a stored status: %s", status))
	}
	cfg, ok := b.configs[status]
	if !ok {
		cfg = &statusConfig{from: status, transitions: make(map[Trigger][]transition)}
		b.configs[status] = cfg
	}
	return cfg
}

func (b *builder) Build(initial billing.Status) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("not a stored status: %s", initial))
	}

	// Copy configurations so machines built later are unaffected by
	// further Configure calls.
	configs := make(map[billing.Status]*statusConfig, len(b.configs))
	for status, cfg := range b.configs {
		transitions := make(map[Trigger][]transition, len(cfg.transitions))
		for trigger, ts := range cfg.transitions {
			transitions[trigger] = append([]transition{}, ts...)
		}
		configs[status] = &statusConfig{from: status, transitions: transitions}
	}

	return &machine{current: initial, configs: configs}
}

func (c *statusConfig) Permit(trigger Trigger, to billing.Status) StatusConfiguration {
	return c.PermitIf(trigger, to, nil)
}

func (c *statusConfig) PermitIf(trigger Trigger, to billing.Status, guard GuardFunc) StatusConfiguration {
	if !to.IsValid() {
		panic(fmt.Sprintf("not a stored status: %s", to))
	}
	c.transitions[trigger] = append(c.transitions[trigger], transition{to: to, guard: guard})
	return c
}

type machine struct {
	current billing.Status
	configs map[billing.Status]*statusConfig
}

func (m *machine) State() billing.Status {
	return m.current
}

func (m *machine) CanFire(trigger Trigger) bool {
	cfg, ok := m.configs[m.current]
	if !ok {
		return false
	}
	return len(cfg.transitions[trigger]) > 0
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	cfg, ok := m.configs[m.current]
	if !ok {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}

	transitions := cfg.transitions[trigger]
	if len(transitions) == 0 {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}

	// First transition whose guard passes wins; unguarded transitions
	// always pass.
	for _, t := range transitions {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from %s", ErrGuardFailed, trigger, m.current)
}

func (m *machine) PermittedTriggers() []Trigger {
	cfg, ok := m.configs[m.current]
	if !ok {
		return []Trigger{}
	}
	triggers := make([]Trigger, 0, len(cfg.transitions))
	for trigger := range cfg.transitions {
		triggers = append(triggers, trigger)
	}
	return triggers
}
