package activity

import "context"

// DefaultChannel tags events emitted by board interactions.
const DefaultChannel = "kpiboard"

// Config tunes how the emitter behaves.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter delivers board activity to the configured hooks.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter builds an emitter. An emitter without hooks reports disabled
// regardless of configuration so callers can skip event construction.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled && len(hooks) > 0,
		channel: channel,
	}
}

// Enabled reports whether Emit will deliver events.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit stamps the default channel when unset and fans the event out.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.channel
	}
	return e.hooks.Notify(ctx, evt)
}
