package htmx

import (
	"encoding/json"
	"net/http"
)

// Config collects the response headers for one render.
type Config struct {
	Retarget string
	Reswap   SwapStrategy
	PushURL  string
	// Triggers maps an event to its payload. A nil payload fires the event
	// without detail.
	Triggers map[string]any
}

// RenderOption configures a render.
type RenderOption func(*Config)

// NewConfig builds a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the configured htmx response headers.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	if len(c.Triggers) > 0 {
		if data, err := json.Marshal(c.Triggers); err == nil {
			h.Set(HeaderHXTrigger, string(data))
		}
	}
}

// WithRetarget overrides the element the response is swapped into.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap overrides the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithPushURL pushes url onto the browser history.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithTriggerDetail fires an event with a JSON payload.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		if c.Triggers == nil {
			c.Triggers = make(map[string]any)
		}
		c.Triggers[event] = detail
	}
}
