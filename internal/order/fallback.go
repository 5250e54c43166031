package order

import (
	"fmt"
	"strings"
)

// FallbackMode selects what the visitor is offered after a failed submit.
type FallbackMode string

const (
	FallbackForm FallbackMode = "form"
	FallbackLink FallbackMode = "link"
	FallbackBoth FallbackMode = "both"
)

// ParseFallbackMode resolves a mode by name. Empty means FallbackBoth.
func ParseFallbackMode(name string) (FallbackMode, error) {
	switch m := FallbackMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return FallbackBoth, nil
	case FallbackForm, FallbackLink, FallbackBoth:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFallbackMode, name)
}

// Fallback lets the visitor send the order to the form directly: a hidden
// form posting the same fields in a new tab, a prefilled link to the
// form's public page, or both.
type Fallback struct {
	Action string
	Pairs  []Pair
	Link   string
}

// ShowForm reports whether the hidden form is offered.
func (f *Fallback) ShowForm() bool { return f != nil && f.Action != "" }

// ShowLink reports whether the prefilled link is offered.
func (f *Fallback) ShowLink() bool { return f != nil && f.Link != "" }

// Fallback builds the fallback for s.
func (c *Client) Fallback(s Submission, mode FallbackMode) *Fallback {
	fb := &Fallback{}
	if mode == FallbackForm || mode == FallbackBoth {
		fb.Action = c.endpoint
		fb.Pairs = c.fields.Pairs(s)
	}
	if mode == FallbackLink || mode == FallbackBoth {
		fb.Link = c.ViewURL(s)
	}
	return fb
}

// ViewURL returns the form's public page prefilled with s.
func (c *Client) ViewURL(s Submission) string {
	base := c.endpoint
	if i := strings.LastIndex(base, "/formResponse"); i >= 0 {
		base = base[:i] + "/viewform"
	}
	u := base + "?usp=pp_url"
	if q := c.fields.Query(s); q != "" {
		u += "&" + q
	}
	return u
}
