package site

// State is everything the shell renders from. Work is the id of the item
// shown in the lightbox, zero when it is closed.
type State struct {
	Theme  Theme
	Locale Locale
	Work   int
}

// DefaultState is the state of a first visit.
func DefaultState() State {
	return State{Theme: ThemeLight, Locale: DefaultLocale}
}

// Dir is the text direction of the active locale.
func (s State) Dir() Dir {
	return s.Locale.Dir()
}

// LightboxOpen reports whether an item is shown.
func (s State) LightboxOpen() bool {
	return s.Work != 0
}

// Action is a user intent applied to State by Reduce.
type Action interface {
	apply(State) State
}

// ToggleTheme flips between light and dark.
type ToggleTheme struct{}

// SelectLocale switches the interface language.
type SelectLocale struct{ Locale Locale }

// OpenLightbox shows one item, replacing any item already shown.
type OpenLightbox struct{ ID int }

// CloseLightbox hides the lightbox.
type CloseLightbox struct{}

func (ToggleTheme) apply(s State) State {
	s.Theme = s.Theme.Toggle()
	return s
}

func (a SelectLocale) apply(s State) State {
	if l, ok := ParseLocale(string(a.Locale)); ok {
		s.Locale = l
	}
	return s
}

func (a OpenLightbox) apply(s State) State {
	if a.ID <= 0 {
		return s
	}
	s.Work = a.ID
	return s
}

func (CloseLightbox) apply(s State) State {
	s.Work = 0
	return s
}

// Reduce returns the state after action. Invalid actions leave the state
// unchanged.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}
