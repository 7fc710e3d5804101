package domain

// MenuState is the visibility of the page's navigation menu
type MenuState int

const (
	// MenuHidden is the initial state
	MenuHidden MenuState = iota
	MenuVisible
)

// HiddenClass is the body class that marks the menu as hidden
const HiddenClass = "menu-hidden"

// Toggle returns the state one click away
func (s MenuState) Toggle() MenuState {
	if s == MenuHidden {
		return MenuVisible
	}
	return MenuHidden
}

// IsHidden reports whether the menu is hidden
func (s MenuState) IsHidden() bool {
	return s == MenuHidden
}

func (s MenuState) String() string {
	switch s {
	case MenuHidden:
		return "hidden"
	case MenuVisible:
		return "visible"
	default:
		return "unknown"
	}
}
