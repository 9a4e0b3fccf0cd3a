package domain

import "time"

type SessionID string
type ProductID string
type MessageID string
type OrderID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Screen is one state of the storefront navigation machine.
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenShop      Screen = "shop"
	ScreenProduct   Screen = "product"
	ScreenCart      Screen = "cart"
	ScreenCheckout  Screen = "checkout"
	ScreenConcierge Screen = "concierge"
)

var screens = []Screen{
	ScreenHome,
	ScreenShop,
	ScreenProduct,
	ScreenCart,
	ScreenCheckout,
	ScreenConcierge,
}

// Screens lists every navigable screen.
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// ParseScreen maps a raw value to a Screen.
func ParseScreen(s string) (Screen, error) {
	for _, sc := range screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", ErrUnknownScreen
}

type Timestamp = time.Time
