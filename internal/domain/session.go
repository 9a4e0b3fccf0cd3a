package domain

// View is the router state of a session. SelectedProduct is a weak
// reference into the catalog; empty means nothing is selected.
type View struct {
	Screen          Screen
	Category        Category
	SelectedProduct ProductID
}

// Session is the explicit context that cart, router and concierge
// operations run against. It lives only as long as the process.
type Session struct {
	ID           SessionID
	Cart         Cart
	View         View
	Conversation Conversation
	CreatedAt    Timestamp
	UpdatedAt    Timestamp
}

// NewSession opens on the home screen with no filter and no selection.
func NewSession(id SessionID, now Timestamp) *Session {
	return &Session{
		ID: id,
		View: View{
			Screen:   ScreenHome,
			Category: CategoryAll,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Navigate(screen Screen) error {
	if _, err := ParseScreen(string(screen)); err != nil {
		return err
	}
	s.View.Screen = screen
	return nil
}

func (s *Session) SelectCategory(c Category) error {
	if _, err := ParseCategory(string(c)); err != nil {
		return err
	}
	s.View.Category = c
	return nil
}

// ViewProduct selects id and moves to the product screen in one step.
func (s *Session) ViewProduct(id ProductID) {
	s.View.SelectedProduct = id
	s.View.Screen = ScreenProduct
}

func (s *Session) ClearSelection() {
	s.View.SelectedProduct = ""
}

// CompleteCheckout empties the cart and returns to home.
func (s *Session) CompleteCheckout() {
	s.Cart.Clear()
	s.View.Screen = ScreenHome
}

// Clone returns a deep copy safe to hand out of a store.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Cart = s.Cart.Clone()
	out.Conversation = s.Conversation.Clone()
	return &out
}
