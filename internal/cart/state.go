package cart

// LineItem is one product entry in a cart. ID is the product's external id,
// not its database primary key.
type LineItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Image         string   `json:"image"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Quantity      int      `json:"quantity"`
	InStock       bool     `json:"inStock"`
	StockQuantity int      `json:"stockQuantity"`
}

// State is the full cart value. TotalItems and TotalPrice are recomputed by
// Reduce on every transition and never mutated on their own.
type State struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	IsOpen     bool       `json:"isOpen"`
}

// EmptyState returns a closed cart with no items.
func EmptyState() State {
	return State{Items: []LineItem{}}
}

func (s State) indexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Item returns the line item with the given id.
func (s State) Item(id string) (LineItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

func (s State) withItems(items []LineItem) State {
	next := State{Items: items, IsOpen: s.IsOpen}
	for _, item := range items {
		next.TotalItems += item.Quantity
		next.TotalPrice += item.Price * float64(item.Quantity)
	}
	return next
}

func (s State) copyItems() []LineItem {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return items
}
