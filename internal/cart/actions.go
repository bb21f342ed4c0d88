package cart

// Action is a cart command. Every mutation of a State goes through Reduce
// with one of the concrete actions below.
type Action interface {
	// touchesItems reports whether the action may change State.Items and
	// therefore has to be mirrored to storage.
	touchesItems() bool
}

// AddItem adds one unit of Item. Item.Quantity is ignored.
type AddItem struct {
	Item LineItem
}

// RemoveItem deletes the line item with the given id.
type RemoveItem struct {
	ID string
}

// UpdateQuantity sets the quantity of a line item. Quantity <= 0 removes it.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

// ClearCart empties the cart without touching IsOpen.
type ClearCart struct{}

// ToggleCart flips IsOpen.
type ToggleCart struct{}

// OpenCart sets IsOpen.
type OpenCart struct{}

// CloseCart clears IsOpen.
type CloseCart struct{}

// LoadItems replaces the items with a persisted list during hydration.
type LoadItems struct {
	Items []LineItem
}

func (AddItem) touchesItems() bool        { return true }
func (RemoveItem) touchesItems() bool     { return true }
func (UpdateQuantity) touchesItems() bool { return true }
func (ClearCart) touchesItems() bool      { return true }
func (ToggleCart) touchesItems() bool     { return false }
func (OpenCart) touchesItems() bool       { return false }
func (CloseCart) touchesItems() bool      { return false }
func (LoadItems) touchesItems() bool      { return false }

// Reduce is the single transition function of the cart. It never mutates s
// and never fails: unknown ids are no-ops and quantities are capped at the
// item's stock.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		return addItem(s, a.Item)
	case RemoveItem:
		return removeItem(s, a.ID)
	case UpdateQuantity:
		if a.Quantity <= 0 {
			return removeItem(s, a.ID)
		}
		i := s.indexOf(a.ID)
		if i < 0 {
			return s.withItems(s.copyItems())
		}
		items := s.copyItems()
		items[i].Quantity = min(a.Quantity, items[i].StockQuantity)
		return s.withItems(items)
	case ClearCart:
		return s.withItems([]LineItem{})
	case ToggleCart:
		next := s.withItems(s.copyItems())
		next.IsOpen = !s.IsOpen
		return next
	case OpenCart:
		next := s.withItems(s.copyItems())
		next.IsOpen = true
		return next
	case CloseCart:
		next := s.withItems(s.copyItems())
		next.IsOpen = false
		return next
	case LoadItems:
		return s.withItems(reconcile(a.Items))
	default:
		return s.withItems(s.copyItems())
	}
}

func addItem(s State, item LineItem) State {
	items := s.copyItems()
	if i := s.indexOf(item.ID); i >= 0 {
		items[i].Quantity = min(items[i].Quantity+1, items[i].StockQuantity)
		return s.withItems(items)
	}
	// A first unit that cannot be stocked would break quantity <= stockQuantity.
	if item.ID == "" || item.StockQuantity < 1 {
		return s.withItems(items)
	}
	item.Quantity = 1
	return s.withItems(append(items, item))
}

func removeItem(s State, id string) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return s.withItems(items)
}

// reconcile restores the item invariants on data read back from storage:
// unique non-empty ids, 1 <= quantity <= stockQuantity.
func reconcile(loaded []LineItem) []LineItem {
	items := make([]LineItem, 0, len(loaded))
	seen := make(map[string]struct{}, len(loaded))
	for _, item := range loaded {
		if item.ID == "" || item.Quantity < 1 || item.StockQuantity < 1 {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		item.Quantity = min(item.Quantity, item.StockQuantity)
		items = append(items, item)
	}
	return items
}
