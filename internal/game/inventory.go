package game

// Item identifies something the player can carry.
type Item string

const (
	ItemKey    Item = "KEY"
	ItemSword  Item = "SWORD"
	ItemShield Item = "SHIELD"
	ItemTorch  Item = "TORCH"
)

// Catalog is the closed, ordered set of items that can be found.
var Catalog = [...]Item{ItemKey, ItemSword, ItemShield, ItemTorch}

func (i Item) String() string {
	return string(i)
}

// Inventory is an ordered set of items. It is not safe for concurrent use on
// its own; GameState guards it.
type Inventory struct {
	items []Item
}

// Contains checks if an item is in the inventory.
func (inv *Inventory) Contains(item Item) bool {
	for _, held := range inv.items {
		if held == item {
			return true
		}
	}
	return false
}

// Add appends item if it is not already held. Returns false when the item was
// already present.
func (inv *Inventory) Add(item Item) bool {
	if inv.Contains(item) {
		return false
	}
	inv.items = append(inv.items, item)
	return true
}

// Items returns a copy of the held items in pickup order. The result is never nil.
func (inv *Inventory) Items() []Item {
	items := make([]Item, len(inv.items))
	copy(items, inv.items)
	return items
}

// Len returns the number of held items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}
