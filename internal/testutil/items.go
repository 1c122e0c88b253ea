package testutil

import (
	"fmt"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// ItemBuilder assembles inventory items for tests.
type ItemBuilder struct {
	item model.InventoryItem
}

// NewItem starts a personal item in good condition.
//
// Example:
//
//	sofa := testutil.NewItem("Sofa", 800).InRoom("Living Room").Build()
func NewItem(name string, value float64) *ItemBuilder {
	return &ItemBuilder{item: model.InventoryItem{
		ID:           fmt.Sprintf("test-%s", name),
		Name:         name,
		Value:        value,
		Category:     model.CategoryOther,
		Room:         model.DefaultRoom,
		Type:         model.ItemTypePersonal,
		Condition:    model.ConditionGood,
		PurchaseDate: "2024-01-01",
	}}
}

// WithID sets the id.
func (b *ItemBuilder) WithID(id string) *ItemBuilder {
	b.item.ID = id
	return b
}

// InRoom sets the room.
func (b *ItemBuilder) InRoom(room string) *ItemBuilder {
	b.item.Room = room
	return b
}

// InCategory sets the category.
func (b *ItemBuilder) InCategory(c model.Category) *ItemBuilder {
	b.item.Category = c
	return b
}

// Fixture marks the item as conveying with the property.
func (b *ItemBuilder) Fixture() *ItemBuilder {
	b.item.Type = model.ItemTypeFixture
	return b
}

// CreatedAt sets the creation time in Unix milliseconds.
func (b *ItemBuilder) CreatedAt(ms int64) *ItemBuilder {
	b.item.CreatedAt = ms
	return b
}

// WithReceipt attaches a receipt image reference.
func (b *ItemBuilder) WithReceipt(url string) *ItemBuilder {
	b.item.ReceiptURL = url
	return b
}

// WithDescription sets the description.
func (b *ItemBuilder) WithDescription(d string) *ItemBuilder {
	b.item.Description = d
	return b
}

// Build returns the item.
func (b *ItemBuilder) Build() model.InventoryItem {
	return b.item
}

// Draft returns a draft with the given name and value on top of the form defaults.
func Draft(name string, value float64, itemType model.ItemType) model.Draft {
	d := model.Draft{
		Name: name,
		Type: itemType,
	}
	d.SetValue(value)
	return d
}
