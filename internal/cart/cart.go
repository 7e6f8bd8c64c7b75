// Package cart holds the shopping cart state machine: a pure reducer over the
// item list and an owned container that applies transitions to one cart.
package cart

import (
	"fmt"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
)

type ActionKind string

const (
	ActionAddItem        ActionKind = "ADD_ITEM"
	ActionRemoveItem     ActionKind = "REMOVE_ITEM"
	ActionUpdateQuantity ActionKind = "UPDATE_QUANTITY"
	ActionClearCart      ActionKind = "CLEAR_CART"
)

// Action is one cart transition. Only the fields relevant to Kind are read.
type Action struct {
	Kind      ActionKind
	Product   domain.Product
	ProductID string
	Quantity  int
}

func AddItem(p domain.Product) Action {
	return Action{Kind: ActionAddItem, Product: p}
}

func RemoveItem(productID string) Action {
	return Action{Kind: ActionRemoveItem, ProductID: productID}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Kind: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func ClearCart() Action {
	return Action{Kind: ActionClearCart}
}

// Reduce returns the cart that results from applying a to c. c is not modified.
// An unknown action kind is a programming error and panics.
func Reduce(c domain.Cart, a Action) domain.Cart {
	items := cloneItems(c.Items)

	switch a.Kind {
	case ActionAddItem:
		if i := indexOf(items, a.Product.ID); i >= 0 {
			items[i].Quantity++
		} else {
			items = append(items, domain.CartItem{Product: a.Product, Quantity: 1})
		}
	case ActionRemoveItem:
		items = removeAt(items, indexOf(items, a.ProductID))
	case ActionUpdateQuantity:
		i := indexOf(items, a.ProductID)
		if a.Quantity <= 0 {
			items = removeAt(items, i)
		} else if i >= 0 {
			items[i].Quantity = a.Quantity
		}
	case ActionClearCart:
		items = []domain.CartItem{}
	default:
		panic(fmt.Sprintf("cart: unknown action kind %q", a.Kind))
	}

	return domain.Cart{
		Items: items,
		Total: domain.Subtotal(items).InexactFloat64(),
	}
}

func indexOf(items []domain.CartItem, productID string) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func removeAt(items []domain.CartItem, i int) []domain.CartItem {
	if i < 0 {
		return items
	}
	return append(items[:i], items[i+1:]...)
}

// cloneItems copies the item slice so a reduced cart never aliases its input.
func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
