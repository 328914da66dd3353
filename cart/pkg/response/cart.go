package response

import (
	"time"

	"github.com/lumiere-atelier/storefront/internal/cart/repository"
)

type Cart struct {
	ID        string     `json:"id,omitempty"`
	AccountID string     `json:"accountId,omitempty"`
	GuestID   string     `json:"sessionId,omitempty"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int32   `json:"quantity"`
}

func FromCart(cart repository.Cart) Cart {
	items := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
		})
	}
	return Cart{
		ID:        cart.ID,
		AccountID: cart.AccountID,
		GuestID:   cart.GuestID,
		Items:     items,
		UpdatedAt: cart.UpdatedAt,
	}
}
