package response

import (
	"time"

	cartResponse "github.com/lumiere-atelier/storefront/cart/pkg/response"
	"github.com/lumiere-atelier/storefront/internal/order/repository"
)

type Order struct {
	ID              string                  `json:"id"`
	AccountID       string                  `json:"accountId,omitempty"`
	GuestID         string                  `json:"sessionId,omitempty"`
	Email           string                  `json:"email"`
	Items           []cartResponse.CartItem `json:"items"`
	TotalAmount     float64                 `json:"totalAmount"`
	PaymentDetails  PaymentDetails          `json:"paymentDetails"`
	CustomerDetails CustomerDetails         `json:"customerDetails"`
	PaymentStatus   string                  `json:"paymentStatus"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type PaymentDetails struct {
	Method        string `json:"method,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

type CustomerDetails struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

func FromOrder(order repository.Order) Order {
	items := make([]cartResponse.CartItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, cartResponse.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
		})
	}
	return Order{
		ID:          order.ID,
		AccountID:   order.AccountID,
		GuestID:     order.GuestID,
		Email:       order.Email,
		Items:       items,
		TotalAmount: order.TotalAmount,
		PaymentDetails: PaymentDetails{
			Method:        order.PaymentDetails.Method,
			TransactionID: order.PaymentDetails.TransactionID,
		},
		CustomerDetails: CustomerDetails{
			FirstName:  order.CustomerDetails.FirstName,
			LastName:   order.CustomerDetails.LastName,
			Email:      order.CustomerDetails.Email,
			Address:    order.CustomerDetails.Address,
			City:       order.CustomerDetails.City,
			Country:    order.CustomerDetails.Country,
			PostalCode: order.CustomerDetails.PostalCode,
		},
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	}
}

func FromOrders(orders []repository.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrder(order))
	}
	return out
}
