package request

import (
	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
)

type CreateOrder struct {
	Items           []cartRequest.CartItem `json:"items" validate:"dive"`
	TotalAmount     cartRequest.Price      `json:"totalAmount"`
	PaymentDetails  PaymentDetails         `json:"paymentDetails"`
	CustomerDetails CustomerDetails        `json:"customerDetails"`
}

type PaymentDetails struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

type CustomerDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}
