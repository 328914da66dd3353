package request

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
)

func TestCreateOrderValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	t.Run("an order without items is accepted", func(t *testing.T) {
		req := CreateOrder{
			CustomerDetails: CustomerDetails{Email: "amelie@example.com"},
		}

		assert.NoError(t, validate.StructCtx(context.Background(), req))
	})

	t.Run("items that are present are still validated", func(t *testing.T) {
		req := CreateOrder{
			Items: []cartRequest.CartItem{
				{ProductID: "1", Quantity: 1},
			},
			CustomerDetails: CustomerDetails{Email: "amelie@example.com"},
		}

		assert.Error(t, validate.StructCtx(context.Background(), req), "a nameless item should fail validation")
	})
}
