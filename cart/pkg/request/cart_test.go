package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "plain number", payload: `{"price": 12500}`, expected: "12500"},
		{name: "decimal number", payload: `{"price": 899.5}`, expected: "899.5"},
		{name: "display string with currency symbol", payload: `{"price": "$12,500"}`, expected: "12500"},
		{name: "display string with decimals", payload: `{"price": "$1,299.99"}`, expected: "1299.99"},
		{name: "numeric string", payload: `{"price": "4200"}`, expected: "4200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CartItem{}
			err := json.Unmarshal([]byte(tt.payload), &item)

			require.NoError(t, err)
			assert.EqualValues(t, tt.expected, item.Price.String())
		})
	}
}

func TestPriceUnmarshalRejectsNonNumericString(t *testing.T) {
	item := CartItem{}
	err := json.Unmarshal([]byte(`{"price": "priceless"}`), &item)

	assert.Error(t, err)
}

func TestProductRefUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected ProductRef
	}{
		{name: "number reference", payload: `{"productId": 7}`, expected: "7"},
		{name: "string reference", payload: `{"productId": "7"}`, expected: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CartItem{}
			err := json.Unmarshal([]byte(tt.payload), &item)

			require.NoError(t, err)
			assert.EqualValues(t, tt.expected, item.ProductID)
		})
	}
}
