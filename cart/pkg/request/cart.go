package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type SyncCart struct {
	Items []CartItem `json:"items" validate:"dive"`
}

type CartItem struct {
	ProductID ProductRef `json:"productId" validate:"required"`
	Name      string     `json:"name"      validate:"required"`
	Price     Price      `json:"price"`
	Image     string     `json:"image"`
	Category  string     `json:"category"`
	Quantity  int32      `json:"quantity"`
}

// ProductRef accepts the product identifier as either a JSON string or a JSON
// number; the catalog numbers items but carts store the reference as a string.
type ProductRef string

func (p *ProductRef) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = ProductRef(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("productId must be a string or a number: %w", err)
	}
	*p = ProductRef(n.String())
	return nil
}

// Price accepts a numeric value or a display string such as "$12,500" and
// normalizes it to a plain number, stripping currency symbols and thousands
// separators.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		d, err := ParseDisplayPrice(v)
		if err != nil {
			return err
		}
		p.Decimal = d
		return nil
	}
	return p.Decimal.UnmarshalJSON(data)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// ParseDisplayPrice keeps digits and the decimal point only, so "$12,500"
// becomes 12500.
func ParseDisplayPrice(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("price %q has no numeric value", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed parsing price %q with error=%w", s, err)
	}
	return d, nil
}
