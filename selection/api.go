package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
	cartResponse "github.com/lumiere-atelier/storefront/cart/pkg/response"
	productResponse "github.com/lumiere-atelier/storefront/product/pkg/response"
)

// API is the slice of the storefront HTTP surface the store needs.
type API interface {
	FetchCart(c context.Context) ([]cartRequest.CartItem, error)
	FetchProducts(c context.Context) ([]productResponse.Product, error)
	SyncCart(c context.Context, items []cartRequest.CartItem) error
}

// Client talks to the storefront API. The cookie jar carries the guest
// session and account token cookies across calls, so the server sees one
// continuous identity.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating cookie jar with error=%w", err)
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (t *Client) FetchCart(c context.Context) ([]cartRequest.CartItem, error) {
	body, err := t.get(c, "/api/cart")
	if err != nil {
		return nil, err
	}

	data := struct {
		Cart cartResponse.Cart `json:"cart"`
	}{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed decoding cart with error=%w", err)
	}

	items := make([]cartRequest.CartItem, 0, len(data.Cart.Items))
	for _, item := range data.Cart.Items {
		items = append(items, cartRequest.CartItem{
			ProductID: cartRequest.ProductRef(item.ProductID),
			Name:      item.Name,
			Price:     cartRequest.NewPrice(decimal.NewFromFloat(item.Price)),
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}

func (t *Client) FetchProducts(c context.Context) ([]productResponse.Product, error) {
	body, err := t.get(c, "/api/products")
	if err != nil {
		return nil, err
	}

	data := struct {
		Products []productResponse.Product `json:"products"`
	}{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed decoding products with error=%w", err)
	}
	return data.Products, nil
}

func (t *Client) SyncCart(c context.Context, items []cartRequest.CartItem) error {
	payload, err := json.Marshal(cartRequest.SyncCart{Items: items})
	if err != nil {
		return fmt.Errorf("failed encoding cart with error=%w", err)
	}

	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		t.baseURL+"/api/cart/sync",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("failed creating request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed syncing cart with error=%w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("failed syncing cart with status=%d", res.StatusCode)
	}
	return nil
}

func (t *Client) get(c context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(c, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating request with error=%w", err)
	}

	res, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed calling %s with error=%w", path, err)
	}
	defer res.Body.Close()

	env := envelope{}
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed decoding %s response with error=%w", path, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed calling %s with status=%d message=%s", path, res.StatusCode, env.Message)
	}
	return env.Data, nil
}
