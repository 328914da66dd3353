package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
	cartService "github.com/lumiere-atelier/storefront/internal/cart/service"
	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/order/repository"
	"github.com/lumiere-atelier/storefront/internal/session"
	"github.com/lumiere-atelier/storefront/order/pkg/request"
)

type fakeOrderRepository struct {
	orders []repository.Order
}

func (f *fakeOrderRepository) Insert(
	_ context.Context,
	order repository.Order,
) (repository.Order, error) {
	if order.ID == "" {
		order.ID = "order-1"
	}
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepository) FindByAccount(
	_ context.Context,
	accountID string,
) ([]repository.Order, error) {
	out := []repository.Order{}
	for _, order := range f.orders {
		if order.AccountID == accountID {
			out = append(out, order)
		}
	}
	return out, nil
}

type fakeCartRepository struct {
	carts map[cartRepository.Owner]cartRepository.Cart
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: map[cartRepository.Owner]cartRepository.Cart{}}
}

func (f *fakeCartRepository) FindByOwner(
	_ context.Context,
	owner cartRepository.Owner,
) (cartRepository.Cart, error) {
	cart, ok := f.carts[owner]
	if !ok {
		return cartRepository.Cart{}, inErrors.ErrCartNotFound
	}
	return cart, nil
}

func (f *fakeCartRepository) ReplaceItems(
	_ context.Context,
	owner cartRepository.Owner,
	items []cartRepository.LineItem,
) (cartRepository.Cart, error) {
	if items == nil {
		items = []cartRepository.LineItem{}
	}
	cart := f.carts[owner]
	cart.AccountID = owner.AccountID
	cart.GuestID = owner.GuestID
	cart.Items = items
	f.carts[owner] = cart
	return cart, nil
}

func (f *fakeCartRepository) Delete(_ context.Context, owner cartRepository.Owner) error {
	delete(f.carts, owner)
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendHTML(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func accountIdentity(id string) session.Identity {
	return session.Identity{Account: &session.Account{ID: id, Name: "Amélie", Email: "amelie@example.com"}}
}

func validOrder() request.CreateOrder {
	return request.CreateOrder{
		Items: []cartRequest.CartItem{
			{ProductID: "1", Name: "The Eternity Ring", Quantity: 1},
		},
		CustomerDetails: request.CustomerDetails{
			FirstName: "Amélie",
			Email:     "amelie@example.com",
		},
	}
}

func newTestService() (OrderService, *fakeOrderRepository, *fakeCartRepository, *fakeMailer) {
	orderRepo := &fakeOrderRepository{}
	cartRepo := newFakeCartRepository()
	mail := &fakeMailer{}
	svc := NewOrderService(orderRepo, cartService.NewCartService(cartRepo), mail)
	return svc, orderRepo, cartRepo, mail
}

func TestCreateOrderRequiresEmail(t *testing.T) {
	svc, orderRepo, _, _ := newTestService()
	req := validOrder()
	req.CustomerDetails.Email = ""

	_, err := svc.CreateOrder(context.Background(), accountIdentity("account-1"), req)

	assert.ErrorIs(t, err, inErrors.ErrEmailRequired)
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderCompletesPaymentAndClearsCart(t *testing.T) {
	svc, orderRepo, cartRepo, mail := newTestService()
	owner := cartRepository.AccountOwner("account-1")
	cartRepo.carts[owner] = cartRepository.Cart{
		AccountID: "account-1",
		Items: []cartRepository.LineItem{
			{ProductID: "1", Name: "The Eternity Ring", Price: 12500, Quantity: 1},
		},
	}

	order, err := svc.CreateOrder(context.Background(), accountIdentity("account-1"), validOrder())

	require.NoError(t, err)
	assert.Equal(t, repository.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, "account-1", order.AccountID)
	assert.Empty(t, cartRepo.carts[owner].Items, "cart should be cleared after the order")
	assert.EqualValues(t, []string{"amelie@example.com"}, mail.sent)
	require.Len(t, orderRepo.orders, 1)
}

func TestCreateOrderAllowsEmptyItems(t *testing.T) {
	svc, orderRepo, _, mail := newTestService()
	req := validOrder()
	req.Items = nil

	order, err := svc.CreateOrder(context.Background(), accountIdentity("account-1"), req)

	require.NoError(t, err, "an itemless order with a contact email is still accepted")
	assert.Zero(t, order.TotalAmount)
	assert.Empty(t, order.Items)
	assert.Len(t, orderRepo.orders, 1)
	assert.EqualValues(t, []string{"amelie@example.com"}, mail.sent)
}

func TestCreateOrderSurvivesMailFailure(t *testing.T) {
	svc, orderRepo, _, mail := newTestService()
	mail.err = errors.New("smtp unreachable")

	order, err := svc.CreateOrder(context.Background(), accountIdentity("account-1"), validOrder())

	require.NoError(t, err, "a failed confirmation email must not fail the order")
	assert.NotEmpty(t, order.ID)
	assert.Len(t, orderRepo.orders, 1)
}

func TestCreateOrderForGuestIdentity(t *testing.T) {
	svc, orderRepo, _, _ := newTestService()

	order, err := svc.CreateOrder(
		context.Background(),
		session.Identity{GuestID: "guest-1"},
		validOrder(),
	)

	require.NoError(t, err)
	assert.Empty(t, order.AccountID)
	assert.Equal(t, "guest-1", order.GuestID)
	assert.Len(t, orderRepo.orders, 1)
}

func TestCreateOrderRecomputesZeroTotal(t *testing.T) {
	svc, _, _, _ := newTestService()
	req := request.CreateOrder{
		Items: []cartRequest.CartItem{
			{ProductID: "1", Name: "The Eternity Ring", Price: cartRequest.Price{}, Quantity: 2},
		},
		CustomerDetails: request.CustomerDetails{Email: "amelie@example.com"},
	}
	require.NoError(t, (&req.Items[0].Price).UnmarshalJSON([]byte(`"$12,500"`)))

	order, err := svc.CreateOrder(context.Background(), accountIdentity("account-1"), req)

	require.NoError(t, err)
	assert.InDelta(t, 25000, order.TotalAmount, 0.001)
}

func TestFindOrders(t *testing.T) {
	svc, orderRepo, _, _ := newTestService()
	orderRepo.orders = []repository.Order{
		{ID: "order-1", AccountID: "account-1"},
		{ID: "order-2", AccountID: "account-2"},
	}

	t.Run("guest identities cannot list order history", func(t *testing.T) {
		_, err := svc.FindOrders(context.Background(), session.Identity{GuestID: "guest-1"})

		assert.ErrorIs(t, err, inErrors.ErrNotAuthenticated)
	})

	t.Run("accounts only see their own orders", func(t *testing.T) {
		orders, err := svc.FindOrders(context.Background(), accountIdentity("account-1"))

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "order-1", orders[0].ID)
	})
}
