package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-atelier/storefront/cart/pkg/request"
	"github.com/lumiere-atelier/storefront/internal/cart/repository"
	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
)

type fakeCartRepository struct {
	carts map[repository.Owner]repository.Cart
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: map[repository.Owner]repository.Cart{}}
}

func (f *fakeCartRepository) FindByOwner(
	_ context.Context,
	owner repository.Owner,
) (repository.Cart, error) {
	cart, ok := f.carts[owner]
	if !ok {
		return repository.Cart{}, inErrors.ErrCartNotFound
	}
	return cart, nil
}

func (f *fakeCartRepository) ReplaceItems(
	_ context.Context,
	owner repository.Owner,
	items []repository.LineItem,
) (repository.Cart, error) {
	if items == nil {
		items = []repository.LineItem{}
	}
	cart, ok := f.carts[owner]
	if !ok {
		cart = repository.Cart{
			ID:        "cart-" + owner.AccountID + owner.GuestID,
			AccountID: owner.AccountID,
			GuestID:   owner.GuestID,
		}
	}
	cart.Items = items
	f.carts[owner] = cart
	return cart, nil
}

func (f *fakeCartRepository) Delete(_ context.Context, owner repository.Owner) error {
	delete(f.carts, owner)
	return nil
}

func TestGetCartCreatesMissingCart(t *testing.T) {
	repo := newFakeCartRepository()
	svc := NewCartService(repo)
	owner := repository.GuestOwner("guest-1")

	cart, err := svc.GetCart(context.Background(), owner)

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	_, persisted := repo.carts[owner]
	assert.True(t, persisted, "a cart read should persist an empty cart")
}

func TestReplaceCartNormalization(t *testing.T) {
	tests := []struct {
		name     string
		items    []request.CartItem
		expected []repository.LineItem
	}{
		{
			name: "duplicate product references are merged summing quantities",
			items: []request.CartItem{
				{ProductID: "1", Name: "Eternity Ring", Quantity: 2},
				{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
				{ProductID: "1", Name: "Eternity Ring", Quantity: 3},
			},
			expected: []repository.LineItem{
				{ProductID: "1", Name: "Eternity Ring", Quantity: 5},
				{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
			},
		},
		{
			name: "zero and negative quantities floor at one",
			items: []request.CartItem{
				{ProductID: "3", Name: "Celeste Earrings", Quantity: 0},
				{ProductID: "4", Name: "Lunar Bracelet", Quantity: -2},
			},
			expected: []repository.LineItem{
				{ProductID: "3", Name: "Celeste Earrings", Quantity: 1},
				{ProductID: "4", Name: "Lunar Bracelet", Quantity: 1},
			},
		},
		{
			name:     "empty payload replaces with empty cart",
			items:    nil,
			expected: []repository.LineItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCartRepository()
			svc := NewCartService(repo)
			owner := repository.AccountOwner("account-1")

			cart, err := svc.ReplaceCart(context.Background(), owner, tt.items)

			require.NoError(t, err)
			assert.Len(t, cart.Items, len(tt.expected))
			assert.EqualValues(t, tt.expected, repo.carts[owner].Items)
		})
	}
}

func TestReplaceCartIsFullReplace(t *testing.T) {
	repo := newFakeCartRepository()
	svc := NewCartService(repo)
	owner := repository.GuestOwner("guest-2")

	_, err := svc.ReplaceCart(context.Background(), owner, []request.CartItem{
		{ProductID: "1", Name: "Eternity Ring", Quantity: 2},
		{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
	})
	require.NoError(t, err)

	cart, err := svc.ReplaceCart(context.Background(), owner, []request.CartItem{
		{ProductID: "2", Name: "Heritage Necklace", Quantity: 4},
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.EqualValues(t, "2", cart.Items[0].ProductID)
	assert.EqualValues(t, 4, cart.Items[0].Quantity)
}

func TestReplaceCartIdempotence(t *testing.T) {
	repo := newFakeCartRepository()
	svc := NewCartService(repo)
	owner := repository.GuestOwner("guest-idem")
	items := []request.CartItem{
		{ProductID: "1", Name: "Eternity Ring", Quantity: 2},
		{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
	}

	first, err := svc.ReplaceCart(context.Background(), owner, items)
	require.NoError(t, err)
	second, err := svc.ReplaceCart(context.Background(), owner, items)
	require.NoError(t, err)

	assert.EqualValues(t, first.Items, second.Items)
}

func TestGuestToAccountLifecycle(t *testing.T) {
	repo := newFakeCartRepository()
	svc := NewCartService(repo)

	// A guest fills a cart, authenticates, and later logs out; a fresh guest
	// session must start empty.
	_, err := svc.ReplaceCart(context.Background(), repository.GuestOwner("guest-e2e"), []request.CartItem{
		{ProductID: "1", Name: "Eternity Ring", Quantity: 1},
		{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MergeGuestIntoAccount(context.Background(), "guest-e2e", "account-e2e"))

	accountCart, err := svc.GetCart(context.Background(), repository.AccountOwner("account-e2e"))
	require.NoError(t, err)
	assert.Len(t, accountCart.Items, 2)

	require.NoError(t, svc.ClearCart(context.Background(), repository.AccountOwner("account-e2e")))

	freshGuestCart, err := svc.GetCart(context.Background(), repository.GuestOwner("guest-next"))
	require.NoError(t, err)
	assert.Empty(t, freshGuestCart.Items)
}

func TestMergeGuestIntoAccount(t *testing.T) {
	guestItems := []repository.LineItem{
		{ProductID: "1", Name: "Eternity Ring", Quantity: 2},
		{ProductID: "2", Name: "Heritage Necklace", Quantity: 1},
	}
	accountItems := []repository.LineItem{
		{ProductID: "3", Name: "Celeste Earrings", Quantity: 3},
	}

	t.Run("non-empty guest cart overwrites the account cart", func(t *testing.T) {
		repo := newFakeCartRepository()
		repo.carts[repository.GuestOwner("guest-3")] = repository.Cart{
			ID:      "cart-guest",
			GuestID: "guest-3",
			Items:   guestItems,
		}
		repo.carts[repository.AccountOwner("account-3")] = repository.Cart{
			ID:        "cart-account",
			AccountID: "account-3",
			Items:     accountItems,
		}
		svc := NewCartService(repo)

		err := svc.MergeGuestIntoAccount(context.Background(), "guest-3", "account-3")

		require.NoError(t, err)
		assert.EqualValues(t, guestItems, repo.carts[repository.AccountOwner("account-3")].Items)
		_, guestRemains := repo.carts[repository.GuestOwner("guest-3")]
		assert.False(t, guestRemains, "the guest cart record should be deleted after merge")
	})

	t.Run("empty guest cart leaves the account cart untouched", func(t *testing.T) {
		repo := newFakeCartRepository()
		repo.carts[repository.GuestOwner("guest-4")] = repository.Cart{
			ID:      "cart-guest",
			GuestID: "guest-4",
			Items:   []repository.LineItem{},
		}
		repo.carts[repository.AccountOwner("account-4")] = repository.Cart{
			ID:        "cart-account",
			AccountID: "account-4",
			Items:     accountItems,
		}
		svc := NewCartService(repo)

		err := svc.MergeGuestIntoAccount(context.Background(), "guest-4", "account-4")

		require.NoError(t, err)
		assert.EqualValues(t, accountItems, repo.carts[repository.AccountOwner("account-4")].Items)
	})

	t.Run("absent guest cart is a no-op", func(t *testing.T) {
		repo := newFakeCartRepository()
		repo.carts[repository.AccountOwner("account-5")] = repository.Cart{
			ID:        "cart-account",
			AccountID: "account-5",
			Items:     accountItems,
		}
		svc := NewCartService(repo)

		err := svc.MergeGuestIntoAccount(context.Background(), "guest-5", "account-5")

		require.NoError(t, err)
		assert.EqualValues(t, accountItems, repo.carts[repository.AccountOwner("account-5")].Items)
	})
}

func TestClearCart(t *testing.T) {
	repo := newFakeCartRepository()
	repo.carts[repository.AccountOwner("account-6")] = repository.Cart{
		ID:        "cart-account",
		AccountID: "account-6",
		Items:     []repository.LineItem{{ProductID: "1", Name: "Eternity Ring", Quantity: 1}},
	}
	svc := NewCartService(repo)

	err := svc.ClearCart(context.Background(), repository.AccountOwner("account-6"))

	require.NoError(t, err)
	assert.Empty(t, repo.carts[repository.AccountOwner("account-6")].Items)
}
