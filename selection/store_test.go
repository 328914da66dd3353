package selection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
	productResponse "github.com/lumiere-atelier/storefront/product/pkg/response"
)

const testDebounce = 20 * time.Millisecond

type fakeAPI struct {
	mu       sync.Mutex
	cart     []cartRequest.CartItem
	products []productResponse.Product
	syncs    [][]cartRequest.CartItem
}

func (f *fakeAPI) FetchCart(_ context.Context) ([]cartRequest.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart, nil
}

func (f *fakeAPI) FetchProducts(_ context.Context) ([]productResponse.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products, nil
}

func (f *fakeAPI) SyncCart(_ context.Context, items []cartRequest.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncs = append(f.syncs, items)
	return nil
}

func (f *fakeAPI) syncCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.syncs)
}

func (f *fakeAPI) lastSync() []cartRequest.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.syncs) == 0 {
		return nil
	}
	return f.syncs[len(f.syncs)-1]
}

func eternityRing() productResponse.Product {
	return productResponse.Product{
		ID:       1,
		Name:     "The Eternity Ring",
		Category: "Rings",
		Price:    "$12,500",
	}
}

func waitForSyncs(t *testing.T, api *fakeAPI, want int) {
	t.Helper()
	deadline := time.Now().Add(50 * testDebounce)
	for time.Now().Before(deadline) {
		if api.syncCount() >= want {
			return
		}
		time.Sleep(testDebounce / 4)
	}
	t.Fatalf("expected %d syncs, got %d", want, api.syncCount())
}

func TestInitializeEndsReady(t *testing.T) {
	api := &fakeAPI{
		cart: []cartRequest.CartItem{
			{ProductID: "1", Name: "The Eternity Ring", Quantity: 2},
		},
		products: []productResponse.Product{eternityRing()},
	}
	store := NewStore(api, testDebounce)

	assert.Equal(t, PhaseUninitialized, store.Phase())
	store.Initialize(context.Background())

	assert.Equal(t, PhaseReady, store.Phase())
	assert.Len(t, store.Items(), 1)
	assert.Len(t, store.Products(), 1)
}

func TestMutationsBeforeReadyAreIgnored(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)

	require.NoError(t, store.Add(eternityRing()))
	store.Clear()

	assert.Empty(t, store.Items())
	time.Sleep(3 * testDebounce)
	assert.Zero(t, api.syncCount())
}

func TestAddIncrementsExistingLine(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())

	require.NoError(t, store.Add(eternityRing()))
	require.NoError(t, store.Add(eternityRing()))

	items := store.Items()
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].Quantity)
	assert.EqualValues(t, "12500", items[0].Price.String())
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())
	require.NoError(t, store.Add(eternityRing()))

	store.UpdateQuantity("1", 0)

	items := store.Items()
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].Quantity)
}

func TestDebounceSendsOnlySettledState(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())

	require.NoError(t, store.Add(eternityRing()))
	require.NoError(t, store.Add(eternityRing()))
	store.UpdateQuantity("1", 5)

	waitForSyncs(t, api, 1)
	time.Sleep(3 * testDebounce)

	assert.Equal(t, 1, api.syncCount(), "a burst of edits should collapse into one sync")
	last := api.lastSync()
	require.Len(t, last, 1)
	assert.EqualValues(t, 5, last[0].Quantity)
}

func TestGuardSuppressesEmptyOverPopulated(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())

	// The render-before-fetch window: local state still empty, server state
	// known non-empty, no interaction yet.
	store.mu.Lock()
	store.items = nil
	store.lastSynced = []byte(`[{"productId":"1"}]`)
	store.lastSyncedCount = 1
	store.interacted = false
	store.mu.Unlock()

	store.ScheduleSync()
	time.Sleep(3 * testDebounce)

	assert.Zero(t, api.syncCount(), "empty local state must not clobber a populated server cart")
}

func TestGuardLiftsAfterInteraction(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())
	require.NoError(t, store.Add(eternityRing()))
	waitForSyncs(t, api, 1)

	store.Clear()
	waitForSyncs(t, api, 2)

	assert.Empty(t, api.lastSync(), "a deliberate clear must reach the server")
}

func TestNoOpSyncIsSkipped(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())
	require.NoError(t, store.Add(eternityRing()))
	waitForSyncs(t, api, 1)

	store.ScheduleSync()
	time.Sleep(3 * testDebounce)

	assert.Equal(t, 1, api.syncCount(), "unchanged state should not produce a network call")
}

func TestResetRerunsPipeline(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())
	require.NoError(t, store.Add(eternityRing()))

	api.mu.Lock()
	api.cart = []cartRequest.CartItem{
		{ProductID: "2", Name: "Royal Sapphire", Quantity: 1},
	}
	api.mu.Unlock()

	store.Reset(context.Background())

	assert.Equal(t, PhaseReady, store.Phase())
	items := store.Items()
	require.Len(t, items, 1)
	assert.EqualValues(t, "2", items[0].ProductID)
}

func TestTotal(t *testing.T) {
	api := &fakeAPI{}
	store := NewStore(api, testDebounce)
	store.Initialize(context.Background())
	require.NoError(t, store.Add(eternityRing()))
	store.UpdateQuantity("1", 2)

	assert.EqualValues(t, "25000", store.Total().String())
}
