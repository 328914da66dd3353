package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartRequest "github.com/lumiere-atelier/storefront/cart/pkg/request"
	"github.com/lumiere-atelier/storefront/internal/log"
	productResponse "github.com/lumiere-atelier/storefront/product/pkg/response"
)

// DefaultDebounce is how long the store waits after the last mutation before
// pushing the settled cart state to the server.
const DefaultDebounce = 1500 * time.Millisecond

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

// Store holds the live in-memory cart on the client side. Every mutation is
// applied locally first and synced to the server as a debounced full-state
// replace; the server never pushes state back outside Initialize.
type Store struct {
	mu sync.Mutex

	api      API
	debounce time.Duration

	c     context.Context
	timer *time.Timer

	phase      Phase
	items      []cartRequest.CartItem
	products   []productResponse.Product
	interacted bool

	lastSynced      []byte
	lastSyncedCount int
}

func NewStore(api API, debounce time.Duration) *Store {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Store{
		api:      api,
		debounce: debounce,
		c:        context.Background(),
		phase:    PhaseUninitialized,
	}
}

// Initialize fetches the server cart and the catalog. Fetch failures are
// logged and leave the corresponding state empty; the store always ends up
// Ready so the shopper is never stuck behind a failed fetch.
func (s *Store) Initialize(c context.Context) {
	s.mu.Lock()
	if s.phase != PhaseUninitialized {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseLoading
	s.c = c
	s.mu.Unlock()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Initialize").
		Logger()

	logger.Info().Msg("fetching cart")
	items, err := s.api.FetchCart(c)
	if err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		items = nil
	}

	logger.Info().Msg("fetching products")
	products, err := s.api.FetchProducts(c)
	if err != nil {
		err = fmt.Errorf("failed fetching products with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		products = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.products = products
	s.lastSynced = serialize(items)
	s.lastSyncedCount = len(items)
	s.interacted = false
	s.phase = PhaseReady
	logger.Info().Msgf("store ready with %d cart items and %d products", len(items), len(products))
}

// Reset tears the store back to Uninitialized and re-runs Initialize. Invoked
// whenever the resolved account identity changes, since the cart ownership
// key changes with it.
func (s *Store) Reset(c context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.phase = PhaseUninitialized
	s.items = nil
	s.products = nil
	s.lastSynced = nil
	s.lastSyncedCount = 0
	s.interacted = false
	s.mu.Unlock()

	s.Initialize(c)
}

func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Store) Items() []cartRequest.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]cartRequest.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Products() []productResponse.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]productResponse.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Add puts a catalog piece in the cart; adding a piece already present
// increments its quantity instead of duplicating the line.
func (s *Store) Add(product productResponse.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return nil
	}

	ref := cartRequest.ProductRef(fmt.Sprintf("%d", product.ID))
	for i, item := range s.items {
		if item.ProductID == ref {
			s.items[i].Quantity++
			s.mutated()
			return nil
		}
	}

	price, err := cartRequest.ParseDisplayPrice(product.Price)
	if err != nil {
		return fmt.Errorf("failed parsing product price with error=%w", err)
	}
	s.items = append(s.items, cartRequest.CartItem{
		ProductID: ref,
		Name:      product.Name,
		Price:     cartRequest.NewPrice(price),
		Image:     product.Image,
		Category:  product.Category,
		Quantity:  1,
	})
	s.mutated()
	return nil
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return
	}

	ref := cartRequest.ProductRef(productID)
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != ref {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mutated()
}

// UpdateQuantity sets a line's quantity, floored at 1; removal is explicit
// via Remove.
func (s *Store) UpdateQuantity(productID string, quantity int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return
	}

	if quantity < 1 {
		quantity = 1
	}
	ref := cartRequest.ProductRef(productID)
	for i, item := range s.items {
		if item.ProductID == ref {
			s.items[i].Quantity = quantity
			s.mutated()
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return
	}

	s.items = nil
	s.mutated()
}

// mutated marks real user interaction and resets the debounce timer; only the
// settled state after a burst of edits is sent. Callers hold s.mu.
func (s *Store) mutated() {
	s.interacted = true
	s.schedule()
}

// ScheduleSync arms the debounce timer without marking interaction. The
// presentation layer calls it on every state observation, which is exactly
// the path the empty-over-populated guard exists for.
func (s *Store) ScheduleSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return
	}
	s.schedule()
}

func (s *Store) schedule() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

// flush pushes the local cart to the server, subject to two suppressions: the
// empty-over-populated guard and the no-op skip.
func (s *Store) flush() {
	s.mu.Lock()
	c := s.c
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store flush").
		Logger()

	// An empty local cart must not clobber a populated server cart unless a
	// real interaction emptied it.
	if len(s.items) == 0 && s.lastSyncedCount > 0 && !s.interacted {
		s.mu.Unlock()
		logger.Info().Msg("suppressing sync of uninitialized empty state")
		return
	}

	serialized := serialize(s.items)
	if string(serialized) == string(s.lastSynced) {
		s.mu.Unlock()
		logger.Debug().Msg("skipping no-op sync")
		return
	}

	items := make([]cartRequest.CartItem, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()

	logger.Info().Msgf("syncing %d cart items", len(items))
	if err := s.api.SyncCart(c, items); err != nil {
		err = fmt.Errorf("failed syncing cart with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}

	s.mu.Lock()
	s.lastSynced = serialized
	s.lastSyncedCount = len(items)
	s.mu.Unlock()
	logger.Info().Msg("synced cart")
}

func serialize(items []cartRequest.CartItem) []byte {
	if len(items) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// Total sums price×quantity across the cart.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}
