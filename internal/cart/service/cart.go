package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumiere-atelier/storefront/cart/pkg/request"
	"github.com/lumiere-atelier/storefront/cart/pkg/response"
	"github.com/lumiere-atelier/storefront/internal/cart/otel"
	"github.com/lumiere-atelier/storefront/internal/cart/repository"
	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/log"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
)

type CartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return CartService{repo: repo}
}

// GetCart read-creates: a missing cart is persisted empty before being
// returned, so a cart read never reports not-found.
func (s CartService) GetCart(c context.Context, owner repository.Owner) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.repo.FindByOwner(c, owner)
	if err != nil {
		if !errors.Is(err, inErrors.ErrCartNotFound) {
			err = fmt.Errorf("failed finding cart with error=%w", err)
			commonOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}

		logger = logger.With().Str(log.KeyProcess, "creating empty cart").Logger()
		logger.Info().Msg("cart not found, creating empty cart")
		cart, err = s.repo.ReplaceItems(c, owner, nil)
		if err != nil {
			err = fmt.Errorf("failed creating empty cart with error=%w", err)
			commonOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("created empty cart")
	}
	logger.Info().Msg("found cart")

	return response.FromCart(cart), nil
}

// ReplaceCart is the authoritative full-replace sync: the caller always sends
// its complete cart state, and the previous contents are overwritten.
func (s CartService) ReplaceCart(
	c context.Context,
	owner repository.Owner,
	items []request.CartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ReplaceCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ReplaceCart").
		Int(log.KeyCartItems, len(items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "normalizing cart items").Logger()
	logger.Info().Msg("normalizing cart items")
	normalized := NormalizeItems(items)
	logger.Info().Msg("normalized cart items")

	logger = logger.With().Str(log.KeyProcess, "replacing cart items").Logger()
	logger.Info().Msg("replacing cart items")
	cart, err := s.repo.ReplaceItems(c, owner, normalized)
	if err != nil {
		err = fmt.Errorf("failed replacing cart items with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("replaced cart items")

	return response.FromCart(cart), nil
}

// MergeGuestIntoAccount runs once at the moment a guest authenticates. A
// non-empty guest cart wins over whatever the account cart held, and the guest
// record is deleted. An empty or absent guest cart leaves the account cart
// untouched.
func (s CartService) MergeGuestIntoAccount(
	c context.Context,
	guestID string,
	accountID string,
) error {
	c, span := otel.Tracer.Start(c, "CartService MergeGuestIntoAccount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService MergeGuestIntoAccount").
		Str(log.KeyGuestID, guestID).
		Str(log.KeyAccountID, accountID).
		Logger()

	if guestID == "" {
		return nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding guest cart").Logger()
	logger.Info().Msg("finding guest cart")
	guestCart, err := s.repo.FindByOwner(c, repository.GuestOwner(guestID))
	if err != nil {
		if errors.Is(err, inErrors.ErrCartNotFound) {
			logger.Info().Msg("no guest cart to merge")
			return nil
		}
		err = fmt.Errorf("failed finding guest cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if len(guestCart.Items) == 0 {
		logger.Info().Msg("guest cart is empty, leaving account cart untouched")
		return nil
	}
	logger.Info().Msgf("found guest cart with %d items", len(guestCart.Items))

	logger = logger.With().Str(log.KeyProcess, "overwriting account cart").Logger()
	logger.Info().Msg("overwriting account cart with guest cart items")
	_, err = s.repo.ReplaceItems(c, repository.AccountOwner(accountID), guestCart.Items)
	if err != nil {
		err = fmt.Errorf("failed overwriting account cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("overwrote account cart")

	logger = logger.With().Str(log.KeyProcess, "deleting guest cart").Logger()
	logger.Info().Msg("deleting guest cart")
	err = s.repo.Delete(c, repository.GuestOwner(guestID))
	if err != nil {
		err = fmt.Errorf("failed deleting guest cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted guest cart")

	return nil
}

// ClearCart empties the cart; invoked on logout and after an order is
// recorded.
func (s CartService) ClearCart(c context.Context, owner repository.Owner) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	_, err := s.repo.ReplaceItems(c, owner, nil)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}

// NormalizeItems de-duplicates by product identifier, summing quantities,
// floors each quantity at 1, and resolves display prices to numbers. First-seen
// order is preserved.
func NormalizeItems(items []request.CartItem) []repository.LineItem {
	index := map[string]int{}
	normalized := make([]repository.LineItem, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		productID := string(item.ProductID)
		if i, ok := index[productID]; ok {
			normalized[i].Quantity += quantity
			continue
		}
		index[productID] = len(normalized)
		normalized = append(normalized, repository.LineItem{
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price.InexactFloat64(),
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  quantity,
		})
	}
	return normalized
}
