package service

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
	cartService "github.com/lumiere-atelier/storefront/internal/cart/service"
	inErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/notification/mailer"
	"github.com/lumiere-atelier/storefront/internal/order/otel"
	"github.com/lumiere-atelier/storefront/internal/order/repository"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
	"github.com/lumiere-atelier/storefront/internal/session"
	"github.com/lumiere-atelier/storefront/order/pkg/request"
	"github.com/lumiere-atelier/storefront/order/pkg/response"
)

type OrderService struct {
	repo  repository.OrderRepository
	carts cartService.CartService
	mail  mailer.Mailer
}

func NewOrderService(
	repo repository.OrderRepository,
	carts cartService.CartService,
	mail mailer.Mailer,
) OrderService {
	return OrderService{repo: repo, carts: carts, mail: mail}
}

// CreateOrder records a purchase for any identity, account or guest. The
// order is written with paymentStatus completed and never transitions
// afterwards. The owning cart is cleared once the order is recorded, and the
// confirmation email is best-effort: a delivery failure is logged but never
// fails an already-recorded order.
func (s OrderService) CreateOrder(
	c context.Context,
	identity session.Identity,
	req request.CreateOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Logger()

	if req.CustomerDetails.Email == "" {
		commonOtel.RecordError(inErrors.ErrEmailRequired, span)
		logger.Info().Msg("rejecting order without customer email")
		return response.Order{}, inErrors.ErrEmailRequired
	}

	logger = logger.With().Str(log.KeyProcess, "normalizing order items").Logger()
	logger.Info().Msg("normalizing order items")
	items := cartService.NormalizeItems(req.Items)
	logger.Info().Msg("normalized order items")

	total := req.TotalAmount.Decimal
	if total.IsZero() {
		total = recomputeTotal(items)
	}

	order := repository.Order{
		Email:       req.CustomerDetails.Email,
		Items:       items,
		TotalAmount: total.InexactFloat64(),
		PaymentDetails: repository.PaymentDetails{
			Method:        req.PaymentDetails.Method,
			TransactionID: req.PaymentDetails.TransactionID,
		},
		CustomerDetails: repository.CustomerDetails{
			FirstName:  req.CustomerDetails.FirstName,
			LastName:   req.CustomerDetails.LastName,
			Email:      req.CustomerDetails.Email,
			Address:    req.CustomerDetails.Address,
			City:       req.CustomerDetails.City,
			Country:    req.CustomerDetails.Country,
			PostalCode: req.CustomerDetails.PostalCode,
		},
		PaymentStatus: repository.PaymentStatusCompleted,
	}
	if identity.IsAccount() {
		order.AccountID = identity.Account.ID
	} else {
		order.GuestID = identity.GuestID
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := s.repo.Insert(c, order)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	err = s.carts.ClearCart(c, cartRepository.OwnerFor(identity))
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("cleared cart")

	logger = logger.With().Str(log.KeyProcess, "sending order confirmation").Logger()
	logger.Info().Msg("sending order confirmation")
	if err := s.sendConfirmation(c, order); err != nil {
		err = fmt.Errorf("failed sending order confirmation with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("sent order confirmation")
	}

	return response.FromOrder(order), nil
}

// FindOrders lists an account's order history, newest first. Guests have no
// queryable history.
func (s OrderService) FindOrders(
	c context.Context,
	identity session.Identity,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Logger()

	if !identity.IsAccount() {
		commonOtel.RecordError(inErrors.ErrNotAuthenticated, span)
		logger.Info().Msg("rejecting order history for guest identity")
		return nil, inErrors.ErrNotAuthenticated
	}

	logger = logger.With().
		Str(log.KeyProcess, "finding orders").
		Str(log.KeyAccountID, identity.Account.ID).
		Logger()
	logger.Info().Msg("finding orders")
	orders, err := s.repo.FindByAccount(c, identity.Account.ID)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	return response.FromOrders(orders), nil
}

func (s OrderService) sendConfirmation(c context.Context, order repository.Order) error {
	lines := make([]mailer.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, mailer.OrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    humanize.CommafWithDigits(item.Price, 2),
		})
	}

	body, err := mailer.OrderConfirmationBody(
		order.CustomerDetails.FirstName,
		lines,
		humanize.CommafWithDigits(order.TotalAmount, 2),
	)
	if err != nil {
		return err
	}

	return s.mail.SendHTML(c, order.Email, mailer.OrderConfirmationSubject(order.ID), body)
}

func recomputeTotal(items []cartRepository.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}
