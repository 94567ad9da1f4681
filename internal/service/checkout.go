package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/events"
	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

type CheckoutInput struct {
	ShippingAddress string
	PaymentMethod   string
	IdempotencyKey  string
}

type PlacedOrder struct {
	Order *models.Order
	Items []models.OrderItem
}

// Checkout converts the caller's cart into an order inside a single store
// transaction: snapshot the cart, sum price x quantity, write the order and
// its frozen lines, then clear the cart. The clear is verified against the
// snapshot size; losing rows to a concurrent checkout aborts the whole unit
// of work, so two racing calls can never both charge for the same cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*PlacedOrder, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	if strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", ErrValidation)
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}

	if in.IdempotencyKey != "" {
		if placed, err := s.findPlaced(ctx, userID, in.IdempotencyKey); err != nil {
			return nil, err
		} else if placed != nil {
			l.Info("checkout_replayed", "order_id", placed.Order.ID)
			return placed, nil
		}
	}

	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		items, err := r.CartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrValidation)
		}

		var total int64
		itemIDs := make([]uuid.UUID, 0, len(items))
		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			lineTotal := it.PriceCents * int64(it.Quantity)
			total += lineTotal
			itemIDs = append(itemIDs, it.ID)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:      it.ProductID,
				ProductName:    it.ProductName,
				PriceCents:     it.PriceCents,
				Quantity:       it.Quantity,
				LineTotalCents: lineTotal,
			})
		}

		order = models.Order{
			UserID:          userID,
			TotalCents:      total,
			Status:          models.OrderStatusNew,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			order.IdempotencyKey = &key
		}

		if err := r.CreateOrder(ctx, &order, orderItems); err != nil {
			return err
		}

		deleted, err := r.DeleteCartItems(ctx, userID, itemIDs)
		if err != nil {
			return err
		}
		if deleted != int64(len(itemIDs)) {
			return fmt.Errorf("%w: cart changed during checkout", ErrConflict)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrValidation) || errors.Is(txErr, ErrConflict) {
			l.Warn("checkout_rejected", "error", txErr)
			return nil, txErr
		}
		// A unique violation on the idempotency key means a concurrent retry
		// won the race; hand back its order instead of failing.
		if in.IdempotencyKey != "" {
			if placed, ferr := s.findPlaced(ctx, userID, in.IdempotencyKey); ferr == nil && placed != nil {
				l.Info("checkout_replayed", "order_id", placed.Order.ID)
				return placed, nil
			}
		}
		l.Error("checkout_error", "status", 500, "error", txErr)
		return nil, txErr
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":        "order_created",
		"order_id":    order.ID,
		"user_id":     userID,
		"total_cents": order.TotalCents,
	}); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("checkout_success", "order_id", order.ID, "total_cents", order.TotalCents)
	return &PlacedOrder{Order: &order, Items: orderItems}, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, limit, offset)
}

func (s *CheckoutService) findPlaced(ctx context.Context, userID uuid.UUID, key string) (*PlacedOrder, error) {
	existing, err := s.Repo.FindOrderByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	items, err := s.Repo.OrderItems(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	return &PlacedOrder{Order: existing, Items: items}, nil
}
