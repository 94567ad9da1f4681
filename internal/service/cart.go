package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine is a read-only view of a cart row; the subtotal is recomputed from
// the stored snapshot on every read and never trusted from storage.
type CartLine struct {
	Item     models.CartItem
	Subtotal int64
}

type CartView struct {
	Lines      []CartLine
	TotalCents int64
}

// AddItem merges the quantity into an existing (user, product) line when one
// exists; the name and price snapshot of the first add is kept.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item")

	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrValidation)
		}
		l.Error("add_item_error", "status", 500, "error", err)
		return nil, err
	}

	item := models.CartItem{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		PriceCents:  product.PriceCents,
		Quantity:    uint(quantity),
	}
	if err := s.Repo.MergeCartItem(ctx, &item); err != nil {
		l.Error("add_item_error", "status", 500, "error", err)
		return nil, err
	}

	l.Info("item_added", "user_id", userID, "product_id", productID, "quantity", item.Quantity)
	return &item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.update_quantity")

	if quantity <= 0 {
		// Zero is not a shortcut for removal; the remove operation exists.
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	item, err := s.Repo.FindCartItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		l.Error("update_quantity_error", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Repo.SetCartItemQuantity(ctx, item, uint(quantity)); err != nil {
		l.Error("update_quantity_error", "status", 500, "error", err)
		return nil, err
	}
	item.Quantity = uint(quantity)

	l.Info("quantity_updated", "user_id", userID, "item_id", itemID, "quantity", quantity)
	return item, nil
}

// RemoveItem reports ErrNotFound for an absent or foreign item rather than
// succeeding silently.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove_item")

	deleted, err := s.Repo.DeleteCartItem(ctx, userID, itemID)
	if err != nil {
		l.Error("remove_item_error", "status", 500, "error", err)
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: cart item not found", ErrNotFound)
	}

	l.Info("item_removed", "user_id", userID, "item_id", itemID)
	return nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.Repo.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := CartView{Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		subtotal := it.PriceCents * int64(it.Quantity)
		view.Lines = append(view.Lines, CartLine{Item: it, Subtotal: subtotal})
		view.TotalCents += subtotal
	}
	return &view, nil
}
