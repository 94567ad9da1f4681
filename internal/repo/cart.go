package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arkumar/ecommerce-backend/internal/models"
)

func (r *GormRepo) CartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FindCartItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) FindCartItemByProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// MergeCartItem adds quantity to an existing (user, product) line or creates
// it with the given price snapshot. The snapshot of the first add wins. The
// upsert is a single statement, so two racing first adds collapse into one
// line instead of the loser tripping over the unique index.
func (r *GormRepo) MergeCartItem(ctx context.Context, item *models.CartItem) error {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("quantity + ?", item.Quantity)}),
	}).Create(item).Error
	if err != nil {
		return err
	}

	var merged models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&merged).Error; err != nil {
		return err
	}
	*item = merged
	return nil
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, item *models.CartItem, quantity uint) error {
	return r.DB.WithContext(ctx).Model(item).Update("quantity", quantity).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// DeleteCartItems removes the given lines and reports how many rows actually
// went away, so callers can detect a cart consumed by a concurrent checkout.
func (r *GormRepo) DeleteCartItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, itemIDs).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
