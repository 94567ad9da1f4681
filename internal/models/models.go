package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Username     string    `gorm:"unique;not null"  json:"username"`
	Email        string    `gorm:"unique;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	FirstName    string    `gorm:"not null"         json:"first_name"`
	LastName     string    `gorm:"not null"         json:"last_name"`
	Role         string    `gorm:"not null"         json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"  json:"id"`
	Name        string    `gorm:"not null"    json:"name"`
	Description string    `gorm:"not null"    json:"description"`
	PriceCents  int64     `gorm:"not null"    json:"price_cents"`
	Count       uint      `json:"count"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CartItem carries the product name and price captured at add time, so
// later catalog edits do not change what is already in the cart.
type CartItem struct {
	ID          uuid.UUID `gorm:"primaryKey"                             json:"id"`
	UserID      uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID   uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	ProductName string    `gorm:"not null"                               json:"product_name"`
	PriceCents  int64     `gorm:"not null"                               json:"price_cents"`
	Quantity    uint      `gorm:"default:1;check:quantity>0"             json:"quantity"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

const OrderStatusNew = "new"

type Order struct {
	ID     uuid.UUID `gorm:"primaryKey"                                     json:"id"`
	UserID uuid.UUID `gorm:"index;uniqueIndex:idx_user_idem_key;not null"   json:"user_id"`
	// Rows without a client key keep NULL here, which never collides; the
	// composite index only dedupes retried submissions per user.
	IdempotencyKey  *string   `gorm:"uniqueIndex:idx_user_idem_key" json:"-"`
	TotalCents      int64     `gorm:"not null"                      json:"total_cents"`
	Status          string    `gorm:"not null"                      json:"status"`
	ShippingAddress string    `gorm:"not null"                      json:"shipping_address"`
	PaymentMethod   string    `gorm:"not null"                      json:"payment_method"`
	CreatedAt       time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID             uuid.UUID `gorm:"primaryKey"      json:"id"`
	OrderID        uuid.UUID `gorm:"index;not null"  json:"order_id"`
	ProductID      uuid.UUID `gorm:"not null"        json:"product_id"`
	ProductName    string    `gorm:"not null"        json:"product_name"`
	PriceCents     int64     `gorm:"not null"        json:"price_cents"`
	Quantity       uint      `gorm:"check:quantity>0" json:"quantity"`
	LineTotalCents int64     `gorm:"not null"        json:"line_total_cents"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"primaryKey"       json:"id"`
	Token     string    `gorm:"unique;not null"  json:"-"`
	JTI       string    `gorm:"index;not null"   json:"jti"`
	UserID    uuid.UUID `gorm:"index;not null"   json:"user_id"`
	ExpiresAt int64     `gorm:"not null"         json:"expires_at"`
	Revoked   bool      `gorm:"default:false"    json:"revoked"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All returns every model automigrated at startup and in tests.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&RefreshToken{},
	}
}
