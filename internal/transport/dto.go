package transport

import (
	"github.com/google/uuid"

	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/service"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func NewAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     res.AccessToken,
		TokenType: "Bearer",
		Username:  res.User.Username,
		Email:     res.User.Email,
		FirstName: res.User.FirstName,
		LastName:  res.User.LastName,
		IsAdmin:   res.IsAdmin,
	}
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse reports price and subtotal in cents; the subtotal is
// always price x quantity computed at response time.
type CartItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	PriceCents  int64     `json:"price"`
	Quantity    uint      `json:"quantity"`
	Subtotal    int64     `json:"subtotal"`
}

func NewCartItemResponse(item *models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		PriceCents:  item.PriceCents,
		Quantity:    item.Quantity,
		Subtotal:    item.PriceCents * int64(item.Quantity),
	}
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

func NewCartResponse(view *service.CartView) CartResponse {
	resp := CartResponse{
		Items: make([]CartItemResponse, 0, len(view.Lines)),
		Total: view.TotalCents,
	}
	for i := range view.Lines {
		resp.Items = append(resp.Items, NewCartItemResponse(&view.Lines[i].Item))
	}
	return resp
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	PriceCents  int64     `json:"price"`
	Quantity    uint      `json:"quantity"`
	LineTotal   int64     `json:"lineTotal"`
}

type OrderResponse struct {
	OrderID         uuid.UUID           `json:"orderId"`
	Total           int64               `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Items           []OrderItemResponse `json:"items"`
}

func NewOrderResponse(placed *service.PlacedOrder) OrderResponse {
	resp := OrderResponse{
		OrderID:         placed.Order.ID,
		Total:           placed.Order.TotalCents,
		Status:          placed.Order.Status,
		ShippingAddress: placed.Order.ShippingAddress,
		PaymentMethod:   placed.Order.PaymentMethod,
		Items:           make([]OrderItemResponse, 0, len(placed.Items)),
	}
	for _, it := range placed.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PriceCents:  it.PriceCents,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotalCents,
		})
	}
	return resp
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Count       uint   `json:"count"`
}
