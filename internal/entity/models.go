package entity

import (
	"time"
)

// Category is the product category taxonomy used by the store.
type Category string

const (
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

// Valid reports whether the category is one the store knows about.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

// PhotoCount is the number of photo references every product carries.
const PhotoCount = 4

// Product represents a product in the store as reported by the server.
type Product struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Color              string   `json:"color,omitempty"`
	Fabric             string   `json:"fabric,omitempty"`
	Rating             float64  `json:"rating"`
	Category           Category `json:"category"`
	Tags               string   `json:"tags,omitempty"`
	MRP                float64  `json:"mrp"`
	DiscountPercentage float64  `json:"discount_percentage"`
	DiscountPrice      float64  `json:"discount_price"`
	Photos             []string `json:"photos"`
	Stock              int      `json:"stock"`
}

// OrderItem is a line item within an order. Price is the unit price at the
// time of purchase; it never tracks later product price changes.
type OrderItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Product   Product `json:"product"`
}

// Order represents a customer order. The server owns it; the client only
// renders this view.
type Order struct {
	ID              int64       `json:"id"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

// User is the authenticated user's profile.
type User struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// Token is the login response carrying the bearer credential.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IsAdmin     bool   `json:"is_admin"`
}

// CheckoutItem is one normalized line of a checkout submission.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest is the payload for order creation.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items"`
	ShippingAddress string         `json:"shipping_address"`
}

// BulkDiscountRequest applies a discount percentage to every product in a category.
type BulkDiscountRequest struct {
	Category           Category `json:"category"`
	DiscountPercentage float64  `json:"discount_percentage"`
}

// RevenueStats is the admin dashboard aggregate.
type RevenueStats struct {
	TotalSales   float64        `json:"total_sales"`
	OrderCount   int            `json:"order_count"`
	StatusCounts map[string]int `json:"status_counts"`
}
