package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MRP         decimal.Decimal `json:"mrp"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
}

// CartLineItem is one distinct product entry in a cart.
type CartLineItem struct {
	ID       string          `json:"id"`
	ImageURL string          `json:"imageUrl"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineItemFromProduct builds the cart entry added when a product is put in the cart.
func LineItemFromProduct(p Product) CartLineItem {
	return CartLineItem{
		ID:       p.ID,
		ImageURL: p.ImageURL,
		Title:    p.Title,
		Price:    p.Price,
		Quantity: 1,
	}
}

// OrderProduct is a purchased line within an order. Price is the line total.
type OrderProduct struct {
	ID       string          `json:"id"`
	Image    string          `json:"image"`
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Customer holds the contact and shipping details captured at checkout.
type Customer struct {
	Name       string `json:"name"`
	LastName   string `json:"lastname"`
	Email      string `json:"email"`
	PhoneNo    string `json:"phoneno"`
	Address    string `json:"address"`
	Town       string `json:"town"`
	State      string `json:"state"`
	PostalCode string `json:"postalcode"`
	Country    string `json:"country"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + c.LastName
}

const (
	OrderStatusPlaced    = "placed"
	OrderStatusConfirmed = "confirmed"
)

// Order represents a customer order.
type Order struct {
	ID          string          `json:"orderId"`
	UserID      string          `json:"userId"`
	Products    []OrderProduct  `json:"products"`
	PaymentID   string          `json:"paymentId"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	Customer    Customer        `json:"user"`
	Status      string          `json:"status"` // "placed", "confirmed"
	OrderedAt   time.Time       `json:"orderedAt"`
	OrderedTime string          `json:"orderedTime"`
}

// User is a registered storefront customer.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// --- Commands ---

// PlaceOrder is a command to persist a paid order.
type PlaceOrder struct {
	Order Order `json:"order"`
}

// --- Events ---

// OrderPlaced is emitted when a paid order has been recorded.
type OrderPlaced struct {
	Order    Order     `json:"order"`
	PlacedAt time.Time `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }

// OrderConfirmed is emitted once the placed order has been processed downstream.
type OrderConfirmed struct {
	OrderID     string    `json:"order_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func (e OrderConfirmed) EventType() string { return "OrderConfirmed" }

// OrderDeleted is emitted when an admin removes an order.
type OrderDeleted struct {
	OrderID   string    `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e OrderDeleted) EventType() string { return "OrderDeleted" }
