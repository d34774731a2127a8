package repository

import "time"

// User is an account row. Passwords are managed by the upstream identity
// service; this table only anchors foreign keys and display data.
type User struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}

// Product is a catalog row.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Flavor      string
	SizeML      int32
	Stock       int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage is a gallery image for a product.
type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	Position  int32
}

// CartItem is a persisted cart line.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int32
	CreatedAt time.Time
}

// CartItemDetail joins a cart line with its product's current catalog data.
type CartItemDetail struct {
	ID        int64
	ProductID int64
	Name      string
	Price     float64
	SizeML    int32
	Stock     int32
	Quantity  int32
}

// Order is a persisted order. Total is the captured payment amount, not
// the quoted total.
type Order struct {
	ID             int64
	UserID         int64
	GatewayOrderID string
	Status         string
	Total          float64
	CreatedAt      time.Time
}

// OrderItem is one order line, priced at capture time from the catalog.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice float64
}

// Sale is a denormalized per-line sales record for reporting.
type Sale struct {
	ID        int64
	ProductID int64
	UserID    int64
	Quantity  int32
	UnitPrice float64
	LineTotal float64
	CreatedAt time.Time
}

// Review is a product review, at most one per (user, product).
type Review struct {
	ID        int64
	UserID    int64
	ProductID int64
	Comment   string
	Rating    int32
	CreatedAt time.Time
}

// ReviewImage is an image attached to a review.
type ReviewImage struct {
	ID       int64
	ReviewID int64
	URL      string
}

// Promotion is a percentage discount active over a date window.
type Promotion struct {
	ID        int64
	ProductID int64
	Discount  float64
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
}

// ReceivedProduct is a product from an order delivered to the customer,
// with the product's primary image when one exists. Rows are ordered by
// delivery recency, one row per order line.
type ReceivedProduct struct {
	ProductID int64
	Name      string
	ImageURL  *string
}
