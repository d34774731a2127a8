package repository

import (
	"context"
)

// CreateOrderParams carries the column values for a new order row.
type CreateOrderParams struct {
	UserID         int64
	GatewayOrderID string
	Status         string
	Total          float64
}

const createOrder = `
INSERT INTO orders (user_id, gateway_order_id, status, total)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, gateway_order_id, status, total, created_at
`

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, createOrder, arg.UserID, arg.GatewayOrderID, arg.Status, arg.Total).
		Scan(&o.ID, &o.UserID, &o.GatewayOrderID, &o.Status, &o.Total, &o.CreatedAt)
	return o, err
}

const getOrder = `
SELECT id, user_id, gateway_order_id, status, total, created_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrder, id).
		Scan(&o.ID, &o.UserID, &o.GatewayOrderID, &o.Status, &o.Total, &o.CreatedAt)
	return o, err
}

const getOrderByGatewayID = `
SELECT id, user_id, gateway_order_id, status, total, created_at
FROM orders
WHERE gateway_order_id = $1
`

// GetOrderByGatewayID looks up an order by its payment-gateway identifier.
// Used to detect replayed captures.
func (q *Queries) GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrderByGatewayID, gatewayOrderID).
		Scan(&o.ID, &o.UserID, &o.GatewayOrderID, &o.Status, &o.Total, &o.CreatedAt)
	return o, err
}

// CreateOrderItemParams carries the column values for one order line.
type CreateOrderItemParams struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice float64
}

const createOrderItem = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, product_id, quantity, unit_price
`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	var it OrderItem
	err := q.db.QueryRow(ctx, createOrderItem, arg.OrderID, arg.ProductID, arg.Quantity, arg.UnitPrice).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice)
	return it, err
}

const listOrderItems = `
SELECT id, order_id, product_id, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY id
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateSaleParams carries the column values for one sales record.
type CreateSaleParams struct {
	ProductID int64
	UserID    int64
	Quantity  int32
	UnitPrice float64
	LineTotal float64
}

const createSale = `
INSERT INTO sales (product_id, user_id, quantity, unit_price, line_total)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, product_id, user_id, quantity, unit_price, line_total, created_at
`

func (q *Queries) CreateSale(ctx context.Context, arg CreateSaleParams) (Sale, error) {
	var s Sale
	err := q.db.QueryRow(ctx, createSale, arg.ProductID, arg.UserID, arg.Quantity, arg.UnitPrice, arg.LineTotal).
		Scan(&s.ID, &s.ProductID, &s.UserID, &s.Quantity, &s.UnitPrice, &s.LineTotal, &s.CreatedAt)
	return s, err
}
