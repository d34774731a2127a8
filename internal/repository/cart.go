package repository

import (
	"context"
)

const listCartItems = `
SELECT c.id, c.product_id, p.name, p.price, p.size_ml, p.stock, c.quantity
FROM cart_items c
JOIN products p ON p.id = c.product_id
WHERE c.user_id = $1
ORDER BY c.created_at, c.id
`

func (q *Queries) ListCartItems(ctx context.Context, userID int64) ([]CartItemDetail, error) {
	rows, err := q.db.Query(ctx, listCartItems, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItemDetail
	for rows.Next() {
		var it CartItemDetail
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price, &it.SizeML, &it.Stock, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const upsertCartItem = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, user_id, product_id, quantity, created_at
`

func (q *Queries) UpsertCartItem(ctx context.Context, userID, productID int64, quantity int32) (CartItem, error) {
	var it CartItem
	err := q.db.QueryRow(ctx, upsertCartItem, userID, productID, quantity).
		Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt)
	return it, err
}

const setCartItemQuantity = `
UPDATE cart_items
SET quantity = $3
WHERE user_id = $1 AND product_id = $2
`

func (q *Queries) SetCartItemQuantity(ctx context.Context, userID, productID int64, quantity int32) (int64, error) {
	tag, err := q.db.Exec(ctx, setCartItemQuantity, userID, productID, quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItem = `
DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
`

func (q *Queries) DeleteCartItem(ctx context.Context, userID, productID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, userID, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItems = `
DELETE FROM cart_items WHERE user_id = $1
`

// DeleteCartItems clears the user's whole cart.
func (q *Queries) DeleteCartItems(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, deleteCartItems, userID)
	return err
}
