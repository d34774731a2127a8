package repository

import (
	"context"
	"time"
)

// CreatePromotionParams carries the column values for a promotion window.
type CreatePromotionParams struct {
	ProductID int64
	Discount  float64
	StartsAt  time.Time
	EndsAt    time.Time
}

const createPromotion = `
INSERT INTO promotions (product_id, discount, starts_at, ends_at)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, discount, starts_at, ends_at, created_at
`

func (q *Queries) CreatePromotion(ctx context.Context, arg CreatePromotionParams) (Promotion, error) {
	var p Promotion
	err := q.db.QueryRow(ctx, createPromotion, arg.ProductID, arg.Discount, arg.StartsAt, arg.EndsAt).
		Scan(&p.ID, &p.ProductID, &p.Discount, &p.StartsAt, &p.EndsAt, &p.CreatedAt)
	return p, err
}

const listActivePromotions = `
SELECT id, product_id, discount, starts_at, ends_at, created_at
FROM promotions
WHERE starts_at <= now() AND ends_at >= now()
ORDER BY product_id, starts_at DESC
`

// ListActivePromotions returns promotions whose window covers now,
// newest window first per product.
func (q *Queries) ListActivePromotions(ctx context.Context) ([]Promotion, error) {
	rows, err := q.db.Query(ctx, listActivePromotions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Promotion
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Discount, &p.StartsAt, &p.EndsAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
