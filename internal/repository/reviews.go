package repository

import (
	"context"
)

const getReviewByUserAndProduct = `
SELECT id, user_id, product_id, comment, rating, created_at
FROM reviews
WHERE user_id = $1 AND product_id = $2
`

func (q *Queries) GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (Review, error) {
	var r Review
	err := q.db.QueryRow(ctx, getReviewByUserAndProduct, userID, productID).
		Scan(&r.ID, &r.UserID, &r.ProductID, &r.Comment, &r.Rating, &r.CreatedAt)
	return r, err
}

// CreateReviewParams carries the column values for a new review row.
type CreateReviewParams struct {
	UserID    int64
	ProductID int64
	Comment   string
	Rating    int32
}

const createReview = `
INSERT INTO reviews (user_id, product_id, comment, rating)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, product_id, comment, rating, created_at
`

func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error) {
	var r Review
	err := q.db.QueryRow(ctx, createReview, arg.UserID, arg.ProductID, arg.Comment, arg.Rating).
		Scan(&r.ID, &r.UserID, &r.ProductID, &r.Comment, &r.Rating, &r.CreatedAt)
	return r, err
}

const createReviewImage = `
INSERT INTO review_images (review_id, url)
VALUES ($1, $2)
RETURNING id, review_id, url
`

func (q *Queries) CreateReviewImage(ctx context.Context, reviewID int64, url string) (ReviewImage, error) {
	var img ReviewImage
	err := q.db.QueryRow(ctx, createReviewImage, reviewID, url).
		Scan(&img.ID, &img.ReviewID, &img.URL)
	return img, err
}

const listReviewImages = `
SELECT id, review_id, url
FROM review_images
WHERE review_id = $1
ORDER BY id
`

func (q *Queries) ListReviewImages(ctx context.Context, reviewID int64) ([]ReviewImage, error) {
	rows, err := q.db.Query(ctx, listReviewImages, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ReviewImage
	for rows.Next() {
		var img ReviewImage
		if err := rows.Scan(&img.ID, &img.ReviewID, &img.URL); err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

const listReviewedProductIDs = `
SELECT product_id
FROM reviews
WHERE user_id = $1
`

func (q *Queries) ListReviewedProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := q.db.Query(ctx, listReviewedProductIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const listReceivedProducts = `
SELECT oi.product_id, p.name,
       (SELECT pi.url FROM product_images pi
        WHERE pi.product_id = oi.product_id
        ORDER BY pi.position, pi.id LIMIT 1) AS image_url
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
JOIN products p ON p.id = oi.product_id
WHERE o.user_id = $1 AND o.status = $2
ORDER BY o.created_at DESC, oi.id
`

// ListReceivedProducts returns one row per order line in orders with the
// given status, newest order first. Callers deduplicate by product.
func (q *Queries) ListReceivedProducts(ctx context.Context, userID int64, status string) ([]ReceivedProduct, error) {
	rows, err := q.db.Query(ctx, listReceivedProducts, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ReceivedProduct
	for rows.Next() {
		var rp ReceivedProduct
		if err := rows.Scan(&rp.ProductID, &rp.Name, &rp.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, rp)
	}
	return items, rows.Err()
}
