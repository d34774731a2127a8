package repository

import (
	"context"
)

const listProducts = `
SELECT id, name, description, price, flavor, size_ml, stock, created_at, updated_at
FROM products
ORDER BY id
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getProduct = `
SELECT id, name, description, price, flavor, size_ml, stock, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, getProduct, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listProductsByIDs = `
SELECT id, name, description, price, flavor, size_ml, stock, created_at, updated_at
FROM products
WHERE id = ANY($1::bigint[])
ORDER BY id
`

func (q *Queries) ListProductsByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProductsByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// CreateProductParams carries the column values for a new product row.
type CreateProductParams struct {
	Name        string
	Description string
	Price       float64
	Flavor      string
	SizeML      int32
	Stock       int32
}

const createProduct = `
INSERT INTO products (name, description, price, flavor, size_ml, stock)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, description, price, flavor, size_ml, stock, created_at, updated_at
`

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, createProduct,
		arg.Name, arg.Description, arg.Price, arg.Flavor, arg.SizeML, arg.Stock).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// UpdateProductParams carries the full column set for an update; callers
// merge unchanged fields from the current row first.
type UpdateProductParams struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Flavor      string
	SizeML      int32
	Stock       int32
}

const updateProduct = `
UPDATE products
SET name = $2, description = $3, price = $4, flavor = $5, size_ml = $6, stock = $7, updated_at = now()
WHERE id = $1
RETURNING id, name, description, price, flavor, size_ml, stock, created_at, updated_at
`

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, updateProduct,
		arg.ID, arg.Name, arg.Description, arg.Price, arg.Flavor, arg.SizeML, arg.Stock).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const deleteProduct = `
DELETE FROM products WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listLowStockProducts = `
SELECT id, name, description, price, flavor, size_ml, stock, created_at, updated_at
FROM products
WHERE stock <= $1
ORDER BY stock ASC, id
`

func (q *Queries) ListLowStockProducts(ctx context.Context, threshold int32) ([]Product, error) {
	rows, err := q.db.Query(ctx, listLowStockProducts, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Flavor, &p.SizeML, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const decrementStock = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
`

// DecrementStock conditionally reduces stock, refusing to go negative.
// Returns the number of rows updated; 0 means insufficient stock.
func (q *Queries) DecrementStock(ctx context.Context, productID int64, quantity int32) (int64, error) {
	tag, err := q.db.Exec(ctx, decrementStock, productID, quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const createProductImage = `
INSERT INTO product_images (product_id, url, position)
VALUES ($1, $2, $3)
RETURNING id, product_id, url, position
`

func (q *Queries) CreateProductImage(ctx context.Context, productID int64, url string, position int32) (ProductImage, error) {
	var img ProductImage
	err := q.db.QueryRow(ctx, createProductImage, productID, url, position).
		Scan(&img.ID, &img.ProductID, &img.URL, &img.Position)
	return img, err
}

const listProductImages = `
SELECT id, product_id, url, position
FROM product_images
WHERE product_id = $1
ORDER BY position, id
`

func (q *Queries) ListProductImages(ctx context.Context, productID int64) ([]ProductImage, error) {
	rows, err := q.db.Query(ctx, listProductImages, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ProductImage
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}

const listImagesByProductIDs = `
SELECT id, product_id, url, position
FROM product_images
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id, position, id
`

func (q *Queries) ListImagesByProductIDs(ctx context.Context, ids []int64) ([]ProductImage, error) {
	rows, err := q.db.Query(ctx, listImagesByProductIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ProductImage
	for rows.Next() {
		var img ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	return items, rows.Err()
}
