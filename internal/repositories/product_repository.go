package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tiendaBack/internal/models"
)

// ProductRepository stores the catalog in SQL. Queries are written with
// mysql-style placeholders, matching the default deployment; the pgx driver
// is supported through rebind.
type ProductRepository struct {
	DB     *sql.DB
	Driver string
}

func (r *ProductRepository) postgres() bool {
	return r.Driver == "pgx" || r.Driver == "postgres"
}

// rebind rewrites ?-placeholders to $n for the postgres driver.
func (r *ProductRepository) rebind(query string) string {
	if !r.postgres() {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (name, price, description, image, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`
	if r.postgres() {
		var id int
		err := r.DB.QueryRowContext(ctx, r.rebind(query)+" RETURNING id",
			p.Name, p.Price, p.Description, p.Image,
		).Scan(&id)
		if err != nil {
			return models.Product{}, err
		}
		return r.GetProductByID(ctx, id)
	}

	result, err := r.DB.ExecContext(ctx, query,
		p.Name, p.Price, p.Description, p.Image,
	)
	if err != nil {
		return models.Product{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}
	return r.GetProductByID(ctx, int(id))
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	query := `
		SELECT id, name, price, description, image, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	var p models.Product
	err := r.DB.QueryRowContext(ctx, r.rebind(query), id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	return p, nil
}

// GetProducts lists the catalog page the storefront renders its cards from.
// A non-empty search narrows by name.
func (r *ProductRepository) GetProducts(ctx context.Context, search string, limit, offset int) ([]models.Product, int, error) {
	var (
		products   []models.Product
		params     []interface{}
		conditions []string
	)

	baseQuery := `
		SELECT id, name, price, description, image, created_at, updated_at
		FROM products
	`

	if search != "" {
		conditions = append(conditions, "name LIKE ?")
		params = append(params, "%"+search+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	baseQuery += " ORDER BY created_at DESC"
	baseQuery += " LIMIT ? OFFSET ?"
	params = append(params, limit, offset)

	rows, err := r.DB.QueryContext(ctx, r.rebind(baseQuery), params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM products`
	var countParams []interface{}
	if search != "" {
		countQuery += " WHERE name LIKE ?"
		countParams = append(countParams, "%"+search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, r.rebind(countQuery), countParams...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		UPDATE products
		SET name = ?, price = ?, description = ?, image = ?, updated_at = ?
		WHERE id = ?
	`
	updatedAt := time.Now()
	p.UpdatedAt = &updatedAt
	result, err := r.DB.ExecContext(ctx, r.rebind(query),
		p.Name, p.Price, p.Description, p.Image, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Product{}, err
	}
	if rowsAffected == 0 {
		return models.Product{}, models.ErrProductNotFound
	}
	return r.GetProductByID(ctx, p.ID)
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, r.rebind(query), id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// ImagePaths returns every image reference in the catalog. The upload cleaner
// uses it to tell live files from orphans.
func (r *ProductRepository) ImagePaths(ctx context.Context) ([]string, error) {
	query := `SELECT image FROM products WHERE image <> ''`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
