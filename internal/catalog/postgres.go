package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store with raw parameterized SQL
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `id, name, description, brand, category_id, price, count_in_stock, image, created_at, updated_at`

// ListProducts applies the optional filters additively with numbered
// placeholders.
func (s *PostgresStore) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any

	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.Brand != "" {
		args = append(args, f.Brand)
		query += fmt.Sprintf(" AND brand = $%d", len(args))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p           Product
		description sql.NullString
		brand       sql.NullString
		categoryID  sql.NullString
		image       sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &brand, &categoryID,
		&p.Price, &p.CountInStock, &image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Brand = brand.String
	p.CategoryID = categoryID.String
	p.Image = image.String
	return &p, nil
}

// GetProduct returns one product with its reviews attached, newest first
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.rating, r.comment, r.created_at, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 AND r.status = 'approved'
		ORDER BY r.created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r ProductReview
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UserName); err != nil {
			return nil, err
		}
		p.Reviews = append(p.Reviews, r)
	}
	return p, rows.Err()
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, brand, category_id, price, count_in_stock, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Description, p.Brand, nullable(p.CategoryID), p.Price, p.CountInStock, p.Image)
	return err
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, brand = $3, category_id = $4,
		    price = $5, count_in_stock = $6, image = $7, updated_at = now()
		WHERE id = $8`,
		p.Name, p.Description, p.Brand, nullable(p.CategoryID), p.Price, p.CountInStock, p.Image, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, user_id, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCategory(row rowScanner) (*Category, error) {
	var (
		c           Category
		description sql.NullString
		userID      sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &description, &userID, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Description = description.String
	c.UserID = userID.String
	return &c, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id string) (*Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, user_id, created_at FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, user_id)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Description, c.UserID)
	return err
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id, name, description string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, description = $2 WHERE id = $3`, name, description, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
