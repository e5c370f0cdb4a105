package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

// PostgresStore implements catalog.Store on top of a products table with
// a BIGSERIAL primary key, so id assignment happens in the database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (ps *PostgresStore) Insert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	err := ps.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, category, expiry_date, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.Price, string(p.Category), p.ExpiryDate, p.Quantity).Scan(&p.ID)
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (ps *PostgresStore) FindByID(ctx context.Context, id int64) (catalog.Product, bool, error) {
	var p catalog.Product
	var category string
	err := ps.db.QueryRowContext(ctx, `
		SELECT id, name, price, category, expiry_date, quantity
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &category, &p.ExpiryDate, &p.Quantity)
	if err == sql.ErrNoRows {
		return catalog.Product{}, false, nil
	}
	if err != nil {
		return catalog.Product{}, false, err
	}
	p.Category = catalog.Category(category)
	return p, true, nil
}

func (ps *PostgresStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, name, price, category, expiry_date, quantity
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (ps *PostgresStore) FindByCategory(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, name, price, category, expiry_date, quantity
		FROM products WHERE category = $1 ORDER BY id
	`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (ps *PostgresStore) Save(ctx context.Context, p catalog.Product) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, category, expiry_date, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			expiry_date = EXCLUDED.expiry_date,
			quantity = EXCLUDED.quantity
	`, p.ID, p.Name, p.Price, string(p.Category), p.ExpiryDate, p.Quantity)
	return err
}

func (ps *PostgresStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanProducts(rows *sql.Rows) ([]catalog.Product, error) {
	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		var category string
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &category, &p.ExpiryDate, &p.Quantity); err != nil {
			return nil, err
		}
		p.Category = catalog.Category(category)
		products = append(products, p)
	}
	return products, rows.Err()
}

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
