package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Lookup resolves a product id to its current price. The boolean is false when
// no product exists; the error is only for infrastructure failures.
type Lookup interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, bool, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// every new connection to ":memory:" would be a fresh empty database
	db.SetMaxOpenConns(1)

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (domain.Product, bool, error) {
	query := `
		SELECT id, name, price
		FROM products
		WHERE id = $1
	`

	var (
		p     domain.Product
		price string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("failed to query product %d: %w", id, err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("product %d has malformed price %q: %w", id, price, err)
	}
	return p, true, nil
}

// SetPrice is used by catalog maintenance and tests; checkout never writes prices.
func (r *Repository) SetPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update price of product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
