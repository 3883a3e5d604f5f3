package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Atex/internal/gas"

	_ "github.com/lib/pq"
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

// Open connects to Postgres, forcing sslmode=require unless the URL chooses one.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	connStr = withSSLMode(connStr)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("configure database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns id 0 and an empty hash when the login is unknown.
func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

// GasRepository reads the gas database table gases(isim, grup, lel).
type GasRepository struct {
	db *sql.DB
}

func NewGasRepository(db *sql.DB) *GasRepository {
	return &GasRepository{db: db}
}

func (r *GasRepository) ListGases(ctx context.Context) ([]gas.Property, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT isim, grup, lel FROM gases ORDER BY isim")
	if err != nil {
		return nil, fmt.Errorf("query gases: %w", err)
	}
	defer rows.Close()

	var props []gas.Property
	for rows.Next() {
		var name, group string
		var lel float64
		if err := rows.Scan(&name, &group, &lel); err != nil {
			return nil, fmt.Errorf("scan gas: %w", err)
		}
		g, err := gas.ParseGroup(group)
		if err != nil {
			return nil, fmt.Errorf("gas %q: %w", name, err)
		}
		props = append(props, gas.Property{Name: strings.TrimSpace(name), Group: g, LEL: lel})
	}
	return props, rows.Err()
}
