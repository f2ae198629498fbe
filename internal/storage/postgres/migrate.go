package postgres

import (
	"embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations is replaced in tests.
var runMigrations = applyMigrations

func applyMigrations(cfg *pgxpool.Config) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrationURL(cfg))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// migrationURL rebuilds the pool DSN for the pgx5 migrate driver so
// key=value connection strings work as well as URLs.
func migrationURL(cfg *pgxpool.Config) string {
	cc := cfg.ConnConfig
	u := url.URL{
		Scheme: "pgx5",
		Host:   net.JoinHostPort(cc.Host, strconv.Itoa(int(cc.Port))),
		Path:   "/" + cc.Database,
	}
	if cc.User != "" {
		if cc.Password != "" {
			u.User = url.UserPassword(cc.User, cc.Password)
		} else {
			u.User = url.User(cc.User)
		}
	}
	q := url.Values{}
	if cc.TLSConfig == nil {
		q.Set("sslmode", "disable")
	} else {
		q.Set("sslmode", "require")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
