package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"boutique-tailoring/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DSN builds the driver connection string. DATE and DECIMAL columns are
// scanned as text, so parseTime stays off.
func DSN(cfg config.DBConfig, multiStatements bool) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = cfg.Host + ":" + strconv.Itoa(cfg.Port)
	c.DBName = cfg.Database
	c.ParseTime = false
	c.ClientFoundRows = true
	c.MultiStatements = multiStatements
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// Connect opens the MySQL pool and verifies it is reachable.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", DSN(cfg, false))
	if err != nil {
		return nil, fmt.Errorf("connect mysql %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}
