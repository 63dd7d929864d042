package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username     string `env:"POSTGRES_USER"`
	Password     string `env:"POSTGRES_PASSWORD"`
	PasswordFile string `env:"POSTGRES_PASSWORD_FILE,file"`
	Host         string `env:"POSTGRES_HOST"`
	Port         uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	DBName       string `env:"POSTGRES_DB"`
	SSLMode      string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

type databaseEnv struct {
	URL string `env:"DATABASE_URL"`
	Database
}

var ErrNoDatabase = errors.New("no DATABASE_URL or POSTGRES_* env variables set")

func NewDatabase() (*Database, error) {
	return newDatabase(nil)
}

func newDatabase(environ map[string]string) (*Database, error) {
	var c Database
	if err := parse(&c, environ); err != nil {
		return nil, err
	}
	if c.Password == "" {
		c.Password = strings.TrimSpace(c.PasswordFile)
	}
	c.PasswordFile = ""

	var missing []string
	if c.Username == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE")
	}
	if c.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrNoDatabase, strings.Join(missing, ", "))
	}

	return &c, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

func (c Database) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func dbURL(environ map[string]string) (string, error) {
	var e databaseEnv
	if err := parse(&e, environ); err != nil {
		return "", err
	}
	if e.URL != "" {
		return e.URL, nil
	}
	cfg, err := newDatabase(environ)
	if err != nil {
		return "", err
	}
	return cfg.URL(), nil
}

// DbURL prefers DATABASE_URL and falls back to the POSTGRES_* variables.
func DbURL() (string, error) {
	return dbURL(nil)
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	url, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(url)
}
