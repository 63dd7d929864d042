package config

import (
	"strings"
	"time"
)

type App struct {
	BasePath    string        `env:"APP_BASE_PATH"`
	Port        string        `env:"APP_PORT" envDefault:"8080"`
	Development bool          `env:"DEVELOPMENT"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	BenchLimit  int           `env:"BENCH_MAX_ITERATIONS" envDefault:"10000"`
	MaxArea     int           `env:"BOARD_MAX_AREA" envDefault:"10000"`
	CorsOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

func NewApp() (*App, error) {
	return newApp(nil)
}

func newApp(environ map[string]string) (*App, error) {
	var a App
	if err := parse(&a, environ); err != nil {
		return nil, err
	}
	return &a, nil
}

// Addr is the listen address built from APP_PORT, which may be given with or
// without the leading colon.
func (a App) Addr() string {
	if strings.Contains(a.Port, ":") {
		return a.Port
	}
	return ":" + a.Port
}
