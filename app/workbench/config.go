package workbench

import (
	"github.com/querypad/querypad/core/cookie"
	"github.com/querypad/querypad/core/server"
	"github.com/querypad/querypad/core/session"
	"github.com/querypad/querypad/core/startup"
	"github.com/querypad/querypad/integration/database/pg"
	"github.com/querypad/querypad/integration/database/redis"
)

// Config aggregates every subsystem's configuration. All values come from
// the environment (or a local .env file in development).
type Config struct {
	DB      pg.Config
	Redis   redis.Config
	Session session.Config
	Cookie  cookie.Config
	Server  server.Config
	Startup startup.Config

	AppName   string `env:"APP_NAME" envDefault:"querypad"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// IsDevelopment reports whether the app runs in a local development
// environment, which relaxes the Secure cookie requirement.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
