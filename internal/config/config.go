// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App holds all runtime settings.
type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Storage: "sqlite" or "memory".
	Storage string `envconfig:"STORAGE" default:"sqlite"`
	DBPath  string `envconfig:"DB_PATH" default:"./data/hbnb.db"`

	// Auth
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Optional bootstrap admin, created at startup if no account uses the
	// email yet.
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads the config from the environment.
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	if c.Storage != "sqlite" && c.Storage != "memory" {
		return App{}, fmt.Errorf("unknown STORAGE %q (want sqlite or memory)", c.Storage)
	}
	return c, nil
}
