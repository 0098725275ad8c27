package tracker

import (
	"time"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database"
)

type Config struct {
	// Debug logging, including every backend request
	Debug bool `envconfig:"ACHIEVEMENTS_DEBUG" default:"false"`

	// Number of items in the session cache
	CacheSize int `envconfig:"ACHIEVEMENTS_CACHE_SIZE" default:"16"`

	// Delay between deleting one's own account and the forced logout
	LogoutDelay time.Duration `envconfig:"ACHIEVEMENTS_LOGOUT_DELAY" default:"2s"`

	API api.Config
	DB  database.Config
}
