package palace

import (
	"strings"

	"github.com/joeshaw/envdecode"
)

// Config is the process configuration, decoded from the environment
type Config struct {
	Addr     string `env:"ADDR,default=:8000"`
	RedisURL string `env:"REDIS_URL"`
	Players  string `env:"PLAYERS,default=Jule,Finn"`
}

// ConfigFromEnv decodes a Config from environment variables
func ConfigFromEnv() (Config, error) {
	var c Config
	err := envdecode.Decode(&c)
	return c, err
}

// PlayerNames returns the recognised score-ledger identities
func (c Config) PlayerNames() []string {
	names := []string{}
	for _, name := range strings.Split(c.Players, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
