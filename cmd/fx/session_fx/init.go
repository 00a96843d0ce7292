package session_fx

import (
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	"wanderai/pkg/memcache"
)

var Module = fx.Provide(ProvideSessionStore)

const defaultSessionTTLMinutes = 60

// ProvideSessionStore creates the in-memory session store holding wizard
// drafts and run state.
func ProvideSessionStore() memcache.SessionStoreInterface {
	ttlMinutes := defaultSessionTTLMinutes
	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Printf("Ignoring invalid SESSION_TTL_MINUTES=%q, using %d", raw, defaultSessionTTLMinutes)
		} else {
			ttlMinutes = parsed
		}
	}
	return memcache.NewSessionStore(time.Duration(ttlMinutes) * time.Minute)
}
