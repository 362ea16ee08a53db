package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays values from the environment. DATABASE_URL and JWT_SECRET
// are honoured for compatibility with common deployment setups; the
// BAILBRIDGE_ prefixed names win when both are set. Unparsable values panic.
//
//	BAILBRIDGE_HTTP_ADDR
//	BAILBRIDGE_DATABASE_DSN (or DATABASE_URL)
//	BAILBRIDGE_SECRET_KEY (or JWT_SECRET)
//	BAILBRIDGE_TOKEN_VALIDITY   duration, e.g. "24h"
//	BAILBRIDGE_CORS_ORIGIN
//	BAILBRIDGE_LOG_LEVEL
//	BAILBRIDGE_IN_MEMORY        bool
//	BAILBRIDGE_SHUTDOWN_TIMEOUT duration
func parseEnv(config *Config, lookup func(string) (string, bool)) {

	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
			}
		}
	}

	dur := func(dst *time.Duration, key string) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			panic(fmt.Sprintf("invalid %s %q", key, v))
		}
		*dst = d
	}

	str(&config.HTTPAddr, "BAILBRIDGE_HTTP_ADDR")
	str(&config.DatabaseDSN, "DATABASE_URL", "BAILBRIDGE_DATABASE_DSN")
	str(&config.SecretKey, "JWT_SECRET", "BAILBRIDGE_SECRET_KEY")
	str(&config.CORSOrigin, "BAILBRIDGE_CORS_ORIGIN")
	str(&config.LogLevel, "BAILBRIDGE_LOG_LEVEL")

	dur(&config.TokenValidity, "BAILBRIDGE_TOKEN_VALIDITY")
	dur(&config.ShutdownTimeout, "BAILBRIDGE_SHUTDOWN_TIMEOUT")

	if v, ok := lookup("BAILBRIDGE_IN_MEMORY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Sprintf("invalid BAILBRIDGE_IN_MEMORY %q", v))
		}
		config.UseInMemoryStore = b
	}
}
