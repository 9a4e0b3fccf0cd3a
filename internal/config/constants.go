package config

import "time"

const (
	// Home screen
	FeaturedProducts = 3

	// Session timeline
	DefaultMessageLimit = 50
	DefaultOrderLimit   = 20

	// HTTP server
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 15 * time.Second

	// Request body limit for JSON endpoints
	MaxJSONBodyBytes = 1 << 20
)
