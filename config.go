package restmux

import "os"

// Config carries the application settings the document generator consults.
// ServerName feeds the host field; the mask pair controls whether and how
// the optional fields-mask header is documented.
type Config struct {
	ServerName  string
	MaskSwagger bool
	MaskHeader  string
}

func DefaultConfig() Config {
	return Config{
		MaskSwagger: true,
		MaskHeader:  "X-Fields",
	}
}

// ConfigFromEnv reads RESTMUX_SERVER_NAME, RESTMUX_MASK_SWAGGER and
// RESTMUX_MASK_HEADER, falling back to defaults. Pair with godotenv in
// mains that keep settings in a .env file.
func ConfigFromEnv() Config {
	c := DefaultConfig()
	c.ServerName = getEnv("RESTMUX_SERVER_NAME", c.ServerName)
	c.MaskSwagger = getEnv("RESTMUX_MASK_SWAGGER", "true") != "false"
	c.MaskHeader = getEnv("RESTMUX_MASK_HEADER", c.MaskHeader)
	return c
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
