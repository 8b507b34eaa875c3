package cookie

// Config holds session cookie settings.
type Config struct {
	// Name is the session cookie name.
	Name string `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	// Secure controls the Secure attribute. Disable only for local
	// development over plain HTTP.
	Secure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}
