package types

import "errors"

// Config holds backend selection and parameters for ItemStore.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Credentials is the single username/password pair the login endpoint
// accepts, together with the token it hands out on a match.
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Token    string `json:"token" yaml:"token"`
}

// Default credential values served when configuration leaves them unset.
const (
	DefaultUsername = "testuser"
	DefaultPassword = "password"
	DefaultToken    = "fake-jwt-token"
)

// DefaultCredentials returns the stock credential pair and token.
func DefaultCredentials() Credentials {
	return Credentials{
		Username: DefaultUsername,
		Password: DefaultPassword,
		Token:    DefaultToken,
	}
}
