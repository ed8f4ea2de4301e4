package credentials

import "context"

const (
	KeyToken    = "token"
	KeyUsername = "username"
)

// Credentials is the persisted pair. Both values are set or neither is.
type Credentials struct {
	Token    string
	Username string
}

// Store is the session storage used by the services.
type Store interface {
	// Load reports ok=false when either value is missing.
	Load(ctx context.Context) (creds Credentials, ok bool, err error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
