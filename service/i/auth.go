package i

import (
	"github.com/beka-birhanu/vinom-maze/identity"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	// Register creates a new player account.
	Register(username, password string) error

	// SignIn checks the credentials and returns the player with a signed access token.
	SignIn(username, password string) (*identity.User, string, error)
}
