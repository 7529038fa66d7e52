package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const accessTokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned by SignIn for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers players and issues their access tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the given repository and tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service needs a user repository and a tokenizer")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

// Register creates a player account.
func (a *Auth) Register(username, password string) error {
	userConfig := identity.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := identity.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

// SignIn checks the credentials and returns the player with an access token.
func (a *Auth) SignIn(username, password string) (*identity.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]any{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, accessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
