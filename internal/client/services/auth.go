package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/client"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/models"
	"github.com/dmitrijs2005/hackorsnooze/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/hackorsnooze/internal/logging"
)

// RestoreStatus is the outcome of restoring a remembered session.
type RestoreStatus int

const (
	RestoreUnauthenticated RestoreStatus = iota
	RestoreAuthenticated
)

func (s RestoreStatus) String() string {
	switch s {
	case RestoreAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// RestoreResult carries the user when Status is RestoreAuthenticated.
type RestoreResult struct {
	Status RestoreStatus
	User   *models.User
}

// AuthService creates, opens and restores user sessions.
//
// Contract:
//   - Signup/Login: one remote call; a User with the returned token on
//     success, the wrapped remote error otherwise.
//   - Reauthenticate: rebuilds the User from stored credentials. The remote
//     is always asked; a token it rejects yields RestoreUnauthenticated and
//     no error, transport and server failures are returned as errors.
type AuthService interface {
	Signup(ctx context.Context, username string, password []byte, name string) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Reauthenticate(ctx context.Context, creds credentials.Credentials) (RestoreResult, error)
}

type authService struct {
	client client.Client
	log    logging.Logger
}

func NewAuthService(c client.Client, log logging.Logger) AuthService {
	return &authService{client: c, log: log}
}

func (a *authService) Signup(ctx context.Context, username string, password []byte, name string) (*models.User, error) {
	resp, err := a.client.Signup(ctx, username, password, name)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	a.log.Info(ctx, "signed up", "username", resp.User.Username)
	return models.NewUser(resp.User.UserData(), resp.Token), nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	a.log.Info(ctx, "logged in", "username", resp.User.Username)
	return models.NewUser(resp.User.UserData(), resp.Token), nil
}

func (a *authService) Reauthenticate(ctx context.Context, creds credentials.Credentials) (RestoreResult, error) {
	log := a.log.With("username", creds.Username)

	// The token is opaque to us; the claim is only read for diagnostics.
	if claimed, err := client.TokenUsername(creds.Token); err != nil {
		log.Debug(ctx, "stored token has no readable username claim", "error", err)
	} else if claimed != creds.Username {
		log.Debug(ctx, "stored token names another user", "claimed", claimed)
	}

	profile, err := a.client.GetUser(ctx, creds.Token, creds.Username)
	if client.IsCredentialRejection(err) {
		log.Info(ctx, "remembered session rejected", "error", err)
		return RestoreResult{Status: RestoreUnauthenticated}, nil
	}
	if err != nil {
		return RestoreResult{}, fmt.Errorf("reauthenticate: %w", err)
	}

	return RestoreResult{
		Status: RestoreAuthenticated,
		User:   models.NewUser(profile.UserData(), creds.Token),
	}, nil
}
