// Package service contains the auth and favourites use-cases over the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/limiter"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/state"
)

// AuthService defines the login flow and local registration.
type AuthService interface {
	// Login checks credentials against the demo API and opens a session.
	Login(ctx context.Context, username, password string) (model.User, error)
	// Logout resets the session.
	Logout()
	// Register validates the form and returns a local id. Nothing is sent.
	Register(ctx context.Context, in model.RegisterInput) (userID string, err error)
	// Session returns the current auth slice.
	Session() model.AuthSession
	// TokenExpiry decodes the session token's exp claim without verifying it.
	TokenExpiry() (time.Time, bool)
}

// LoginClient is the upstream login call.
type LoginClient interface {
	Login(ctx context.Context, username, password string, expiresInMins int) (model.LoginResponse, error)
}

// Store is the part of state.Store the services use.
type Store interface {
	Dispatch(a state.Action) state.RootState
	State() state.RootState
}

type AuthServiceImpl struct {
	client        LoginClient
	store         Store
	lim           limiter.Limiter
	validate      *validator.Validate
	expiresInMins int
	log           *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(client LoginClient, store Store, lim limiter.Limiter, expiresInMins int, log *zap.Logger) *AuthServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthServiceImpl{
		client:        client,
		store:         store,
		lim:           lim,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		expiresInMins: expiresInMins,
		log:           log.Named("auth"),
	}
}

// Login authenticates with rate limiting by username.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (model.User, error) {
	creds := model.Credentials{Username: strings.TrimSpace(username), Password: strings.TrimSpace(password)}
	if err := s.validate.Struct(creds); err != nil {
		return model.User{}, fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}
	// The password is sent as typed; only blankness is judged on the trimmed value.
	creds.Password = password

	allowed, retry, err := s.lim.Allow(ctx, creds.Username)
	if err != nil {
		return model.User{}, err
	}
	if !allowed {
		return model.User{}, fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, retry.Round(time.Second))
	}

	resp, err := s.client.Login(ctx, creds.Username, creds.Password, s.expiresInMins)
	if err != nil {
		if !errors.Is(err, errs.ErrUnauthorized) {
			return model.User{}, err
		}
		s.log.Info("login failed", zap.String("username", creds.Username))
		if blocked, dur, ferr := s.lim.Failure(ctx, creds.Username); ferr == nil && blocked {
			return model.User{}, fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, dur.Round(time.Second))
		}
		return model.User{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, creds.Username)

	u := userFromResponse(resp)
	s.store.Dispatch(state.Login{User: u, Token: resp.SessionToken()})
	s.log.Info("logged in", zap.String("username", u.Username), zap.String("id", u.ID))
	return u, nil
}

func userFromResponse(r model.LoginResponse) model.User {
	return model.User{
		ID:       strconv.Itoa(r.ID),
		Name:     strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:    r.Email,
		Username: r.Username,
		Image:    r.Image,
	}
}

// Logout dispatches a full auth reset. Favourites are kept.
func (s *AuthServiceImpl) Logout() {
	s.store.Dispatch(state.Logout{})
	s.log.Info("logged out")
}

// Register checks the form and mints a local id. The demo API has no signup,
// so auth state is left alone and the user still has to log in.
func (s *AuthServiceImpl) Register(_ context.Context, in model.RegisterInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("%w: %s", errs.ErrValidation, describe(verrs[0]))
		}
		return "", fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	if strings.TrimSpace(in.Password) == "" {
		return "", fmt.Errorf("%w: password is required", errs.ErrValidation)
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	s.log.Info("registered locally", zap.String("id", uid.String()), zap.String("email", in.Email))
	return uid.String(), nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "email" {
		return field + " is not a valid address"
	}
	return field + " is required"
}

// Session returns the current auth slice.
func (s *AuthServiceImpl) Session() model.AuthSession {
	return s.store.State().Auth
}

// TokenExpiry parses exp from the stored token. It is informational only:
// sessions never expire locally.
func (s *AuthServiceImpl) TokenExpiry() (time.Time, bool) {
	tok := s.store.State().Auth.Token
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
