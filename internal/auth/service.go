package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/session"
	"marmita-storefront/internal/supabase"
	"marmita-storefront/internal/utils"

	"go.uber.org/zap"
)

// Backend is the slice of the REST client the auth flows need.
type Backend interface {
	AuthCall(ctx context.Context, method, path string, query url.Values, bearer string, body, out any) error
}

type Service interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, input SignUpInput) error
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
	UserID(ctx context.Context) (string, error)
	SignedIn() bool
}

type service struct {
	backend Backend
	store   session.Store
	now     func() time.Time
}

func NewService(backend Backend, store session.Store) Service {
	return &service{backend: backend, store: store, now: time.Now}
}

func (s *service) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SignIn"),
	)

	var res tokenResponse
	err := s.backend.AuthCall(ctx, http.MethodPost, "token",
		url.Values{"grant_type": {"password"}}, "",
		map[string]string{"email": email, "password": password},
		&res,
	)
	if err != nil {
		if apiErr, ok := supabase.AsAPIError(err); ok {
			if apiErr.ServerError() {
				log.Error("auth service failed", zap.Error(err))
				return ErrServiceUnavailable
			}
			log.Info("sign in rejected", zap.Int("status", apiErr.Status))
			return ErrInvalidCredentials
		}
		return err
	}

	if res.AccessToken == "" {
		// happens when the e-mail is still unconfirmed
		return ErrInvalidCredentials
	}

	s.store.Save(res.AccessToken)
	log.Info("signed in")
	return nil
}

func (s *service) SignUp(ctx context.Context, input SignUpInput) error {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return ErrMissingCredentials
	}

	data := input.Address.Metadata()
	data["full_name"] = strings.TrimSpace(input.FullName)
	data["phone"] = utils.DigitsOnly(input.Phone)

	err := s.backend.AuthCall(ctx, http.MethodPost, "signup", nil, "",
		signUpRequest{Email: email, Password: input.Password, Data: data},
		nil,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("sign up failed",
			zap.String("layer", "service"),
			zap.String("method", "SignUp"),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// SignOut drops the local session even when the backend call fails.
func (s *service) SignOut(ctx context.Context) error {
	token := s.store.Token()
	s.store.Clear()
	if token == "" {
		return nil
	}
	return s.backend.AuthCall(ctx, http.MethodPost, "logout", nil, token, nil, nil)
}

func (s *service) SignedIn() bool {
	return s.store.Token() != ""
}

func (s *service) CurrentUser(ctx context.Context) (*User, error) {
	token := s.store.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	var raw map[string]json.RawMessage
	if err := s.backend.AuthCall(ctx, http.MethodGet, "user", nil, token, nil, &raw); err != nil {
		if apiErr, ok := supabase.AsAPIError(err); ok && apiErr.Unauthorized() {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	// some gateways wrap the payload as {"user": {...}}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if inner, ok := raw["user"]; ok && len(inner) > 0 && inner[0] == '{' {
		payload = inner
	}

	var u User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, ErrNotAuthenticated
	}
	return &u, nil
}

// UserID reads the subject from the local token and only asks the backend
// when the token cannot be decoded.
func (s *service) UserID(ctx context.Context) (string, error) {
	token := s.store.Token()
	if token == "" {
		return "", ErrNotAuthenticated
	}

	claims, err := session.ParseClaims(token)
	if err == nil && claims.UserID() != "" {
		if claims.Expired(s.now()) {
			return "", ErrSessionExpired
		}
		return claims.UserID(), nil
	}

	u, err := s.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return "", ErrSessionExpired
		}
		return "", err
	}
	return u.ID, nil
}
