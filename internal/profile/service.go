// Package profile reads and writes the signed-in customer's own profile.
package profile

import (
	"context"
	"errors"
	"strings"

	"marmita-storefront/internal/auth"
	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/supabase"
	"marmita-storefront/internal/utils"

	"go.uber.org/zap"
)

const (
	profilesTable = "profiles"
	rolesTable    = "user_roles"
	RoleAdmin     = "admin"
)

// Identity resolves who is signed in.
type Identity interface {
	UserID(ctx context.Context) (string, error)
	CurrentUser(ctx context.Context) (*auth.User, error)
}

type Service interface {
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, fullName, phone string) (*Profile, error)
	Roles(ctx context.Context) ([]string, error)
	IsAdmin(ctx context.Context) (bool, error)
	Prefill(ctx context.Context) (Prefill, error)
}

type service struct {
	rest     supabase.REST
	identity Identity
}

func NewService(rest supabase.REST, identity Identity) Service {
	return &service{rest: rest, identity: identity}
}

func (s *service) Get(ctx context.Context) (*Profile, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, uid)
}

func (s *service) get(ctx context.Context, uid string) (*Profile, error) {
	var rows []profileRow
	q := supabase.NewQuery().Select("*").Eq("id", uid).Limit(1)
	if err := s.rest.Select(ctx, profilesTable, q, supabase.User, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProfileNotFound
	}
	return toProfile(rows[0]), nil
}

// Upsert updates the caller's row and creates it when none exists yet.
// Blank values are stored as null; the phone is stored as digits.
func (s *service) Upsert(ctx context.Context, fullName, phone string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpsertProfile"),
	)

	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}

	body := profileRow{
		FullName: utils.NilIfBlank(strings.TrimSpace(fullName)),
		Phone:    utils.NilIfBlank(utils.DigitsOnly(phone)),
	}

	var rows []profileRow
	q := supabase.NewQuery().Eq("id", uid)
	if err := s.rest.Update(ctx, profilesTable, q, body, supabase.User, &rows); err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	if len(rows) > 0 {
		return toProfile(rows[0]), nil
	}

	body.ID = uid
	if err := s.rest.Upsert(ctx, profilesTable, "id", body, supabase.User, &rows); err != nil {
		log.Error("failed to insert profile", zap.Error(err))
		return nil, err
	}
	if len(rows) > 0 {
		log.Info("profile created")
		return toProfile(rows[0]), nil
	}

	return s.get(ctx, uid)
}

func (s *service) Roles(ctx context.Context) ([]string, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}

	var rows []roleRow
	q := supabase.NewQuery().Select("role").Eq("user_id", uid)
	if err := s.rest.Select(ctx, rolesTable, q, supabase.User, &rows); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(rows))
	for _, r := range rows {
		roles = append(roles, r.Role)
	}
	return roles, nil
}

// IsAdmin is false, without error, for signed-out callers.
func (s *service) IsAdmin(ctx context.Context) (bool, error) {
	roles, err := s.Roles(ctx)
	if err != nil {
		if signedOut(err) {
			return false, nil
		}
		return false, err
	}
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(r), RoleAdmin) {
			return true, nil
		}
	}
	return false, nil
}

// Prefill prefers the profile row and falls back to the sign-up metadata.
// Signed-out callers get an empty result.
func (s *service) Prefill(ctx context.Context) (Prefill, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Prefill"),
	)

	u, err := s.identity.CurrentUser(ctx)
	if err != nil {
		if signedOut(err) {
			return Prefill{}, nil
		}
		return Prefill{}, err
	}

	var name, phone string
	p, err := s.get(ctx, u.ID)
	switch {
	case err == nil:
		name, phone = utils.PtrString(p.FullName), utils.PtrString(p.Phone)
	case errors.Is(err, ErrProfileNotFound):
	default:
		log.Warn("profile unavailable; using account metadata", zap.Error(err))
	}

	return Prefill{
		CustomerName:    strings.TrimSpace(utils.FirstNonBlank(name, u.Metadata.FullName)),
		CustomerPhone:   utils.MaskPhoneBR(utils.FirstNonBlank(phone, u.Metadata.Phone)),
		CustomerAddress: u.Metadata.Address().Format(),
	}, nil
}

func signedOut(err error) bool {
	return errors.Is(err, auth.ErrNotAuthenticated) ||
		errors.Is(err, auth.ErrSessionExpired) ||
		errors.Is(err, supabase.ErrNoSession)
}

func toProfile(r profileRow) *Profile {
	return &Profile{ID: r.ID, FullName: r.FullName, Phone: r.Phone}
}
