// Package settings reads and writes the store's key/value configuration.
package settings

import (
	"context"
	"strconv"
	"strings"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/supabase"

	"go.uber.org/zap"
)

const table = "settings"

type Service interface {
	Branding(ctx context.Context) (Branding, error)
	BannerURL(ctx context.Context) (string, error)
	LogoURL(ctx context.Context) (string, error)
	LogoSize(ctx context.Context) (int, error)
	StoreName(ctx context.Context) (string, error)

	SetBannerURL(ctx context.Context, url string) error
	SetLogoURL(ctx context.Context, url string) error
	SetLogoSize(ctx context.Context, size int) error
	SetStoreName(ctx context.Context, name string) error
}

type service struct {
	rest supabase.REST
}

func NewService(rest supabase.REST) Service {
	return &service{rest: rest}
}

// Branding reads every header key in a single request.
func (s *service) Branding(ctx context.Context) (Branding, error) {
	var rows []Setting
	q := supabase.NewQuery().
		Select("key,value").
		In("key", KeyStoreName, KeyLogoURL, KeyLogoSize, KeyBannerURL)
	if err := s.rest.Select(ctx, table, q, supabase.Anon, &rows); err != nil {
		logger.FromCtx(ctx).Error("failed to load branding",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return Branding{}, err
	}

	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}

	return Branding{
		StoreName: storeNameOrDefault(values[KeyStoreName]),
		LogoURL:   strings.TrimSpace(values[KeyLogoURL]),
		LogoSize:  logoSizeOrDefault(values[KeyLogoSize]),
		BannerURL: strings.TrimSpace(values[KeyBannerURL]),
	}, nil
}

func (s *service) BannerURL(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyBannerURL)
	return strings.TrimSpace(v), err
}

func (s *service) LogoURL(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyLogoURL)
	return strings.TrimSpace(v), err
}

// LogoSize returns the stored size in dp, or DefaultLogoSize when unset or
// outside MinLogoSize..MaxLogoSize.
func (s *service) LogoSize(ctx context.Context) (int, error) {
	v, err := s.get(ctx, KeyLogoSize)
	if err != nil {
		return DefaultLogoSize, err
	}
	return logoSizeOrDefault(v), nil
}

func (s *service) StoreName(ctx context.Context) (string, error) {
	v, err := s.get(ctx, KeyStoreName)
	if err != nil {
		return DefaultStoreName, err
	}
	return storeNameOrDefault(v), nil
}

func (s *service) SetBannerURL(ctx context.Context, url string) error {
	return s.set(ctx, KeyBannerURL, url)
}

func (s *service) SetLogoURL(ctx context.Context, url string) error {
	return s.set(ctx, KeyLogoURL, url)
}

func (s *service) SetLogoSize(ctx context.Context, size int) error {
	if size < MinLogoSize || size > MaxLogoSize {
		return ErrInvalidLogoSize
	}
	return s.set(ctx, KeyLogoSize, strconv.Itoa(size))
}

func (s *service) SetStoreName(ctx context.Context, name string) error {
	return s.set(ctx, KeyStoreName, name)
}

func (s *service) get(ctx context.Context, key string) (string, error) {
	var rows []Setting
	q := supabase.NewQuery().Select("key,value").Eq("key", key).Limit(1)
	if err := s.rest.Select(ctx, table, q, supabase.Anon, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Value, nil
}

func (s *service) set(ctx context.Context, key, value string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetSetting"),
		zap.String("key", key),
	)

	value = strings.TrimSpace(value)
	if value == "" {
		return ErrBlankValue
	}

	body := []Setting{{Key: key, Value: value}}
	if err := s.rest.Upsert(ctx, table, "key", body, supabase.User, nil); err != nil {
		log.Error("failed to save setting", zap.Error(err))
		return err
	}

	log.Info("setting saved")
	return nil
}

func logoSizeOrDefault(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < MinLogoSize || n > MaxLogoSize {
		return DefaultLogoSize
	}
	return n
}

func storeNameOrDefault(v string) string {
	if name := strings.TrimSpace(v); name != "" {
		return name
	}
	return DefaultStoreName
}
