// Package identity is the console's client for the external identity
// provider. The console never implements sign-up or sign-in itself; it
// resolves session tokens and forwards sign-out.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/config"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Identity is the resolved session identity.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// Client resolves session tokens against the identity provider.
type Client interface {
	CurrentUser(ctx context.Context, token string) (*Identity, error)
	SignOut(ctx context.Context, token string) error
}

// NewClient creates a REST client for the identity provider. Resolved
// identities are cached per token for cfg.CacheTTL, and outbound calls
// are rate limited so a misbehaving page cannot hammer the provider.
func NewClient(cfg config.Identity, logger *logger.Logger) (Client, error) {
	timeout := 10 * time.Second
	if cfg.RequestTimeout != "" {
		d, err := time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid identity request_timeout: %w", err)
		}
		timeout = d
	}

	ttl := time.Minute
	if cfg.CacheTTL != "" {
		d, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid identity cache_ttl: %w", err)
		}
		ttl = d
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 20
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 5
	}

	return &restClient{
		http:    resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(timeout),
		apiKey:  cfg.APIKey,
		tokens:  gocache.New(ttl, 2*ttl),
		ttl:     ttl,
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		logger:  logger,
	}, nil
}

type restClient struct {
	http    *resty.Client
	apiKey  string
	tokens  *gocache.Cache
	ttl     time.Duration
	limiter *rate.Limiter
	logger  *logger.Logger
}

// CurrentUser resolves the identity behind a session token, or
// apperrors.ErrUnauthenticated when the provider rejects it.
func (c *restClient) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	if cached, ok := c.tokens.Get(token); ok {
		ident := cached.(Identity)
		return &ident, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewTransportError("identity rate limit", err)
	}

	var ident Identity
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&ident).
		Get("/auth/v1/user")
	if err != nil {
		return nil, apperrors.NewTransportError("resolve session", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, apperrors.ErrUnauthenticated
	}
	if !resp.IsSuccess() {
		return nil, apperrors.NewTransportError("resolve session", fmt.Errorf("identity provider returned %d", resp.StatusCode()))
	}

	c.tokens.Set(token, ident, c.ttl)
	return &ident, nil
}

// SignOut terminates the session at the provider and drops the token
// from the local cache.
func (c *restClient) SignOut(ctx context.Context, token string) error {
	c.tokens.Delete(token)

	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewTransportError("identity rate limit", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.apiKey).
		SetHeader("Authorization", "Bearer "+token).
		Post("/auth/v1/logout")
	if err != nil {
		return apperrors.NewTransportError("sign out", err)
	}
	if !resp.IsSuccess() && resp.StatusCode() != http.StatusUnauthorized {
		return apperrors.NewTransportError("sign out", fmt.Errorf("identity provider returned %d", resp.StatusCode()))
	}
	return nil
}
