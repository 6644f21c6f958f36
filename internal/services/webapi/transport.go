package webapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultTimeout = 30 * time.Second

// AuthOptions selects how requests are authorised.
// ClientID wins over Token; with neither, requests are sent unauthenticated.
type AuthOptions struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Token        string
	TokenURL     string // Optional override of the Entra ID token endpoint
}

// NewHTTPClient builds the HTTP client used against the Web API. wrap, when
// non-nil, decorates the base transport (metrics instrumentation).
func NewHTTPClient(ctx context.Context, baseURL string, auth AuthOptions, timeout time.Duration, wrap func(http.RoundTripper) http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := http.DefaultTransport
	if wrap != nil {
		base = wrap(base)
	}

	source := tokenSource(ctx, baseURL, auth)
	if source == nil {
		return &http.Client{Timeout: timeout, Transport: base}
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, source),
			Base:   base,
		},
	}
}

func tokenSource(ctx context.Context, baseURL string, auth AuthOptions) oauth2.TokenSource {
	switch {
	case auth.ClientID != "":
		tokenURL := auth.TokenURL
		if tokenURL == "" {
			tokenURL = "https://login.microsoftonline.com/" + auth.TenantID + "/oauth2/v2.0/token"
		}
		cfg := clientcredentials.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{strings.TrimRight(baseURL, "/") + "/.default"},
		}
		return cfg.TokenSource(ctx)

	case auth.Token != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: auth.Token, TokenType: "Bearer"})

	default:
		return nil
	}
}
