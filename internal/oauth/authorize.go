package oauth

import (
	"net/url"
	"strings"

	"spotlogin/internal/config"
)

// AuthorizationRequest is the provider consent URL the user is sent to.
type AuthorizationRequest struct {
	URL string
}

// BuildAuthorizationRequest constructs the authorization URL for cfg.
//
// Scopes are deduplicated, keeping first occurrence order, and joined with
// cfg.ScopeSeparator. The state parameter is omitted when state is empty.
// The result depends only on its inputs, so identical inputs produce
// byte-identical URLs. Query parameters already present on cfg.AuthURL are
// preserved.
func BuildAuthorizationRequest(cfg config.OAuthClientConfig, state string) AuthorizationRequest {
	sep := cfg.ScopeSeparator
	if sep == "" {
		sep = config.DefaultScopeSeparator
	}

	base := cfg.AuthURL
	query := url.Values{}
	if authURL, err := url.Parse(cfg.AuthURL); err == nil {
		query = authURL.Query()
		authURL.RawQuery = ""
		authURL.Fragment = ""
		base = authURL.String()
	}

	query.Set("response_type", "code")
	query.Set("client_id", cfg.ClientID)
	query.Set("redirect_uri", cfg.RedirectURI)

	if scopes := uniqueScopes(cfg.Scopes); len(scopes) > 0 {
		query.Set("scope", strings.Join(scopes, sep))
	}

	if state != "" {
		query.Set("state", state)
	}

	return AuthorizationRequest{URL: base + "?" + query.Encode()}
}

func uniqueScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
