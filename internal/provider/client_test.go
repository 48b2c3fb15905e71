package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"spotlogin/internal/config"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), &oauth2.Token{AccessToken: "tok-abc", TokenType: "Bearer"},
		WithBaseURL(server.URL+"/v1/"),
		WithHTTPClient(server.Client()),
		WithMarket("SE"),
	)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestOAuth2Config(t *testing.T) {
	cfg := config.OAuthClientConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:4000/callback",
		Scopes:       []string{"a", "b"},
		AuthURL:      "https://auth.example.com/authorize",
		TokenURL:     "https://auth.example.com/token",
	}

	oc := OAuth2Config(cfg)

	assert.Equal(t, "id", oc.ClientID)
	assert.Equal(t, "secret", oc.ClientSecret)
	assert.Equal(t, cfg.RedirectURI, oc.RedirectURL)
	assert.Equal(t, cfg.TokenURL, oc.Endpoint.TokenURL)
	assert.Equal(t, oauth2.AuthStyleInHeader, oc.Endpoint.AuthStyle)

	oc.Scopes[0] = "mutated"
	assert.Equal(t, "a", cfg.Scopes[0])
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewClient(context.Background(), &oauth2.Token{})
	assert.Error(t, err)
}

func TestNewSessionFactory(t *testing.T) {
	factory := NewSessionFactory(WithMarket("DE"))
	token := &oauth2.Token{AccessToken: "tok"}

	c, err := factory(context.Background(), token)
	require.NoError(t, err)
	assert.Same(t, token, c.Token())
	assert.Equal(t, "DE", c.market)
}

func TestClient_CurrentUser(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":           "user-1",
			"display_name": "Test User",
			"email":        "test@example.com",
			"country":      "SE",
			"followers":    map[string]int{"total": 7},
		})
	})

	user, err := newTestClient(t, server).CurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Test User", user.DisplayName)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, 7, user.Followers.Total)
}

func TestClient_SearchArtists(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "daft punk", r.URL.Query().Get("q"))
		assert.Equal(t, "artist", r.URL.Query().Get("type"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"artists": map[string]interface{}{
				"total": 2,
				"items": []map[string]interface{}{
					{"id": "a1", "name": "Daft Punk", "popularity": 80, "genres": []string{"french house"}},
					{"id": "a2", "name": "Daft Punk Tribute"},
				},
			},
		})
	})

	artists, err := newTestClient(t, server).SearchArtists(context.Background(), "  daft punk ", 500)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Daft Punk", artists[0].Name)
	assert.Equal(t, []string{"french house"}, artists[0].Genres)
}

func TestClient_SearchArtists_EmptyQuery(t *testing.T) {
	var calls atomic.Int32
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := newTestClient(t, server).SearchArtists(context.Background(), " ", 10)
	assert.Error(t, err)
	assert.Zero(t, calls.Load())
}

func TestClient_ArtistDetails(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/artists/a1":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": "a1", "name": "Daft Punk", "followers": map[string]int{"total": 100},
			})
		case "/v1/artists/a1/top-tracks":
			assert.Equal(t, "SE", r.URL.Query().Get("market"))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"tracks": []map[string]interface{}{
					{"id": "t1", "name": "One More Time", "popularity": 90, "album": map[string]string{"name": "Discovery"}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	})

	details, err := newTestClient(t, server).ArtistDetails(context.Background(), "a1")
	require.NoError(t, err)

	assert.Equal(t, "Daft Punk", details.Artist.Name)
	assert.Equal(t, 100, details.Artist.Followers.Total)
	require.Len(t, details.TopTracks, 1)
	assert.Equal(t, "Discovery", details.TopTracks[0].Album.Name)
}

func TestClient_ArtistDetails_PropagatesAPIError(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/artists/a1/top-tracks" {
			writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"error": map[string]interface{}{"status": 429, "message": "API rate limit exceeded"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "a1", "name": "Daft Punk"})
	})

	_, err := newTestClient(t, server).ArtistDetails(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API rate limit exceeded", apiErr.Message)
}

func TestClient_Unauthorized(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error": map[string]interface{}{"status": 401, "message": "The access token expired"},
		})
	})

	_, err := newTestClient(t, server).CurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "The access token expired")
}

func TestClient_MalformedResponse(t *testing.T) {
	server := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := newTestClient(t, server).CurrentUser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Endpoint: "/artists/x"}
	assert.Equal(t, "spotify API /artists/x: 404 Not Found", err.Error())
}
