package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wirraway/authgate/internal/authgate/domain"
)

func newFakeGitHub(t *testing.T, tokenStatus int, tokenBody string, user string, emails string) *GitHub {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client-id", r.Form.Get("client_id"))
		require.NotEmpty(t, r.Form.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(tokenStatus)
		_, _ = w.Write([]byte(tokenBody))
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token gho_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(user))
	})
	mux.HandleFunc("GET /user/emails", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token gho_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(emails))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	g := NewGitHub("client-id", "client-secret", "https://app.example.com/callback", srv.Client())
	g.tokenURL = srv.URL + "/login/oauth/access_token"
	g.userURL = srv.URL + "/user"
	g.emailsURL = srv.URL + "/user/emails"
	return g
}

const githubTokenOK = `{"access_token":"gho_test","token_type":"bearer"}`

func TestGitHubExchange(t *testing.T) {
	t.Parallel()

	t.Run("profile with public email", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, githubTokenOK,
			`{"id":42,"login":"bob","name":"Bob B","email":"bob@x.com","avatar_url":"https://a/b.png"}`,
			`[]`,
		)

		identity, err := g.Exchange(context.Background(), "good-code", "")
		require.NoError(t, err)
		require.Equal(t, domain.Identity{
			ExternalID:  "42",
			Provider:    domain.ProviderGitHub,
			Email:       "bob@x.com",
			DisplayName: "Bob B",
			AvatarURL:   "https://a/b.png",
		}, identity)
	})

	t.Run("no public email picks primary from emails endpoint", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, githubTokenOK,
			`{"id":42,"login":"bob"}`,
			`[{"email":"a@x.com","primary":false},{"email":"b@x.com","primary":true}]`,
		)

		identity, err := g.Exchange(context.Background(), "good-code", "")
		require.NoError(t, err)
		require.Equal(t, "b@x.com", identity.Email)
		require.Equal(t, "bob", identity.DisplayName) // falls back to login
	})

	t.Run("no primary email falls back to first", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, githubTokenOK,
			`{"id":42,"login":"bob"}`,
			`[{"email":"a@x.com","primary":false},{"email":"b@x.com","primary":false}]`,
		)

		identity, err := g.Exchange(context.Background(), "good-code", "")
		require.NoError(t, err)
		require.Equal(t, "a@x.com", identity.Email)
	})

	t.Run("empty emails list leaves email empty", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, githubTokenOK, `{"id":42,"login":"bob"}`, `[]`)

		identity, err := g.Exchange(context.Background(), "good-code", "")
		require.NoError(t, err)
		require.Empty(t, identity.Email)
		require.Equal(t, "42", identity.ExternalID)
	})

	t.Run("token endpoint failure", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusBadRequest, `{"error":"bad_verification_code"}`, `{}`, `[]`)

		_, err := g.Exchange(context.Background(), "stale-code", "")
		require.ErrorIs(t, err, ErrExchangeFailed)
	})

	t.Run("missing access_token", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, `{"scope":"user:email"}`, `{}`, `[]`)

		_, err := g.Exchange(context.Background(), "odd-code", "")
		require.ErrorIs(t, err, ErrExchangeFailed)
	})

	t.Run("profile without id fails normalization", func(t *testing.T) {
		g := newFakeGitHub(t, http.StatusOK, githubTokenOK, `{"login":"ghost"}`, `[]`)

		_, err := g.Exchange(context.Background(), "good-code", "")
		require.ErrorIs(t, err, ErrNormalization)
	})
}
