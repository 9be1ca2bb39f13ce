package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goalpool/prediction-league/internal/domain/user"
	"github.com/goalpool/prediction-league/internal/platform/logging"
	"github.com/goalpool/prediction-league/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

type recordingRegistrar struct {
	seen []user.Principal
}

func (r *recordingRegistrar) Ensure(_ context.Context, p user.Principal) error {
	r.seen = append(r.seen, p)
	return nil
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, nil, logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/predictions/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, nil, logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_VerifiedPrincipalReachesHandlerAndRegistrar(t *testing.T) {
	registrar := &recordingRegistrar{}
	verifier := stubVerifier{principal: user.Principal{ID: "user-1", Email: "one@example.com"}}

	var got user.Principal
	handler := RequireAuth(verifier, registrar, logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got.ID != "user-1" {
		t.Fatalf("unexpected principal in context: %+v", got)
	}
	if len(registrar.seen) != 1 || registrar.seen[0].ID != "user-1" {
		t.Fatalf("expected registrar to record the principal, got %+v", registrar.seen)
	}
}

func TestRequireAuth_VerifierErrorPropagates(t *testing.T) {
	verifier := stubVerifier{err: usecase.ErrUnauthorized}
	handler := RequireAuth(verifier, nil, logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler must not run for a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "valid token", configured: "secret", provided: "secret", want: http.StatusOK},
		{name: "wrong token", configured: "secret", provided: "other", want: http.StatusUnauthorized},
		{name: "missing token", configured: "secret", provided: "", want: http.StatusUnauthorized},
		{name: "unconfigured", configured: "", provided: "secret", want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireInternalJobToken(tt.configured, next)

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
			if tt.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tt.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://goalpool.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	req.Header.Set("Origin", "https://goalpool.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://goalpool.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/leaderboard", nil)
	req.Header.Set("Origin", "https://goalpool.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}
