package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/uptask/internal/credential"
	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentities struct {
	findIdentity func(ctx context.Context, id string) (domain.Identity, error)
}

func (f *fakeIdentities) FindIdentity(ctx context.Context, id string) (domain.Identity, error) {
	return f.findIdentity(ctx, id)
}

var knownUser = &fakeIdentities{
	findIdentity: func(_ context.Context, id string) (domain.Identity, error) {
		if id != "user-1" {
			return domain.Identity{}, domain.ErrUserNotFound
		}
		return domain.Identity{ID: "user-1", Name: "Ana", Email: "ana@example.com"}, nil
	},
}

// newEngine protects GET /protected with Authenticate. The handler echoes the identity.
func newEngine(users middleware.IdentityFinder) *gin.Engine {
	r := gin.New()
	verifier := credential.NewJWT([]byte(testKey), time.Hour)
	r.GET("/protected", middleware.Authenticate(verifier, users, slog.Default()), func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.IdentityFrom(c))
	})
	return r
}

func sign(t *testing.T, key string, ttl time.Duration, sub string) string {
	t.Helper()
	tok, err := credential.NewJWT([]byte(key), ttl).Sign(sub)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return tok
}

func do(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	engine.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing header",
			header:     func(*testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No autorizado",
		},
		{
			name:       "non bearer scheme",
			header:     func(*testing.T) string { return "Basic dXNlcjpwYXNz" },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No autorizado",
		},
		{
			name:       "bearer without token",
			header:     func(*testing.T) string { return "Bearer" },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No autorizado",
		},
		{
			name:       "garbage token",
			header:     func(*testing.T) string { return "Bearer not.a.jwt" },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token no válido",
		},
		{
			name:       "expired token",
			header:     func(t *testing.T) string { return "Bearer " + sign(t, testKey, -time.Minute, "user-1") },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token no válido",
		},
		{
			name:       "wrong key",
			header:     func(t *testing.T) string { return "Bearer " + sign(t, "another-secret-that-is-32-chars!!", time.Hour, "user-1") },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token no válido",
		},
		{
			name:       "subject does not exist",
			header:     func(t *testing.T) string { return "Bearer " + sign(t, testKey, time.Hour, "ghost") },
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Token no válido",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newEngine(knownUser), tc.header(t))

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := errorBody(t, w); got != tc.wantMsg {
				t.Errorf("error = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestAuthenticate_StoreFailureIs500(t *testing.T) {
	users := &fakeIdentities{
		findIdentity: func(context.Context, string) (domain.Identity, error) {
			return domain.Identity{}, errors.New("db down")
		},
	}

	w := do(newEngine(users), "Bearer "+sign(t, testKey, time.Hour, "user-1"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	w := do(newEngine(knownUser), "Bearer "+sign(t, testKey, time.Hour, "user-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["_id"] != "user-1" || got["name"] != "Ana" || got["email"] != "ana@example.com" {
		t.Errorf("identity = %v", got)
	}
	if _, ok := got["password"]; ok {
		t.Error("identity must not carry the password")
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	for _, scheme := range []string{"bearer", "BEARER", "Bearer"} {
		t.Run(scheme, func(t *testing.T) {
			w := do(newEngine(knownUser), scheme+" "+sign(t, testKey, time.Hour, "user-1"))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
			}
		})
	}
}
