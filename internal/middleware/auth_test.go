package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamehouse/internal/middleware"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

type stubSessionStore struct {
	sessions map[string]*model.LoginSession
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*model.LoginSession)}
}

func (s *stubSessionStore) Create(_ context.Context, ls *model.LoginSession) error {
	s.sessions[ls.Token] = ls
	return nil
}

func (s *stubSessionStore) FindByToken(_ context.Context, token string) (*model.LoginSession, error) {
	ls, ok := s.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ls, nil
}

func (s *stubSessionStore) Deactivate(_ context.Context, token string) error {
	if ls, ok := s.sessions[token]; ok {
		ls.Active = false
	}
	return nil
}

func (s *stubSessionStore) DeactivateAllForOperator(_ context.Context, operatorID uuid.UUID) error {
	for _, ls := range s.sessions {
		if ls.OperatorID == operatorID {
			ls.Active = false
		}
	}
	return nil
}

func (s *stubSessionStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

var _ repository.LoginSessionRepository = (*stubSessionStore)(nil)

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"operator_id": uuid.NewString(),
		"username":    "admin",
		"role":        role,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(expiresIn).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedRouter(store *stubSessionStore, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middleware.JWTAuth(testSecret, store))
	if len(roles) > 0 {
		group.Use(middleware.RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r
}

func doPing(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsActiveSession(t *testing.T) {
	store := newStubSessionStore()
	token := signToken(t, testSecret, model.RoleAdmin, time.Hour)
	require.NoError(t, store.Create(context.Background(), &model.LoginSession{
		Token:     token,
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	w := doPing(newProtectedRouter(store), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	w := doPing(newProtectedRouter(newStubSessionStore()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
	token := signToken(t, "another-secret", model.RoleAdmin, time.Hour)

	w := doPing(newProtectedRouter(newStubSessionStore()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, model.RoleAdmin, -time.Minute)

	w := doPing(newProtectedRouter(newStubSessionStore()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A valid JWT alone is not enough: the login session row must still be active.
func TestJWTAuthRejectsRevokedSession(t *testing.T) {
	store := newStubSessionStore()
	token := signToken(t, testSecret, model.RoleAdmin, time.Hour)
	require.NoError(t, store.Create(context.Background(), &model.LoginSession{
		Token:     token,
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.Deactivate(context.Background(), token))

	w := doPing(newProtectedRouter(store), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuthAcceptsCookie(t *testing.T) {
	store := newStubSessionStore()
	token := signToken(t, testSecret, model.RoleAdmin, time.Hour)
	require.NoError(t, store.Create(context.Background(), &model.LoginSession{
		Token:     token,
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	r := newProtectedRouter(store)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: "gh_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	store := newStubSessionStore()
	token := signToken(t, testSecret, model.RoleOperator, time.Hour)
	require.NoError(t, store.Create(context.Background(), &model.LoginSession{
		Token:     token,
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	w := doPing(newProtectedRouter(store, model.RoleAdmin), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
