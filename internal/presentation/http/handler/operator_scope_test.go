package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/cache"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/middleware"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

func listUsersAs(t *testing.T, router *gin.Engine, token string) int64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return decode[listing.PaginatedResult[entity.User]](t, env.Data).Pagination.Total
}

func TestSnapshotCacheIsScopedByWholeToken(t *testing.T) {
	repo := newFakeRepo(members(3)...)
	deps := service.CatalogDeps{Cache: cache.NewInMemoryCache(), TTL: time.Minute}
	h := NewUserHandler(service.NewUserService(repo, deps))
	router := gin.New()
	router.Use(middleware.OperatorMiddleware())
	router.GET("/users", h.List)

	claims := jwt.RegisteredClaims{Subject: "admin-1"}
	genuine, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if got := listUsersAs(t, router, genuine); got != 3 {
		t.Fatalf("genuine total = %d, want 3", got)
	}

	repo.mu.Lock()
	repo.items = nil
	repo.mu.Unlock()

	if got := listUsersAs(t, router, forged); got != 0 {
		t.Errorf("forged token with the same subject got %d cached users, want 0", got)
	}
	if got := listUsersAs(t, router, genuine); got != 3 {
		t.Errorf("genuine total after refetch by another token = %d, want 3 from cache", got)
	}
}
