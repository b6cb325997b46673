package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"github.com/sangkips/loyalty-admin/pkg/utils"
)

// legacy places the admin SPA kept its token, in lookup order
var (
	tokenHeaders = []string{"X-Access-Token", "X-Auth-Token"}
	tokenCookies = []string{"token", "authToken", "accessToken", "adminToken", "admin_token"}
)

// ResolveToken finds the operator's token: the Authorization header first, then
// the legacy headers, then the legacy cookies. Empty when there is none.
func ResolveToken(r *http.Request) string {
	if token := bearer(r.Header.Get("Authorization")); token != "" {
		return token
	}
	for _, name := range tokenHeaders {
		if token := bearer(r.Header.Get(name)); token != "" {
			return token
		}
	}
	for _, name := range tokenCookies {
		if cookie, err := r.Cookie(name); err == nil {
			if token := bearer(cookie.Value); token != "" {
				return token
			}
		}
	}
	return ""
}

func bearer(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 7 && strings.EqualFold(value[:7], "bearer ") {
		value = strings.TrimSpace(value[7:])
	}
	if value == "null" || value == "undefined" {
		return ""
	}
	return value
}

// OperatorMiddleware identifies the operator and forwards their token to the
// loyalty API. A missing token is tolerated; the API decides what is allowed.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		op := entity.Operator{ID: entity.AnonymousOperatorID}
		ctx := c.Request.Context()

		if token := ResolveToken(c.Request); token != "" {
			op.ID, op.Name = utils.OperatorIdentity(token)
			op.Token = token
			ctx = upstream.WithToken(ctx, token)
		}

		ctx = infraRepo.WithOperator(ctx, op)
		c.Request = c.Request.WithContext(ctx)
		c.Set("operator_id", op.ID)

		c.Next()
	}
}

// GetOperatorID extracts the operator id from the Gin context
func GetOperatorID(c *gin.Context) string {
	id := c.GetString("operator_id")
	if id == "" {
		return entity.AnonymousOperatorID
	}
	return id
}
