package middleware

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency middleware answers a repeated console submission from the stored
// response instead of sending the mutation to the loyalty API again. Keys are
// scoped by operator and bound to the route they were first sent to. Only
// responses below 500 are stored so a failed attempt can be retried with the
// same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" || config.Repo == nil {
			c.Next()
			return
		}
		operatorID := GetOperatorID(c)
		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := config.Repo.Lookup(c.Request.Context(), idempotencyKey, operatorID, endpoint)
		if errors.Is(err, repository.ErrIdempotencyKeyReused) {
			response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for another request")
			c.Abort()
			return
		}
		if err != nil {
			log.Printf("Warning: idempotency lookup failed: %v", err)
			c.Next()
			return
		}

		if existing != nil {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}
		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			OperatorID:   operatorID,
			Endpoint:     endpoint,
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Save(context.WithoutCancel(c.Request.Context()), ikey); err != nil {
			log.Printf("Warning: failed to store idempotency key: %v", err)
		}
	}
}
