package utils

import (
	"github.com/google/uuid"
)

// NewRequestID generates a new request id
func NewRequestID() string {
	return uuid.New().String()
}

// ShortID returns the first 8 characters of an id for log prefixes
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
