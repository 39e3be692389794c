package handler

import (
	"fmt"
	"strconv"

	"points-ledger/internal/adapter/http/dto"
	"points-ledger/internal/adapter/http/middleware"
	"points-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	return parseUUID(c.Param(name), name)
}

// queryUUID parses a required UUID query parameter.
func queryUUID(c *gin.Context, name string) (uuid.UUID, error) {
	return parseUUID(c.Query(name), name)
}

func parseUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// idempotencyKey reads the optional Idempotency-Key header.
func idempotencyKey(c *gin.Context) (string, error) {
	key := c.GetHeader(middleware.HeaderIdempotencyKey)
	if !dto.ValidIdempotencyKey(key) {
		return "", apperror.Validation("Idempotency-Key must be at most 100 characters of [A-Za-z0-9_.-]")
	}
	return key, nil
}

// queryInt parses an optional integer query parameter. Out-of-range values
// are clamped by the services.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
