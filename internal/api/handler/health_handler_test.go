package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	h := NewHealthHandler(map[string]Check{"mongodb": ok, "redis": ok})
	c, rec := newContext(http.MethodGet, "/health/ready", "")
	require.NoError(t, h.Readiness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","dependencies":{"mongodb":{"status":"ok"},"redis":{"status":"ok"}}}`, rec.Body.String())

	h = NewHealthHandler(map[string]Check{"mongodb": ok, "redis": down})
	c, rec = newContext(http.MethodGet, "/health/ready", "")
	require.NoError(t, h.Readiness(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","dependencies":{"mongodb":{"status":"ok"},"redis":{"status":"unhealthy","error":"connection refused"}}}`, rec.Body.String())
}

func TestLiveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "")
	require.NoError(t, NewHealthHandler(nil).Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
