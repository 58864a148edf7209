// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readinessBody struct {
	Data struct {
		Status string        `json:"status"`
		Checks []checkResult `json:"checks"`
	} `json:"data"`
}

func probe(t *testing.T, handler http.HandlerFunc) (int, readinessBody) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var body readinessBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHealthHandlers(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	healthy := func(context.Context) error { return nil }

	t.Run("liveness", func(t *testing.T) {
		liveness, _ := NewHealthHandlers(HealthDependencies{}, logger)
		status, body := probe(t, liveness)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body.Data.Status)
	})

	t.Run("ready", func(t *testing.T) {
		_, readiness := NewHealthHandlers(HealthDependencies{Checks: []HealthCheck{
			{Name: "postgres", Check: healthy},
			{Name: "redis", Check: healthy},
		}}, logger)

		status, body := probe(t, readiness)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ready", body.Data.Status)
		assert.Len(t, body.Data.Checks, 2)
	})

	t.Run("degraded", func(t *testing.T) {
		_, readiness := NewHealthHandlers(HealthDependencies{Checks: []HealthCheck{
			{Name: "postgres", Check: healthy},
			{Name: "snapshot", Check: func(context.Context) error { return errors.New("no snapshot") }},
		}}, logger)

		status, body := probe(t, readiness)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body.Data.Status)
		require.Len(t, body.Data.Checks, 2)
		assert.True(t, body.Data.Checks[0].IsOK)
		assert.False(t, body.Data.Checks[1].IsOK)
		assert.Equal(t, "no snapshot", body.Data.Checks[1].Error)
	})
}
