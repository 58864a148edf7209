// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
	"github.com/taibuivan/yomishelf/internal/platform/ctxutil"
	"github.com/taibuivan/yomishelf/internal/platform/respond"
)

/*
TestError maps wrapped application errors and hides unexpected ones.
*/
func TestError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"app error", apperr.NotFound("Listing"), http.StatusNotFound, "NOT_FOUND", "Listing not found"},
		{"wrapped app error", fmt.Errorf("listing: load: %w", apperr.NotFound("Listing")), http.StatusNotFound, "NOT_FOUND", "Listing not found"},
		{"plain error", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))
			recorder := httptest.NewRecorder()

			respond.Error(recorder, request, tt.err)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
