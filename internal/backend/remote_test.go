package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteFor(t *testing.T, handler http.HandlerFunc) *Remote {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRemote(srv.URL, zerolog.Nop())
}

func TestRemoteSubmit(t *testing.T) {
	t.Run("decodes counts", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			var req Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotEmpty(t, req.ID)
			assert.Contains(t, req.QASM, "qreg q[2];")

			json.NewEncoder(w).Encode(map[string]any{
				"counts": map[string]int{"00": 510, "11": 490},
			})
		})

		counts, err := remote.Submit(context.Background(), NewRequest(bellQASM, 1000))
		require.NoError(t, err)
		assert.Equal(t, 510, counts["00"])
		assert.Equal(t, 1000, counts.Total())
	})

	t.Run("5xx is transient", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := remote.Submit(context.Background(), NewRequest(bellQASM, 100))
		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("4xx is fatal", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := remote.Submit(context.Background(), NewRequest(bellQASM, 100))
		require.Error(t, err)
		assert.False(t, IsTransient(err))
	})

	t.Run("error envelope is honored", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{
					"code":      "device_busy",
					"message":   "queue is full",
					"transient": true,
				},
			})
		})

		_, err := remote.Submit(context.Background(), NewRequest(bellQASM, 100))
		require.Error(t, err)
		assert.True(t, IsTransient(err))
		var be *Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "device_busy", be.Code)
	})

	t.Run("count sum mismatch is fatal", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"counts": map[string]int{"00": 1},
			})
		})

		_, err := remote.Submit(context.Background(), NewRequest(bellQASM, 100))
		require.Error(t, err)
		assert.False(t, IsTransient(err))
	})

	t.Run("deadline expiry is transient", func(t *testing.T) {
		remote := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			json.NewEncoder(w).Encode(map[string]any{"counts": map[string]int{}})
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := remote.Submit(ctx, NewRequest(bellQASM, 100))
		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})
}
