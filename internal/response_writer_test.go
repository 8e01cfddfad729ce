package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("tracks status and size", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		w.WriteHeader(http.StatusCreated)
		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)

		require.Equal(t, http.StatusCreated, w.Status())
		require.Equal(t, int64(5), w.Size())
		require.True(t, w.Written())
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("implicit 200 on first write", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		_, err := w.Write([]byte("x"))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("repeated WriteHeader ignored", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
		require.Equal(t, http.StatusTeapot, w.Status())
	})

	t.Run("before-write hooks run once in order", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		var calls []string
		w.OnBeforeWrite(func() { calls = append(calls, "first") })
		w.OnBeforeWrite(func() { calls = append(calls, "second") })

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("x"))
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)

		require.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("hooks can still set headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)
		w.OnBeforeWrite(func() {
			w.Header().Set("X-Hooked", "yes")
		})

		_, err := w.Write([]byte("body"))
		require.NoError(t, err)
		require.Equal(t, "yes", rec.Header().Get("X-Hooked"))
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)
		require.Equal(t, http.ResponseWriter(rec), w.Unwrap())
	})
}
