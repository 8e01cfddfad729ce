package formbody_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/formbody"
)

func TestDecodeURLEncoded(t *testing.T) {
	t.Parallel()

	t.Run("decodes form post", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=alice&tag=go&tag=web"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		v, err := formbody.DecodeURLEncoded(r)
		require.NoError(t, err)
		require.Equal(t, "alice", v["name"])
		require.Equal(t, []string{"go", "web"}, v["tag"])
	})

	t.Run("tolerates charset parameter", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

		v, err := formbody.DecodeURLEncoded(r)
		require.NoError(t, err)
		require.Equal(t, "1", v["a"])
	})

	t.Run("passes through GET", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/?a=1", nil)
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		v, err := formbody.DecodeURLEncoded(r)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("passes through other content types", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")

		v, err := formbody.DecodeURLEncoded(r)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=%zz"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := formbody.DecodeURLEncoded(r)
		var derr *formbody.DecodeError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, http.StatusBadRequest, derr.StatusCode())
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes object body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alice","n":2}`))
		r.Header.Set("Content-Type", "application/json")

		v, err := formbody.DecodeJSON(r)
		require.NoError(t, err)
		require.Equal(t, "alice", v["name"])
		require.Equal(t, float64(2), v["n"])
	})

	t.Run("rejects non-object body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2]`))
		r.Header.Set("Content-Type", "application/json")

		_, err := formbody.DecodeJSON(r)
		var derr *formbody.DecodeError
		require.ErrorAs(t, err, &derr)
	})

	t.Run("passes through other content types", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		v, err := formbody.DecodeJSON(r)
		require.NoError(t, err)
		require.Nil(t, v)
	})
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain body"))
	r.Header.Set("Content-Type", "text/plain")

	text, ok, err := formbody.DecodeText(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "plain body", text)
}

func multipartBody(t *testing.T, fields url.Values, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, vals := range fields {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestDecodeMultipart(t *testing.T) {
	t.Parallel()

	t.Run("decodes fields and streams files to disk", func(t *testing.T) {
		t.Parallel()

		body, ct := multipartBody(t, url.Values{"name": {"alice"}}, map[string]string{"avatar": "png-bytes"})
		r := httptest.NewRequest(http.MethodPost, "/", body)
		r.Header.Set("Content-Type", ct)

		values, files, err := formbody.DecodeMultipart(r, &formbody.MultipartConfig{TempDir: t.TempDir()})
		require.NoError(t, err)
		require.Equal(t, "alice", values["name"])

		f := files.First("avatar")
		require.NotNil(t, f)
		require.Equal(t, "avatar.txt", f.Name)
		require.Equal(t, int64(len("png-bytes")), f.Size)

		data, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(data))

		require.NoError(t, files.RemoveAll())
		_, err = os.Stat(f.Path)
		require.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("passes through non-multipart", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		values, files, err := formbody.DecodeMultipart(r, nil)
		require.NoError(t, err)
		require.Nil(t, values)
		require.Nil(t, files)
	})

	t.Run("oversized file fails with 413 and removes temp files", func(t *testing.T) {
		t.Parallel()

		tempDir := t.TempDir()
		body, ct := multipartBody(t, nil, map[string]string{"f": strings.Repeat("x", 64)})
		r := httptest.NewRequest(http.MethodPost, "/", body)
		r.Header.Set("Content-Type", ct)

		_, _, err := formbody.DecodeMultipart(r, &formbody.MultipartConfig{TempDir: tempDir, MaxFileSize: 16})
		var derr *formbody.DecodeError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, http.StatusRequestEntityTooLarge, derr.StatusCode())

		entries, err := os.ReadDir(tempDir)
		require.NoError(t, err)
		require.Empty(t, entries, "failed decode must not leave temp files")
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not multipart"))
		r.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		_, _, err := formbody.DecodeMultipart(r, nil)
		var derr *formbody.DecodeError
		require.ErrorAs(t, err, &derr)
	})
}

func TestConfigFormEncoding(t *testing.T) {
	t.Parallel()

	require.Equal(t, formbody.EncodingURLEncoded, formbody.DefaultConfig().FormEncoding())
	require.Equal(t, formbody.EncodingFormData, formbody.Config{Multipart: &formbody.MultipartConfig{}}.FormEncoding())
	require.Equal(t, "application/x-www-form-urlencoded", formbody.EncodingURLEncoded.ContentType())
	require.Equal(t, "multipart/form-data", formbody.EncodingFormData.ContentType())
}
