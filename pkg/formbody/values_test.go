package formbody_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/formbody"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("single value unwraps to scalar", func(t *testing.T) {
		t.Parallel()

		v := formbody.Normalize(url.Values{"name": {"alice"}})
		require.Equal(t, "alice", v["name"])
	})

	t.Run("repeated values stay a sequence", func(t *testing.T) {
		t.Parallel()

		v := formbody.Normalize(url.Values{"tag": {"go", "web"}})
		require.Equal(t, []string{"go", "web"}, v["tag"])
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		v := formbody.Normalize(url.Values{})
		require.Empty(t, v)
	})
}

func TestValuesAccessors(t *testing.T) {
	t.Parallel()

	v := formbody.Values{
		"name": "alice",
		"tag":  []string{"go", "web"},
		"n":    42,
	}

	t.Run("Has", func(t *testing.T) {
		t.Parallel()

		require.True(t, v.Has("name"))
		require.False(t, v.Has("missing"))
	})

	t.Run("Scalar", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "alice", v.Scalar("name"))
		require.Equal(t, "go", v.Scalar("tag"))
		require.Equal(t, "42", v.Scalar("n"))
		require.Equal(t, "", v.Scalar("missing"))
	})

	t.Run("All", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, []string{"alice"}, v.All("name"))
		require.Equal(t, []string{"go", "web"}, v.All("tag"))
		require.Nil(t, v.All("missing"))
	})

	t.Run("At", func(t *testing.T) {
		t.Parallel()

		got, ok := v.At("tag", 1)
		require.True(t, ok)
		require.Equal(t, "web", got)

		_, ok = v.At("tag", 2)
		require.False(t, ok)

		got, ok = v.At("name", 0)
		require.True(t, ok)
		require.Equal(t, "alice", got)
	})
}
