package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formpage/pkg/validator"
)

func TestRules(t *testing.T) {
	t.Parallel()

	t.Run("Required", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, validator.Required()("x"))
		require.NotEmpty(t, validator.Required()(""))
		require.NotEmpty(t, validator.Required()("   "))
	})

	t.Run("MaxLen counts runes", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, validator.MaxLen(3)("abc"))
		require.NotEmpty(t, validator.MaxLen(3)("abcd"))
		require.Empty(t, validator.MaxLen(3)("äöü"))
	})

	t.Run("MinLen passes empty", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, validator.MinLen(3)(""))
		require.NotEmpty(t, validator.MinLen(3)("ab"))
		require.Empty(t, validator.MinLen(3)("abc"))
	})

	t.Run("Email", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, validator.Email()("a@b.com"))
		require.Empty(t, validator.Email()(""))
		require.NotEmpty(t, validator.Email()("not-an-email"))
	})

	t.Run("OneOf", func(t *testing.T) {
		t.Parallel()

		rule := validator.OneOf("s", "m", "l")
		require.Empty(t, rule("m"))
		require.Empty(t, rule(""))
		require.NotEmpty(t, rule("xl"))
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("nil on success", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, validator.Apply("name", "alice", validator.Required(), validator.MaxLen(10)))
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		errs := validator.Apply("name", "", validator.Required(), validator.MinLen(3))
		require.True(t, errs.Has("name"))
		require.Len(t, errs["name"], 1)
	})

	t.Run("error message is deterministic", func(t *testing.T) {
		t.Parallel()

		errs := validator.ValidationErrors{}
		errs.Add("b", "second")
		errs.Add("a", "first")
		require.Equal(t, "a: first; b: second", errs.Error())
	})

	t.Run("First", func(t *testing.T) {
		t.Parallel()

		errs := validator.ValidationErrors{}
		errs.Add("a", "one")
		errs.Add("a", "two")
		require.Equal(t, "one", errs.First("a"))
		require.Equal(t, "", errs.First("missing"))
	})
}
