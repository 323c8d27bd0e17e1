package services_test

import (
	"testing"

	"tailorbook_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseMultiSelect(t *testing.T) {
	t.Run("joins options in submission order", func(t *testing.T) {
		got := services.CollapseMultiSelect([]string{"Round", "Pointed"})
		require.NotNil(t, got)
		assert.Equal(t, "Round, Pointed", *got)
	})

	t.Run("single option stored as-is", func(t *testing.T) {
		got := services.CollapseMultiSelect([]string{"Round"})
		require.NotNil(t, got)
		assert.Equal(t, "Round", *got)
	})

	t.Run("empty submission clears the field", func(t *testing.T) {
		assert.Nil(t, services.CollapseMultiSelect(nil))
		assert.Nil(t, services.CollapseMultiSelect([]string{}))
	})

	t.Run("blank entries are dropped", func(t *testing.T) {
		got := services.CollapseMultiSelect([]string{" ", "Front", ""})
		require.NotNil(t, got)
		assert.Equal(t, "Front", *got)

		assert.Nil(t, services.CollapseMultiSelect([]string{"", "   "}))
	})
}

func TestNormalizeSuitCount(t *testing.T) {
	assert.Equal(t, 4, services.NormalizeSuitCount("4"))
	assert.Equal(t, 3, services.NormalizeSuitCount(" 3 "))
	assert.Equal(t, 1, services.NormalizeSuitCount("abc"))
	assert.Equal(t, 1, services.NormalizeSuitCount(""))
	assert.Equal(t, 1, services.NormalizeSuitCount("0"))
	assert.Equal(t, 1, services.NormalizeSuitCount("-2"))
}

func TestNormalizePrice(t *testing.T) {
	assert.Equal(t, int64(250), services.NormalizePrice("250"))
	assert.Equal(t, int64(0), services.NormalizePrice("abc"))
	assert.Equal(t, int64(0), services.NormalizePrice(""))
	assert.Equal(t, int64(0), services.NormalizePrice("-5"))
}
