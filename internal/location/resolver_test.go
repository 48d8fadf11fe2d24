package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewResolver(registry.Default())

	t.Run("exact display name", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Thunder Horse PDQ")
		require.True(t, ok)
		assert.Equal(t, "Thunder Horse PDQ", f.DisplayName)
	})

	t.Run("case-insensitive exact match", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("thunder horse pdq")
		require.True(t, ok)
		assert.Equal(t, "Thunder Horse PDQ", f.DisplayName)
	})

	t.Run("alias substring in raw string", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Thunderhorse field ops")
		require.True(t, ok)
		assert.Equal(t, "Thunder Horse PDQ", f.DisplayName)
	})

	t.Run("raw string as substring of alias", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Mad Dog SPAR")
		require.True(t, ok)
		assert.Equal(t, "Mad Dog", f.DisplayName)
	})

	t.Run("short alias matches exactly only", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("OBH")
		require.True(t, ok)
		assert.Equal(t, "Ocean Blackhornet", f.DisplayName)

		// "OBH" inside an unrelated word must not fire.
		_, ok = r.Resolve("Sobhavati")
		assert.False(t, ok)
	})

	t.Run("unresolved returns false not error", func(t *testing.T) {
		t.Parallel()
		_, ok := r.Resolve("Completely Unknown Rig")
		assert.False(t, ok)
		_, ok = r.Resolve("")
		assert.False(t, ok)
		_, ok = r.Resolve("   ")
		assert.False(t, ok)
	})
}

func TestResolveRequiredToken(t *testing.T) {
	t.Parallel()

	r := NewResolver(registry.Default())

	t.Run("bare name resolves to the production entry", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Mad Dog")
		require.True(t, ok)
		assert.Equal(t, "Mad Dog", f.DisplayName)
	})

	t.Run("drilling token resolves to the drilling entry", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Mad Dog Drilling")
		require.True(t, ok)
		assert.Equal(t, "Mad Dog (Drilling)", f.DisplayName)
	})

	t.Run("qualifier-bearing display name resolves to itself", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Mad Dog (Drilling)")
		require.True(t, ok)
		assert.Equal(t, "Mad Dog (Drilling)", f.DisplayName)
	})

	t.Run("drill rig phrasing still carries the token", func(t *testing.T) {
		t.Parallel()
		f, ok := r.Resolve("Mad Dog drill rig support")
		require.True(t, ok)
		assert.Equal(t, "Mad Dog (Drilling)", f.DisplayName)
	})
}

func TestResolveTokenMatch(t *testing.T) {
	t.Parallel()

	r := NewResolver(registry.Default())

	cases := []struct {
		raw  string
		want string
	}{
		{"Na Kika", "Na Kika"},
		{"NaKika", "Na Kika"},
		{"NA KIKA", "Na Kika"},
		{"na-kika platform", "Na Kika"},
		{"Stena IceMAX", "Stena IceMAX"},
		{"STENA ICEMAX drillship", "Stena IceMAX"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			f, ok := r.Resolve(tc.raw)
			require.True(t, ok, "expected %q to resolve", tc.raw)
			assert.Equal(t, tc.want, f.DisplayName)
		})
	}
}
