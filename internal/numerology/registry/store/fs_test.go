package store_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numerus/internal/numerology/engine"
	"numerus/internal/numerology/models"
	"numerus/internal/numerology/registry"
	"numerus/internal/numerology/registry/store"
	"numerus/pkg/platform/sentinel"
)

var builtinSystems = []string{
	"arabic_abjad",
	"chaldean",
	"greek_isopsephy",
	"hebrew_gematria",
	"pythagorean",
	"vietnamese_latin",
}

func TestEmbedded_AllSystemsCompile(t *testing.T) {
	src := store.Embedded()
	ctx := context.Background()

	for _, id := range builtinSystems {
		t.Run(id, func(t *testing.T) {
			def, err := src.Load(ctx, id)
			require.NoError(t, err)
			rs, err := registry.Compile(id, def)
			require.NoError(t, err)
			assert.Equal(t, id, rs.ID())
			assert.NotEmpty(t, rs.Name())
		})
	}
}

func TestEmbedded_List(t *testing.T) {
	systems, err := store.Embedded().List(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(systems))
	for _, s := range systems {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.Name, s.ID)
	}
	assert.ElementsMatch(t, builtinSystems, ids)
}

func TestEmbedded_SystemsDifferOnNameNumbers(t *testing.T) {
	src := store.Embedded()
	ctx := context.Background()
	analyze := func(id, name string) *models.AnalysisResult {
		def, err := src.Load(ctx, id)
		require.NoError(t, err)
		rs, err := registry.Compile(id, def)
		require.NoError(t, err)
		res, err := engine.Analyze(engine.Input{FullName: name, DateOfBirth: "2000-07-15", TargetYear: 2025}, rs)
		require.NoError(t, err)
		return res
	}

	pyth := analyze("pythagorean", "Nguyen Van A")
	chal := analyze("chaldean", "Nguyen Van A")
	assert.Equal(t, 7, pyth.Numbers.Expression)
	assert.Equal(t, 11, chal.Numbers.Expression, "38 reduces to the master 11")
	assert.Equal(t, pyth.Numbers.LifePath, chal.Numbers.LifePath)

	viet := analyze("vietnamese_latin", "Đỗ")
	assert.Equal(t, 1, viet.Numbers.Expression, "Đ=4 plus O=6 is 10")

	greek := analyze("greek_isopsephy", "Ιωάννης")
	assert.Equal(t, 3, greek.Numbers.Expression)

	hebrew := analyze("hebrew_gematria", "דוד")
	assert.Equal(t, 5, hebrew.Numbers.Expression, "4+6+4 is 14")
}

func TestFSSource_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.yaml":   {Data: []byte("name: Custom\nchar_map:\n  \"a\": 1\n  \"b\": 2\n")},
		"broken.yaml":   {Data: []byte("name: [unclosed\n")},
		"nested/x.yaml": {Data: []byte("name: Nested\n")},
	}
	src := store.NewFSSource(fsys)
	ctx := context.Background()

	t.Run("decodes yaml", func(t *testing.T) {
		def, err := src.Load(ctx, "custom")
		require.NoError(t, err)
		assert.Equal(t, "Custom", def.Name)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, def.CharMap)
		assert.Nil(t, def.KeepMaster)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := src.Load(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("ids cannot address other paths", func(t *testing.T) {
		for _, id := range []string{"nested/x", "../custom", "", "custom.yaml"} {
			_, err := src.Load(ctx, id)
			assert.ErrorIs(t, err, sentinel.ErrNotFound, id)
		}
	})

	t.Run("invalid yaml is malformed", func(t *testing.T) {
		_, err := src.Load(ctx, "broken")
		assert.ErrorIs(t, err, models.ErrMalformedRuleSet)
	})
}
