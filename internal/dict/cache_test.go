package dict

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_PutGet(t *testing.T) {
	cache := testCache(t)

	entries := []Entry{{
		Slug:     "食べる",
		IsCommon: true,
		JLPT:     []string{"jlpt-n5"},
		Senses: []Sense{{
			EnglishDefinitions: []string{"to eat"},
			PartsOfSpeech:      []string{"Ichidan verb"},
		}},
	}}

	require.NoError(t, cache.Put("食べる", entries))

	got, ok, err := cache.Get("食べる")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entries, got)
}

func TestCache_GetMiss(t *testing.T) {
	cache := testCache(t)

	_, ok, err := cache.Get("ない")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EmptyResultIsAHit(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.Put("ぬがが", nil))

	got, ok, err := cache.Get("ぬがが")
	require.NoError(t, err)
	assert.True(t, ok, "a cached empty result should still be a hit")
	assert.Empty(t, got)
}

func TestCache_PutReplaces(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.Put("猫", []Entry{{Slug: "old"}}))
	require.NoError(t, cache.Put("猫", []Entry{{Slug: "new"}}))

	got, ok, err := cache.Get("猫")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Slug)
}

func TestCache_Recent(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.Put("一", []Entry{{Slug: "一"}}))
	require.NoError(t, cache.Put("二", []Entry{{Slug: "二"}}))
	require.NoError(t, cache.Put("三", []Entry{{Slug: "三"}}))

	items, err := cache.Recent(2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	keywords := []string{items[0].Keyword, items[1].Keyword}
	assert.NotContains(t, keywords, "一", "oldest lookup should fall outside the limit")
}
