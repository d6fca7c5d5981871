package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dustin/vibewatch-backend/config"
	"github.com/dustin/vibewatch-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-catalog",
	})
	require.NoError(t, err)
	return log
}

func strPtr(s string) *string {
	return &s
}

func TestIndex_Search(t *testing.T) {
	log := testLogger(t)

	docs := []Document{
		{ID: 1, Title: "Toy Story", Overview: "Toys come to life", Genres: "Animation", Poster: strPtr("http://x/ts.jpg")},
		{ID: 2, Title: "Alien", Overview: "Horror in space", Genres: "Horror", Poster: nil},
		{ID: 3, Title: "Up", Overview: "Balloons and adventure", Genres: "Animation", Poster: strPtr("http://x/up.jpg")},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}

	index := NewIndex(log)
	index.LoadEntries(docs, vectors)

	t.Run("Returns results ordered by similarity", func(t *testing.T) {
		results, err := index.Search([]float64{1, 0, 0}, 3)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "Toy Story", results[0].Title)
		assert.Equal(t, "Up", results[1].Title)
		assert.Equal(t, "Alien", results[2].Title)
	})

	t.Run("Returns min of k and catalog size", func(t *testing.T) {
		results, err := index.Search([]float64{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)

		results, err = index.Search([]float64{1, 0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("Zero or negative k returns empty", func(t *testing.T) {
		results, err := index.Search([]float64{1, 0, 0}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = index.Search([]float64{1, 0, 0}, -1)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Preserves poster metadata", func(t *testing.T) {
		results, err := index.Search([]float64{0, 1, 0}, 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Alien", results[0].Title)
		assert.Nil(t, results[0].Poster)
	})
}

func TestIndex_EmptyCatalog(t *testing.T) {
	index := NewIndex(testLogger(t))
	index.LoadEntries(nil, nil)

	results, err := index.Search([]float64{1, 0, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndex_NotLoaded(t *testing.T) {
	index := NewIndex(testLogger(t))

	assert.False(t, index.Loaded())

	_, err := index.Search([]float64{1, 0, 0}, 5)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
}

func TestIndex_LoadFromFile(t *testing.T) {
	log := testLogger(t)

	t.Run("Loads a valid index file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog_index.json")
		content := `[
			{"id": 1, "title": "Toy Story", "overview": "Toys come to life", "genres": "Animation", "poster": "http://x/ts.jpg", "embedding": [1, 0]},
			{"id": 2, "title": "Alien", "overview": "Horror in space", "genres": "Horror", "poster": null, "embedding": [0, 1]}
		]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		index := NewIndex(log)
		err := index.LoadFromFile(path)

		require.NoError(t, err)
		assert.True(t, index.Loaded())
		assert.Equal(t, 2, index.Size())

		results, err := index.Search([]float64{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Toy Story", results[0].Title)
		require.NotNil(t, results[0].Poster)
		assert.Equal(t, "http://x/ts.jpg", *results[0].Poster)
	})

	t.Run("Missing file maps to index unavailable", func(t *testing.T) {
		index := NewIndex(log)
		err := index.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))

		assert.ErrorIs(t, err, ErrIndexUnavailable)
		assert.False(t, index.Loaded())
	})

	t.Run("Malformed file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

		index := NewIndex(log)
		err := index.LoadFromFile(path)

		assert.Error(t, err)
		assert.False(t, index.Loaded())
	})
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{1, 2}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}
