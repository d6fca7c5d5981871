package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/dustin/vibewatch-backend/pkg/logger"
)

// ErrIndexUnavailable is returned when a search is attempted before an index
// has been loaded. This is a configuration error (the offline build step was
// never run or the path is wrong) and is not retryable.
var ErrIndexUnavailable = errors.New("catalog index not loaded: run the embedding build step first")

// Index is an immutable in-memory similarity index over catalog documents.
// It is loaded once at startup and is safe for unbounded concurrent readers;
// no write path exists after load.
type Index struct {
	entries []indexEntry
	loaded  bool
	logger  *logger.Logger
}

// NewIndex creates an empty, unloaded index
func NewIndex(log *logger.Logger) *Index {
	return &Index{
		logger: log.WithComponent("catalog-index"),
	}
}

// LoadFromFile reads a pre-built JSON index (one entry per document, each
// carrying its embedding vector) into memory
func (idx *Index) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	var entries []indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse catalog index '%s': %v", path, err)
	}

	idx.entries = entries
	idx.loaded = true
	idx.logger.Info(fmt.Sprintf("Loaded catalog index with %d documents from %s", len(entries), path))

	return nil
}

// LoadEntries installs documents directly, primarily for tests
func (idx *Index) LoadEntries(docs []Document, vectors [][]float64) {
	entries := make([]indexEntry, 0, len(docs))
	for i, doc := range docs {
		var vec []float64
		if i < len(vectors) {
			vec = vectors[i]
		}
		entries = append(entries, indexEntry{Document: doc, Embedding: vec})
	}
	idx.entries = entries
	idx.loaded = true
}

// Size returns the number of indexed documents
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Loaded reports whether an index has been installed
func (idx *Index) Loaded() bool {
	return idx.loaded
}

// Search returns up to k documents ordered by descending cosine similarity
// to the query vector. An empty catalog yields an empty result, never an
// error. Tie order between equal scores follows index order and callers must
// not depend on it.
func (idx *Index) Search(vector []float64, k int) ([]Document, error) {
	if !idx.loaded {
		return nil, ErrIndexUnavailable
	}
	if k <= 0 || len(idx.entries) == 0 {
		return []Document{}, nil
	}

	type scored struct {
		doc   Document
		score float64
	}

	results := make([]scored, 0, len(idx.entries))
	for _, entry := range idx.entries {
		results = append(results, scored{
			doc:   entry.Document,
			score: cosineSimilarity(vector, entry.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}

	docs := make([]Document, 0, k)
	for _, r := range results[:k] {
		docs = append(docs, r.doc)
	}

	return docs, nil
}

// cosineSimilarity returns 0 for mismatched or zero-length vectors so a
// malformed entry ranks last instead of failing the search
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
