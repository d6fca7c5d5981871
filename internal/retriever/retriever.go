package retriever

import (
	"context"
	"fmt"

	"github.com/dustin/vibewatch-backend/internal/catalog"
	"github.com/dustin/vibewatch-backend/internal/embedding"
	"github.com/dustin/vibewatch-backend/pkg/logger"
)

// Retriever embeds a free-text query and returns the nearest catalog
// documents in ranked order
type Retriever struct {
	index    *catalog.Index
	embedder embedding.EmbeddingClient
	logger   *logger.Logger
}

// NewRetriever creates a retriever over a loaded catalog index
func NewRetriever(index *catalog.Index, embedder embedding.EmbeddingClient, log *logger.Logger) *Retriever {
	return &Retriever{
		index:    index,
		embedder: embedder,
		logger:   log.WithComponent("retriever"),
	}
}

// Retrieve returns up to k documents ordered by descending similarity to the
// query. Fewer than k documents are returned when the catalog is smaller
// than k; an empty catalog yields an empty sequence.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]catalog.Document, error) {
	if !r.index.Loaded() {
		return nil, catalog.ErrIndexUnavailable
	}
	if k <= 0 || r.index.Size() == 0 {
		return []catalog.Document{}, nil
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	docs, err := r.index.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	r.logger.Debug(fmt.Sprintf("Retrieved %d candidates for query (k=%d)", len(docs), k))
	return docs, nil
}
