package recommendation

import (
	"context"

	"github.com/dustin/vibewatch-backend/internal/catalog"
)

// Draft is a title/reason pair asserted by the model before enrichment.
// The title is model-asserted text and may be paraphrased, truncated, or
// hallucinated relative to any catalog title.
type Draft struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Recommendation is the final enriched result returned to callers. Poster is
// a pointer so "no match" serializes as an explicit null, never a missing key.
type Recommendation struct {
	Title  string  `json:"title"`
	Reason string  `json:"reason"`
	Poster *string `json:"poster"`
}

// Retriever is the pipeline's inbound candidate source
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]catalog.Document, error)
}

// ChatModel is the generative collaborator: single-shot system/user prompt
// in, raw free text out
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service defines the interface for the recommendation pipeline
type Service interface {
	Recommend(ctx context.Context, query string, k int) ([]Recommendation, error)
}
