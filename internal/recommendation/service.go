package recommendation

import (
	"context"
	"fmt"

	"github.com/dustin/vibewatch-backend/pkg/logger"
)

const (
	defaultK = 5
	maxK     = 50
)

// service implements the Service interface as a strictly sequential
// pipeline: retrieve -> prompt -> generate -> recover -> enrich
type service struct {
	retriever Retriever
	model     ChatModel
	logger    *logger.Logger
}

// NewService creates the recommendation pipeline facade
func NewService(retriever Retriever, model ChatModel, log *logger.Logger) Service {
	return &service{
		retriever: retriever,
		model:     model,
		logger:    log.WithComponent("recommendation-service"),
	}
}

func (s *service) Recommend(ctx context.Context, query string, k int) ([]Recommendation, error) {
	if k < 1 {
		k = defaultK
	}
	if k > maxK {
		k = maxK
	}

	s.logger.Info(fmt.Sprintf("Generating recommendations (k=%d)", k))

	candidates, err := s.retriever.Retrieve(ctx, query, k)
	if err != nil {
		s.logger.Error("Failed to retrieve candidates: " + err.Error())
		return nil, &RetrievalError{Err: err}
	}

	system, user := BuildPrompt(query, candidates)

	raw, err := s.model.Complete(ctx, system, user)
	if err != nil {
		s.logger.Error("Generative call failed: " + err.Error())
		return nil, &GenerationError{Err: err}
	}

	// Output-shape problems are absorbed here, never surfaced as errors
	result := Recover(raw, candidates)
	if result.Degraded() {
		s.logger.Warn(fmt.Sprintf("Model output unparsable, fell back to top %d candidates", len(result.Drafts)))
	} else {
		s.logger.Debug(fmt.Sprintf("Recovered %d drafts via %s", len(result.Drafts), result.Stage))
	}

	recs := Enrich(result.Drafts, candidates)

	s.logger.Info(fmt.Sprintf("Returning %d recommendations (stage=%s)", len(recs), result.Stage))
	return recs, nil
}
