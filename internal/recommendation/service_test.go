package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/dustin/vibewatch-backend/config"
	"github.com/dustin/vibewatch-backend/internal/catalog"
	"github.com/dustin/vibewatch-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&config.LoggingConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-recommendation",
	})
	require.NoError(t, err)
	return log
}

type mockRetriever struct {
	docs     []catalog.Document
	err      error
	lastK    int
	lastText string
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, k int) ([]catalog.Document, error) {
	m.lastK = k
	m.lastText = query
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mockChatModel struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockChatModel) Complete(ctx context.Context, system, user string) (string, error) {
	m.lastSystem = system
	m.lastUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func fiveCandidates() []catalog.Document {
	return []catalog.Document{
		{ID: 1, Title: "Toy Story", Overview: "Toys come to life", Genres: "Animation", Poster: strPtr("http://x/ts.jpg")},
		{ID: 2, Title: "Up", Overview: "Balloons", Genres: "Animation", Poster: strPtr("http://x/up.jpg")},
		{ID: 3, Title: "Coco", Overview: "Music and memory", Genres: "Animation", Poster: nil},
		{ID: 4, Title: "Alien", Overview: "Space horror", Genres: "Horror", Poster: strPtr("http://x/al.jpg")},
		{ID: 5, Title: "Heat", Overview: "Heist drama", Genres: "Crime", Poster: strPtr("http://x/he.jpg")},
	}
}

func TestService_Recommend(t *testing.T) {
	log := newTestLogger(t)

	t.Run("End to end with prose-wrapped model output", func(t *testing.T) {
		retriever := &mockRetriever{docs: fiveCandidates()}
		model := &mockChatModel{
			response: "Great vibe! Here you go:\n" +
				`[{"title": "Toy Story", "reason": "A warm friendship story the whole family enjoys"}]`,
		}
		svc := NewService(retriever, model, log)

		recs, err := svc.Recommend(context.Background(), "family movie about friendship", 5)

		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Toy Story", recs[0].Title)
		assert.Equal(t, "A warm friendship story the whole family enjoys", recs[0].Reason)
		require.NotNil(t, recs[0].Poster)
		assert.Equal(t, "http://x/ts.jpg", *recs[0].Poster)

		// The prompt carried the query and candidates to the model
		assert.Contains(t, model.lastUser, "family movie about friendship")
		assert.Contains(t, model.lastUser, "Toy Story")
		assert.Equal(t, 5, retriever.lastK)
	})

	t.Run("Unparsable output falls back to top-3 with posters", func(t *testing.T) {
		retriever := &mockRetriever{docs: fiveCandidates()}
		model := &mockChatModel{response: "I'm sorry, something went sideways and here is no JSON at all"}
		svc := NewService(retriever, model, log)

		recs, err := svc.Recommend(context.Background(), "anything", 5)

		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "Toy Story", recs[0].Title)
		assert.Equal(t, "Up", recs[1].Title)
		assert.Equal(t, "Coco", recs[2].Title)
		for _, rec := range recs {
			assert.Equal(t, FallbackReason, rec.Reason)
		}

		// Posters come from the candidates unmodified, including the nil one
		require.NotNil(t, recs[0].Poster)
		assert.Equal(t, "http://x/ts.jpg", *recs[0].Poster)
		require.NotNil(t, recs[1].Poster)
		assert.Equal(t, "http://x/up.jpg", *recs[1].Poster)
		assert.Nil(t, recs[2].Poster)
	})

	t.Run("Retrieval failure surfaces as wrapped error", func(t *testing.T) {
		cause := errors.New("embedding provider down")
		retriever := &mockRetriever{err: cause}
		model := &mockChatModel{response: "[]"}
		svc := NewService(retriever, model, log)

		_, err := svc.Recommend(context.Background(), "anything", 5)

		require.Error(t, err)
		var retrievalErr *RetrievalError
		assert.ErrorAs(t, err, &retrievalErr)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Generation transport failure surfaces as wrapped error", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		retriever := &mockRetriever{docs: fiveCandidates()}
		model := &mockChatModel{err: cause}
		svc := NewService(retriever, model, log)

		_, err := svc.Recommend(context.Background(), "anything", 5)

		require.Error(t, err)
		var generationErr *GenerationError
		assert.ErrorAs(t, err, &generationErr)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("k below 1 defaults, k above bound clamps", func(t *testing.T) {
		retriever := &mockRetriever{docs: fiveCandidates()}
		model := &mockChatModel{response: "[]"}
		svc := NewService(retriever, model, log)

		_, err := svc.Recommend(context.Background(), "anything", 0)
		require.NoError(t, err)
		assert.Equal(t, defaultK, retriever.lastK)

		_, err = svc.Recommend(context.Background(), "anything", 500)
		require.NoError(t, err)
		assert.Equal(t, maxK, retriever.lastK)
	})

	t.Run("Empty retrieval still runs and yields empty result on fallback", func(t *testing.T) {
		retriever := &mockRetriever{docs: []catalog.Document{}}
		model := &mockChatModel{response: "no structure here"}
		svc := NewService(retriever, model, log)

		recs, err := svc.Recommend(context.Background(), "anything", 5)

		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
