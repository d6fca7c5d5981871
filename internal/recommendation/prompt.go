package recommendation

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/vibewatch-backend/internal/catalog"
)

const systemPrompt = "You are VibeWatch, a movie recommendation assistant. " +
	"Based on the user's CURRENT CONTEXT (mood, social setting, location, attention level, etc.), " +
	"choose up to 10 movies (ideally 8-10) from the given candidate list. " +
	"Explain briefly (1-2 sentences) why each fits the context. " +
	"Do NOT hallucinate titles outside the candidate list."

const userPromptFormat = "USER CONTEXT (free text):\n%s\n\n" +
	"CANDIDATE MOVIES (JSON list of dicts):\n%s\n\n" +
	"Return JSON:\n[\n  {\"title\": \"...\", \"reason\": \"...\"},\n  ...\n]"

// promptCandidate is the candidate view sent to the model. Poster URLs and
// internal ids are deliberately excluded: the model does not need them to
// select, and they must not be hallucinated back.
type promptCandidate struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Genres   string `json:"genres"`
}

// BuildPrompt renders the fixed system instructions and the user message
// carrying the raw query verbatim plus the serialized candidates. Pure and
// deterministic given identical inputs.
func BuildPrompt(query string, candidates []catalog.Document) (system string, user string) {
	views := make([]promptCandidate, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, promptCandidate{
			Title:    c.Title,
			Overview: c.Overview,
			Genres:   c.Genres,
		})
	}

	// Marshal of plain strings cannot fail; fall back to an empty list so
	// the prompt shape stays intact regardless
	serialized, err := json.Marshal(views)
	if err != nil {
		serialized = []byte("[]")
	}

	return systemPrompt, fmt.Sprintf(userPromptFormat, query, string(serialized))
}
