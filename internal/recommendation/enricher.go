package recommendation

import (
	"strings"

	"github.com/dustin/vibewatch-backend/internal/catalog"
)

// Enrich attaches authoritative poster URLs to model-asserted drafts by
// matching titles against this request's retrieved candidates only, which
// keeps every match provenance-traceable to something actually retrieved.
// The output has the same length and order as drafts.
//
// Matching is exact (case-sensitive) first, then case-insensitive
// bidirectional substring containment scanning candidates in retrieval order
// with the first hit winning, so higher-ranked candidates are favored. The
// containment fallback is deliberately naive (short titles like "Up" can
// over-match); keep it as-is, fixtures depend on the behavior.
func Enrich(drafts []Draft, candidates []catalog.Document) []Recommendation {
	posterByTitle := make(map[string]*string, len(candidates))
	for _, doc := range candidates {
		// First occurrence wins so duplicate titles resolve to the
		// higher-ranked candidate
		if _, seen := posterByTitle[doc.Title]; !seen {
			posterByTitle[doc.Title] = doc.Poster
		}
	}

	recs := make([]Recommendation, 0, len(drafts))
	for _, draft := range drafts {
		rec := Recommendation{
			Title:  draft.Title,
			Reason: draft.Reason,
			Poster: nil,
		}

		if poster, ok := posterByTitle[draft.Title]; ok {
			rec.Poster = poster
		} else if poster, ok := fuzzyMatch(draft.Title, candidates); ok {
			rec.Poster = poster
		}

		recs = append(recs, rec)
	}

	return recs
}

// fuzzyMatch scans candidates in retrieval order for bidirectional
// case-insensitive containment between the draft title and candidate title
func fuzzyMatch(title string, candidates []catalog.Document) (*string, bool) {
	lowered := strings.ToLower(title)
	for _, doc := range candidates {
		candidateTitle := strings.ToLower(doc.Title)
		if strings.Contains(candidateTitle, lowered) || strings.Contains(lowered, candidateTitle) {
			return doc.Poster, true
		}
	}
	return nil, false
}
