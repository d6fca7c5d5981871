package recommendation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/vibewatch-backend/internal/catalog"
)

// FallbackReason is the literal reason attached to drafts synthesized when
// no structured list could be recovered from the model output. Callers can
// only detect a degraded result through this text, never via an error.
const FallbackReason = "(LLM parsing failed)"

const maxFallbackDrafts = 3

// RecoveryStage identifies which stage of response recovery produced the
// drafts, so callers and tests can assert on the path taken
type RecoveryStage string

const (
	StageBracketScan RecoveryStage = "bracket-scan"
	StageWholeText   RecoveryStage = "whole-text"
	StageFallback    RecoveryStage = "fallback"
)

// RecoveryResult carries recovered drafts tagged with the stage that fired
type RecoveryResult struct {
	Drafts []Draft
	Stage  RecoveryStage
}

// Degraded reports whether recovery fell through to the terminal fallback
func (r RecoveryResult) Degraded() bool {
	return r.Stage == StageFallback
}

// Recover extracts a structured draft list from raw model output. Stages are
// attempted in order, first success wins:
//
//  1. bracket-scan: the greedy span from the first '[' to the last ']' is
//     parsed as JSON, covering models that wrap the list in prose or fences
//  2. whole-text: the entire trimmed response is parsed as JSON
//  3. fallback: up to 3 drafts are synthesized from the top candidates in
//     retrieval order, each marked with FallbackReason
//
// The fallback never fails, so Recover always returns a result when at least
// one candidate was retrieved.
func Recover(raw string, candidates []catalog.Document) RecoveryResult {
	content := strings.TrimSpace(raw)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		if drafts, ok := parseDraftList(content[start : end+1]); ok {
			return RecoveryResult{Drafts: drafts, Stage: StageBracketScan}
		}
	}

	if drafts, ok := parseDraftList(content); ok {
		return RecoveryResult{Drafts: drafts, Stage: StageWholeText}
	}

	limit := maxFallbackDrafts
	if len(candidates) < limit {
		limit = len(candidates)
	}
	drafts := make([]Draft, 0, limit)
	for _, doc := range candidates[:limit] {
		drafts = append(drafts, Draft{
			Title:  doc.Title,
			Reason: FallbackReason,
		})
	}

	return RecoveryResult{Drafts: drafts, Stage: StageFallback}
}

// parseDraftList parses text as a JSON list of objects. A parsed non-list
// (for example a single object) counts as a parse failure. Entries missing
// title or reason keys are retained with empty-string defaults rather than
// dropped, so the output length tracks what the model asserted.
func parseDraftList(text string) ([]Draft, bool) {
	var items []map[string]any
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, false
	}

	drafts := make([]Draft, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, Draft{
			Title:  coerceString(item["title"]),
			Reason: coerceString(item["reason"]),
		})
	}

	return drafts, true
}

// coerceString renders any asserted value as a string so downstream
// matching never has to handle unexpected types
func coerceString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}
