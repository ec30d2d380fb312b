package analysis

import (
	"encoding/json"
	"strings"

	"FinBoard/internal/domain/models"
	"FinBoard/pkg/util"
)

// Executive-role markers and extraction bounds. Matching is substring,
// case-insensitive, so "Chief Executive Officer" and "Chairman & CEO"
// both qualify.
var executiveRoleMarkers = []string{
	"chief executive",
	"chief financial",
	"chairman",
	"ceo",
	"cfo",
}

const (
	// Closing remarks and Q&A carry more signal than the scripted
	// introduction, so only the last few qualifying turns are kept.
	maxExecutiveTurns = 3
	// Tail of the raw transcript used when no structured turns qualify.
	transcriptTailChars = 1000
)

// ExtractExecutiveRemarks selects the transcript text attributable to
// senior-executive roles, preferring statements near the end of the call.
// It never fails: a record with no qualifying turns degrades to the raw
// transcript tail, and one with no text at all yields the empty string.
func ExtractExecutiveRemarks(rec *models.TranscriptRecord) string {
	if rec == nil {
		return ""
	}

	turns := rec.Turns
	if len(turns) == 0 && rec.RawSpeakers != "" {
		// Serialized turn list: a decode failure degrades to "no
		// structured turns", not an error.
		var decoded []models.SpeakerTurn
		if err := json.Unmarshal([]byte(rec.RawSpeakers), &decoded); err == nil {
			turns = decoded
		}
	}

	var executive []models.SpeakerTurn
	for _, t := range turns {
		if util.ContainsAnyFold(t.Role, executiveRoleMarkers...) {
			executive = append(executive, t)
		}
	}

	if len(executive) > 0 {
		if len(executive) > maxExecutiveTurns {
			executive = executive[len(executive)-maxExecutiveTurns:]
		}
		parts := make([]string, 0, len(executive))
		for _, t := range executive {
			if s := strings.TrimSpace(t.Text); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}

	return util.TailBytes(strings.TrimSpace(rec.Content), transcriptTailChars)
}
