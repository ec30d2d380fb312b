package analysis

import (
	"strings"
	"testing"

	"FinBoard/internal/domain/models"
)

func TestExtractExecutiveRemarksFromTurns(t *testing.T) {
	rec := &models.TranscriptRecord{
		Content: "full transcript body",
		Turns: []models.SpeakerTurn{
			{Role: "Operator", Text: "Welcome everyone."},
			{Role: "Chief Executive Officer", Text: "Revenue grew strongly."},
			{Role: "Analyst", Text: "What about margins?"},
			{Role: "Chief Financial Officer", Text: "Margins expanded."},
		},
	}

	got := ExtractExecutiveRemarks(rec)
	if got != "Revenue grew strongly. Margins expanded." {
		t.Fatalf("unexpected remarks: %q", got)
	}
}

func TestExtractExecutiveRemarksKeepsLastTurns(t *testing.T) {
	rec := &models.TranscriptRecord{
		Turns: []models.SpeakerTurn{
			{Role: "CEO and Chairman", Text: "one"},
			{Role: "Chairman", Text: "two"},
			{Role: "Chief Executive Officer", Text: "three"},
			{Role: "Chief Financial Officer", Text: "four"},
		},
	}

	got := ExtractExecutiveRemarks(rec)
	if strings.Contains(got, "one") {
		t.Fatalf("oldest turn should be dropped: %q", got)
	}
	if got != "two three four" {
		t.Fatalf("unexpected remarks: %q", got)
	}
}

func TestExtractExecutiveRemarksSerializedSpeakers(t *testing.T) {
	rec := &models.TranscriptRecord{
		RawSpeakers: `[{"role":"Chairman & CEO","text":"We delivered record results."}]`,
	}

	got := ExtractExecutiveRemarks(rec)
	if got != "We delivered record results." {
		t.Fatalf("unexpected remarks: %q", got)
	}
}

func TestExtractExecutiveRemarksFallsBackToTail(t *testing.T) {
	body := strings.Repeat("x", 1500)
	rec := &models.TranscriptRecord{
		Content: body,
		Turns: []models.SpeakerTurn{
			{Role: "Analyst", Text: "question"},
		},
	}

	got := ExtractExecutiveRemarks(rec)
	if len(got) != 1000 {
		t.Fatalf("expected 1000-byte tail, got %d bytes", len(got))
	}
}

func TestExtractExecutiveRemarksNeverFails(t *testing.T) {
	cases := []*models.TranscriptRecord{
		nil,
		{},
		{RawSpeakers: "not json at all"},
		{Turns: []models.SpeakerTurn{{Role: "Chief Executive Officer", Text: "   "}}},
	}
	for i, rec := range cases {
		if got := ExtractExecutiveRemarks(rec); got != "" {
			t.Fatalf("case %d: expected empty string, got %q", i, got)
		}
	}
}
