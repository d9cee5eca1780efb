package settings

import (
	"context"
	"strings"
	"testing"
)

func TestUpdateMergesOnlyProvidedSections(t *testing.T) {
	svc := NewService(Defaults())
	ctx := context.Background()

	before := svc.Get(ctx)
	got := svc.Update(ctx, Update{
		Analytics: &AnalyticsSettings{Enabled: true, MeasurementID: "G-TEST123"},
	}, "admin-1")

	if !got.Analytics.Enabled || got.Analytics.MeasurementID != "G-TEST123" {
		t.Errorf("analytics section not applied: %+v", got.Analytics)
	}
	if got.SEO != before.SEO {
		t.Error("untouched SEO section changed")
	}
	if got.AI != before.AI {
		t.Error("untouched AI section changed")
	}
	if got.UpdatedBy != "admin-1" || got.UpdatedAt.IsZero() {
		t.Errorf("audit fields not stamped: %v / %q", got.UpdatedAt, got.UpdatedBy)
	}
}

func TestServicesAreIsolated(t *testing.T) {
	a := NewService(Defaults())
	b := NewService(Defaults())
	ctx := context.Background()

	a.Update(ctx, Update{SEO: &SEOSettings{DefaultTitle: "changed"}}, "admin-1")
	if b.Get(ctx).SEO.DefaultTitle == "changed" {
		t.Error("update to one service instance leaked into another")
	}
}

func TestAnalyzeSEOEmptyInput(t *testing.T) {
	report := AnalyzeSEO(SEOInput{})
	if report.Score != 65 {
		t.Errorf("score = %d, want 65", report.Score)
	}
	if report.Grade != "D" {
		t.Errorf("grade = %q, want D", report.Grade)
	}
	joined := strings.Join(report.Issues, "; ")
	if !strings.Contains(joined, "Missing title") {
		t.Errorf("issues %q missing title complaint", joined)
	}
	if !strings.Contains(joined, "Missing meta description") {
		t.Errorf("issues %q missing description complaint", joined)
	}
}

func TestAnalyzeSEOScoring(t *testing.T) {
	longDesc := strings.Repeat("piano directory ", 9) // ~144 chars
	longContent := strings.Repeat("word ", 320)

	tests := []struct {
		name  string
		in    SEOInput
		score int
		grade string
	}{
		{
			"ideal page",
			SEOInput{
				Title:       "Find Public Pianos Around the World",
				Description: longDesc,
				Content:     longContent,
			},
			100, "A",
		},
		{
			"short title",
			SEOInput{Title: "Pianos", Description: longDesc, Content: longContent},
			90, "A",
		},
		{
			"short content",
			SEOInput{
				Title:       "Find Public Pianos Around the World",
				Description: longDesc,
				Content:     "just a few words here",
			},
			85, "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSEO(tt.in)
			if got.Score != tt.score || got.Grade != tt.grade {
				t.Errorf("got %d/%s, want %d/%s (issues: %v)",
					got.Score, got.Grade, tt.score, tt.grade, got.Issues)
			}
		})
	}
}

func TestAnalyzeSEODeterministic(t *testing.T) {
	in := SEOInput{Title: "x", Description: "y", Content: "z"}
	a := AnalyzeSEO(in)
	b := AnalyzeSEO(in)
	if a.Score != b.Score || a.Grade != b.Grade || len(a.Issues) != len(b.Issues) {
		t.Errorf("same input scored differently: %+v vs %+v", a, b)
	}
}
