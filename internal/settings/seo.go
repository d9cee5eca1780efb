package settings

import "strings"

// SEOInput is the page content under analysis.
type SEOInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// SEOReport is the scoring result.
type SEOReport struct {
	Score  int      `json:"score"`
	Grade  string   `json:"grade"`
	Issues []string `json:"issues"`
}

// Scoring penalties. The score starts at 100 and never goes below zero.
const (
	penaltyMissingTitle       = 20
	penaltyTitleLength        = 10
	penaltyMissingDescription = 15
	penaltyDescriptionLength  = 10
	penaltyShortContent       = 15
)

// AnalyzeSEO scores page metadata. It is a pure function: identical input
// always yields an identical report.
func AnalyzeSEO(in SEOInput) SEOReport {
	score := 100
	var issues []string

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		score -= penaltyMissingTitle
		issues = append(issues, "Missing title")
	case len(title) < 30 || len(title) > 60:
		score -= penaltyTitleLength
		issues = append(issues, "Title length outside the ideal 30-60 characters")
	}

	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		score -= penaltyMissingDescription
		issues = append(issues, "Missing meta description")
	case len(desc) < 120 || len(desc) > 160:
		score -= penaltyDescriptionLength
		issues = append(issues, "Meta description length outside the ideal 120-160 characters")
	}

	if words := len(strings.Fields(in.Content)); words > 0 && words < 300 {
		score -= penaltyShortContent
		issues = append(issues, "Content is under 300 words")
	}

	if score < 0 {
		score = 0
	}
	return SEOReport{Score: score, Grade: grade(score), Issues: issues}
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}
