package llm

import "fmt"

// Prompt templates. Inputs are expected to be sanitized already; empty inputs
// leave their segment empty rather than dropping it.

// BuildRecommendationPrompt asks for current job postings matching the candidate
func BuildRecommendationPrompt(preferences, skills, details string) string {
	return fmt.Sprintf(
		"You are an AI Job Recommendation Assistant.\n"+
			"Find up to 9 current job postings based on preferences: %s; skills: %s; details: %s.\n"+
			"Respond with ONLY a JSON array of objects having keys: "+
			"title, company, url, short_description, skills, relevance_notes.",
		preferences, skills, details,
	)
}

// BuildMarketTrendsPrompt asks for actionable career tips for a sector
func BuildMarketTrendsPrompt(sector string) string {
	return fmt.Sprintf(
		"You are a Career Trends Analyst AI.\n"+
			"Provide 5 actionable career tips for sector: %s.\n"+
			"Respond with ONLY a JSON array of objects having keys: title, description.",
		sector,
	)
}
