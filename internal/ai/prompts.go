package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"groweasy/internal/domain/career"
	"groweasy/internal/domain/user"
)

const (
	careerCounselorPrompt = "You are an expert career counselor specializing in the Indian job market. " +
		"Provide detailed, actionable career guidance in JSON format."

	educationAdvisorPrompt = "You are an education advisor specializing in skill development for Indian students. " +
		"Provide practical, actionable learning recommendations."

	placementExpertPrompt = "You are a job placement expert familiar with the Indian job market. " +
		"Provide specific, actionable job search advice."
)

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func joinOr(items []string, def string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	if len(clean) == 0 {
		return def
	}
	return strings.Join(clean, ", ")
}

func rawOr(raw json.RawMessage, def string) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return def
	}
	return s
}

func careerAnalysisPrompt(in ProfileInput) string {
	p := in.Profile
	var b strings.Builder
	b.WriteString("Analyze this Indian student's profile and provide comprehensive career guidance:\n\n")
	b.WriteString("Student Background:\n")
	fmt.Fprintf(&b, "- Location: %s, %s\n", orDefault(p.Location.City, "Not specified"), orDefault(p.Location.State, "India"))
	fmt.Fprintf(&b, "- Education: %s\n", orDefault(p.Education.Level, "Not specified"))
	fmt.Fprintf(&b, "- Experience: %s\n\n", orDefault(p.Experience, "Fresher"))
	b.WriteString("Assessment Data:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", rawOr(in.SkillsAssessment, "Not specified"))
	fmt.Fprintf(&b, "- Interests: %s\n", joinOr(in.Interests, "Not specified"))
	fmt.Fprintf(&b, "- Career Goals: %s\n", joinOr(in.Goals.ShortTerm, "Not specified"))
	fmt.Fprintf(&b, "- Personality Responses: %s\n\n", rawOr(in.PersonalityResponses, "Not specified"))
	b.WriteString(`Please provide:
1. Personality analysis with type (Analyst/Diplomat/Sentinel/Explorer)
2. Top 5 career recommendations with:
   - Career title
   - Match percentage (0-100)
   - Description (2-3 sentences)
   - Required skills
   - Salary range in INR
   - Growth prospects in India
   - Why it matches their profile
   - Specific next steps

Focus on opportunities in India, especially for Tier-2/3 cities. Consider remote work options and emerging fields.
Respond with JSON only, using this shape:
{"personalityType":"","strengths":[],"improvements":[],"careers":[{"title":"","matchPercentage":0,"description":"","requiredSkills":[],"salaryRange":{"min":0,"max":0},"growthProspects":"","reasons":[],"nextSteps":[]}]}`)
	return b.String()
}

func learningPrompt(p user.Profile, goals []string) string {
	var b strings.Builder
	b.WriteString("Based on this student profile, recommend specific learning paths:\n\nProfile:\n")
	fmt.Fprintf(&b, "- Current Skills: %s\n", joinOr(p.Skills, "None specified"))
	fmt.Fprintf(&b, "- Education: %s\n", orDefault(p.Education.Level, "Not specified"))
	fmt.Fprintf(&b, "- Career Goals: %s\n", joinOr(goals, "Not specified"))
	fmt.Fprintf(&b, "- Location: %s\n\n", orDefault(p.Location.City, "India"))
	b.WriteString(`Provide:
1. Top 5 skills to learn (prioritized)
2. Specific course recommendations
3. Learning timeline (weeks/months)
4. Free resources available in India
5. Certification suggestions

Focus on practical, job-ready skills for the Indian market.`)
	return b.String()
}

// JobPreferences narrows job-search advice.
type JobPreferences struct {
	Remote   bool          `json:"remote"`
	Location user.Location `json:"location"`
}

func jobSearchPrompt(p user.Profile, prefs JobPreferences) string {
	prefsJSON, _ := json.Marshal(prefs)

	var b strings.Builder
	b.WriteString("Analyze this profile and suggest job search strategies:\n\nProfile:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", joinOr(p.Skills, "Not specified"))
	fmt.Fprintf(&b, "- Experience: %s\n", orDefault(p.Experience, "Fresher"))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(p.Location.City, "Not specified"))
	fmt.Fprintf(&b, "- Education: %s\n", orDefault(p.Education.Level, "Not specified"))
	fmt.Fprintf(&b, "- Preferences: %s\n\n", string(prefsJSON))
	b.WriteString(`Provide:
1. Best job titles to search for
2. Companies to target in their location
3. Salary expectations
4. Skills to highlight in applications
5. Interview preparation tips
6. Remote work opportunities

Focus on realistic opportunities in India.`)
	return b.String()
}

func tutorSystemPrompt(name string, p user.Profile, topic string) string {
	var b strings.Builder
	b.WriteString("You are an AI tutor for GrowEasyAI, helping students from Tier-2 and Tier-3 cities in India. ")
	b.WriteString("You provide personalized, encouraging guidance in simple language.\n\n")
	b.WriteString("Student Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(name, "Student"))
	fmt.Fprintf(&b, "- Education: %s\n", orDefault(p.Education.Level, "Not specified"))
	fmt.Fprintf(&b, "- Skills: %s\n", joinOr(p.Skills, "Not specified"))
	fmt.Fprintf(&b, "- Interests: %s\n", joinOr(p.Interests, "Not specified"))
	fmt.Fprintf(&b, "- Location: %s\n\n", orDefault(p.Location.City, "Not specified"))
	fmt.Fprintf(&b, "Context: %s\n\n", orDefault(topic, "General learning assistance"))
	b.WriteString("Provide helpful, encouraging advice in 2-3 sentences. Focus on practical next steps.")
	return b.String()
}

// ProfileInput is everything a career analysis looks at.
type ProfileInput struct {
	PersonalityResponses json.RawMessage
	SkillsAssessment     json.RawMessage
	Interests            []string
	Goals                career.Goals
	Profile              user.Profile
}
