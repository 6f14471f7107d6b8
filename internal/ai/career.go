package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"groweasy/internal/domain/career"
)

var errNoCareers = errors.New("ai: analysis has no careers")

// DefaultAnalysis is served when no model output can be parsed.
func DefaultAnalysis() career.Analysis {
	return career.Analysis{
		PersonalityType: "Explorer",
		Careers: []career.Suggestion{
			{
				Title:           "Software Developer",
				MatchPercentage: 85,
				Description:     "Build web and mobile applications",
				RequiredSkills:  []string{"JavaScript", "React", "Node.js"},
				SalaryRange:     career.SalaryRange{Min: 300000, Max: 800000},
				GrowthProspects: "High demand in Indian tech industry",
				Reasons:         []string{"Analytical thinking", "Problem-solving skills"},
				NextSteps:       []string{"Learn coding basics", "Build portfolio projects"},
			},
			{
				Title:           "Digital Marketing Specialist",
				MatchPercentage: 78,
				Description:     "Manage online marketing campaigns",
				RequiredSkills:  []string{"SEO", "Social Media", "Analytics"},
				SalaryRange:     career.SalaryRange{Min: 250000, Max: 600000},
				GrowthProspects: "Growing with digital economy",
				Reasons:         []string{"Creative thinking", "Communication skills"},
				NextSteps:       []string{"Learn digital marketing tools", "Get certified"},
			},
		},
	}
}

// flexInt accepts 85, 85.4, "85" and "85%".
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexInt(math.Round(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(math.Round(n))
	return nil
}

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s != "" {
		*l = []string{s}
	} else {
		*l = nil
	}
	return nil
}

// flexSalary accepts {"min":..,"max":..} or a free-form string, which is dropped.
type flexSalary career.SalaryRange

func (s *flexSalary) UnmarshalJSON(b []byte) error {
	var obj struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*s = flexSalary{Min: int64(obj.Min), Max: int64(obj.Max)}
		return nil
	}
	*s = flexSalary{}
	return nil
}

type rawSuggestion struct {
	Title           string     `json:"title"`
	MatchPercentage flexInt    `json:"matchPercentage"`
	Description     string     `json:"description"`
	RequiredSkills  stringList `json:"requiredSkills"`
	SalaryRange     flexSalary `json:"salaryRange"`
	GrowthProspects string     `json:"growthProspects"`
	Reasons         stringList `json:"reasons"`
	NextSteps       stringList `json:"nextSteps"`
}

type rawAnalysis struct {
	PersonalityType string             `json:"personalityType"`
	Traits          map[string]float64 `json:"traits"`
	Strengths       stringList         `json:"strengths"`
	Improvements    stringList         `json:"improvements"`
	Careers         []rawSuggestion    `json:"careers"`
}

// ParseAnalysis extracts a career analysis from model output. Markdown code
// fences and surrounding prose are tolerated.
func ParseAnalysis(text string) (career.Analysis, error) {
	body := extractJSON(text)
	if body == "" {
		return career.Analysis{}, errors.New("ai: no json object in response")
	}

	var raw rawAnalysis
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(&raw); err != nil {
		return career.Analysis{}, err
	}

	out := career.Analysis{
		PersonalityType: normalizePersonality(raw.PersonalityType),
		Traits:          raw.Traits,
		Strengths:       []string(raw.Strengths),
		Improvements:    []string(raw.Improvements),
	}
	for _, rs := range raw.Careers {
		title := strings.TrimSpace(rs.Title)
		if title == "" {
			continue
		}
		out.Careers = append(out.Careers, career.Suggestion{
			Title:           title,
			MatchPercentage: clampPercent(int(rs.MatchPercentage)),
			Description:     strings.TrimSpace(rs.Description),
			RequiredSkills:  []string(rs.RequiredSkills),
			SalaryRange:     career.SalaryRange(rs.SalaryRange),
			GrowthProspects: strings.TrimSpace(rs.GrowthProspects),
			Reasons:         []string(rs.Reasons),
			NextSteps:       []string(rs.NextSteps),
		})
	}
	if len(out.Careers) == 0 {
		return career.Analysis{}, errNoCareers
	}
	return out, nil
}

func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = strings.TrimSpace(rest)
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func normalizePersonality(s string) string {
	s = strings.TrimSpace(s)
	for _, t := range career.PersonalityTypes {
		if strings.EqualFold(s, t) {
			return t
		}
	}
	return "Explorer"
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
