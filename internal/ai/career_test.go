package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"groweasy/internal/domain/user"
)

func TestParseAnalysis_FencedJSON(t *testing.T) {
	text := "Here you go:\n```json\n" + `{
  "personalityType": "analyst",
  "strengths": "Logic",
  "careers": [
    {"title": "Data Analyst", "matchPercentage": "88%", "requiredSkills": ["SQL"], "salaryRange": {"min": 300000, "max": 700000}},
    {"title": "  ", "matchPercentage": 50},
    {"title": "QA Engineer", "matchPercentage": 140.2, "salaryRange": "3-5 LPA"}
  ]
}` + "\n```\nGood luck!"

	a, err := ParseAnalysis(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.PersonalityType != "Analyst" {
		t.Fatalf("expected Analyst, got %q", a.PersonalityType)
	}
	if len(a.Strengths) != 1 || a.Strengths[0] != "Logic" {
		t.Fatalf("unexpected strengths: %v", a.Strengths)
	}
	if len(a.Careers) != 2 {
		t.Fatalf("expected untitled career dropped, got %d", len(a.Careers))
	}
	if a.Careers[0].MatchPercentage != 88 || a.Careers[0].SalaryRange.Max != 700000 {
		t.Fatalf("unexpected first career: %+v", a.Careers[0])
	}
	if a.Careers[1].MatchPercentage != 100 || a.Careers[1].SalaryRange.Min != 0 {
		t.Fatalf("unexpected second career: %+v", a.Careers[1])
	}
}

func TestParseAnalysis_Invalid(t *testing.T) {
	for _, text := range []string{"", "no json here", `{"careers": []}`, `{"careers": [`} {
		if _, err := ParseAnalysis(text); err == nil {
			t.Fatalf("expected error for %q", text)
		}
	}
	a, err := ParseAnalysis(`{"personalityType":"Wizard","careers":[{"title":"Chef"}]}`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.PersonalityType != "Explorer" {
		t.Fatalf("unknown type should normalize to Explorer, got %q", a.PersonalityType)
	}
}

type stubResponder struct {
	resp Response
	err  error
	opts Options
}

func (s *stubResponder) Respond(_ context.Context, _ string, opts ...Option) (Response, error) {
	s.opts = resolveOptions(opts)
	return s.resp, s.err
}

func TestAdvisor_AnalyzeProfile(t *testing.T) {
	stub := &stubResponder{resp: Response{Text: `{"personalityType":"Diplomat","careers":[{"title":"Teacher","matchPercentage":90}]}`, Source: SourcePrimary}}
	adv := NewAdvisor(stub, nil)

	a, src, err := adv.AnalyzeProfile(context.Background(), ProfileInput{Interests: []string{"teaching"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if src != SourcePrimary || a.PersonalityType != "Diplomat" || a.Careers[0].Title != "Teacher" {
		t.Fatalf("unexpected analysis: %v %+v", src, a)
	}
	if stub.opts.MaxTokens != 1000 || stub.opts.Temperature != 0.8 || stub.opts.SystemPrompt != careerCounselorPrompt {
		t.Fatalf("unexpected options: %+v", stub.opts)
	}

	stub.resp = Response{Text: "I cannot answer in JSON", Source: SourceLocal}
	a, src, _ = adv.AnalyzeProfile(context.Background(), ProfileInput{})
	if src != SourceLocal || a.Careers[0].Title != "Software Developer" {
		t.Fatalf("expected default analysis from local source, got %v %+v", src, a)
	}

	stub.resp = Response{Text: fallbackCareer, Source: SourceFallback}
	a, src, _ = adv.AnalyzeProfile(context.Background(), ProfileInput{})
	if src != SourceFallback || a.PersonalityType != "Explorer" || len(a.Careers) != 2 {
		t.Fatalf("expected default analysis for fallback, got %+v", a)
	}

	stub.err = ErrExhausted
	if _, _, err := adv.AnalyzeProfile(context.Background(), ProfileInput{}); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestAdvisor_TipsUseDefaultsOnFallback(t *testing.T) {
	stub := &stubResponder{resp: Response{Text: fallbackGeneric, Source: SourceFallback}}
	adv := NewAdvisor(stub, nil)

	lr, err := adv.LearningRecommendations(context.Background(), user.Profile{}, nil)
	if err != nil || lr.Text != defaultLearningRecommendations {
		t.Fatalf("unexpected learning recommendations: %+v %v", lr, err)
	}
	jt, err := adv.JobSearchTips(context.Background(), user.Profile{}, JobPreferences{Remote: true})
	if err != nil || jt.Text != defaultJobSearchTips {
		t.Fatalf("unexpected job tips: %+v %v", jt, err)
	}

	stub.resp = Response{Text: "Learn SQL first.", Source: SourcePrimary}
	lr, _ = adv.LearningRecommendations(context.Background(), user.Profile{}, []string{"Get a job"})
	if lr.Text != "Learn SQL first." {
		t.Fatalf("expected model text, got %q", lr.Text)
	}
}

func TestAdvisor_ChatPrompt(t *testing.T) {
	stub := &stubResponder{resp: Response{Text: "Keep going", Source: SourceLocal}}
	adv := NewAdvisor(stub, nil)

	p := user.Profile{Skills: []string{"Excel"}, Location: user.Location{City: "Indore"}}
	if _, err := adv.Chat(context.Background(), "Asha", p, "What next?", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sys := stub.opts.SystemPrompt
	for _, want := range []string{"Asha", "Excel", "Indore", "General learning assistance", "2-3 sentences"} {
		if !strings.Contains(sys, want) {
			t.Fatalf("system prompt missing %q: %s", want, sys)
		}
	}
	if stub.opts.MaxTokens != 300 {
		t.Fatalf("expected 300 tokens, got %d", stub.opts.MaxTokens)
	}
}
