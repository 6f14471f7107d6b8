package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/ai"
	"groweasy/internal/domain/career"
	"groweasy/internal/domain/course"
	"groweasy/internal/domain/user"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type fakeAdvisor struct {
	analysis    career.Analysis
	source      ai.Source
	err         error
	chatMessage string
	chatTopic   string
	goals       []string
	prefs       ai.JobPreferences
}

func (f *fakeAdvisor) AnalyzeProfile(context.Context, ai.ProfileInput) (career.Analysis, ai.Source, error) {
	return f.analysis, f.source, f.err
}

func (f *fakeAdvisor) LearningRecommendations(_ context.Context, _ user.Profile, goals []string) (ai.Response, error) {
	f.goals = goals
	return ai.Response{Text: "learn go", Source: ai.SourcePrimary}, f.err
}

func (f *fakeAdvisor) JobSearchTips(_ context.Context, _ user.Profile, prefs ai.JobPreferences) (ai.Response, error) {
	f.prefs = prefs
	return ai.Response{Text: "apply widely", Source: ai.SourceFallback}, f.err
}

func (f *fakeAdvisor) Chat(_ context.Context, _ string, _ user.Profile, message, topic string) (ai.Response, error) {
	f.chatMessage = message
	f.chatTopic = topic
	return ai.Response{Text: "keep going", Source: ai.SourceLocal}, f.err
}

type memUsers struct {
	u          user.User
	assessment *user.AssessmentResults
}

func (m *memUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *memUsers) CreateUser(context.Context, user.User) error         { return nil }
func (m *memUsers) GetUserByEmail(context.Context, string) (user.User, error) {
	return m.u, nil
}
func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != m.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return m.u, nil
}
func (m *memUsers) UpdateProfile(context.Context, uuid.UUID, string, user.Profile) error { return nil }
func (m *memUsers) UpdateAssessment(_ context.Context, _ uuid.UUID, a user.AssessmentResults) error {
	m.assessment = &a
	return nil
}

type memProfiles struct {
	p *career.Profile
}

func (m *memProfiles) Upsert(_ context.Context, p career.Profile) error {
	p.UpdatedAt = fixedNow
	m.p = &p
	return nil
}

func (m *memProfiles) GetByUserID(context.Context, uuid.UUID) (career.Profile, error) {
	if m.p == nil {
		return career.Profile{}, career.ErrNotFound
	}
	return *m.p, nil
}

type suggestCourses struct {
	filter course.SuggestFilter
	err    error
}

func (s *suggestCourses) ListActive(context.Context, course.ListFilter) ([]course.Course, int, error) {
	return nil, 0, nil
}
func (s *suggestCourses) Search(context.Context, course.SearchFilter) ([]course.Course, error) {
	return nil, nil
}
func (s *suggestCourses) Suggest(_ context.Context, f course.SuggestFilter) ([]course.Course, error) {
	s.filter = f
	if s.err != nil {
		return nil, s.err
	}
	return []course.Course{{Title: "Python Basics"}}, nil
}
func (s *suggestCourses) ListAllActive(context.Context) ([]course.Course, error) { return nil, nil }
func (s *suggestCourses) GetByID(context.Context, uuid.UUID) (course.Course, error) {
	return course.Course{}, course.ErrNotFound
}

type env struct {
	svc      *Service
	advisor  *fakeAdvisor
	users    *memUsers
	profiles *memProfiles
	courses  *suggestCourses
	uid      uuid.UUID
}

func newEnv() env {
	uid := uuid.New()
	e := env{
		advisor: &fakeAdvisor{source: ai.SourcePrimary, analysis: career.Analysis{
			PersonalityType: "Analyst",
			Careers: []career.Suggestion{
				{Title: "Data Analyst", MatchPercentage: 90, RequiredSkills: []string{"SQL"}},
				{Title: "Developer", MatchPercentage: 85, RequiredSkills: []string{"Go"}},
				{Title: "Designer", MatchPercentage: 70},
				{Title: "Writer", MatchPercentage: 60},
			},
		}},
		users:    &memUsers{u: user.User{ID: uid, Name: "Meera", Profile: user.Profile{Location: user.Location{City: "Nagpur"}}}},
		profiles: &memProfiles{},
		courses:  &suggestCourses{},
		uid:      uid,
	}
	e.svc = NewService(Deps{
		Advisor:  e.advisor,
		Users:    e.users,
		Profiles: e.profiles,
		Courses:  e.courses,
		Now:      func() time.Time { return fixedNow },
	})
	return e
}

func validAssessment() AssessmentInput {
	return AssessmentInput{
		PersonalityResponses: json.RawMessage(`{"q1":"a"}`),
		SkillsAssessment:     json.RawMessage(`{"coding":4}`),
		Interests:            []string{"data", " "},
		Goals:                &career.Goals{ShortTerm: []string{"get an internship"}},
	}
}

func TestService_Chat(t *testing.T) {
	e := newEnv()
	res, err := e.svc.Chat(context.Background(), e.uid, "  how do I start?  ", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Provider != ai.SourceLocal || res.Response != "keep going" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if e.advisor.chatMessage != "how do I start?" {
		t.Fatalf("expected trimmed message, got %q", e.advisor.chatMessage)
	}
	if _, err := e.svc.Chat(context.Background(), e.uid, " ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Chat_Exhausted(t *testing.T) {
	e := newEnv()
	e.advisor.err = ai.ErrExhausted
	if _, err := e.svc.Chat(context.Background(), e.uid, "hi", ""); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestService_SubmitAssessment(t *testing.T) {
	e := newEnv()
	res, err := e.svc.SubmitAssessment(context.Background(), e.uid, validAssessment())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.PersonalityType != "Analyst" || len(res.Careers) != 4 || res.Completion.OverallCompletion != 100 {
		t.Fatalf("unexpected result: %+v", res)
	}

	stored := e.profiles.p
	if stored == nil || len(stored.Interests) != 1 || stored.Goals.ShortTerm[0] != "get an internship" {
		t.Fatalf("unexpected stored profile: %+v", stored)
	}

	a := e.users.assessment
	if a == nil || len(a.CareerMatches) != 3 || a.CareerMatches[0].Career != "Data Analyst" {
		t.Fatalf("unexpected assessment summary: %+v", a)
	}
	if a.Strengths[0] != "Problem-solving" || a.Improvements[0] != "Communication" {
		t.Fatalf("expected default strengths and improvements, got %+v", a)
	}
}

func TestService_SubmitAssessment_Incomplete(t *testing.T) {
	e := newEnv()
	cases := map[string]func(in *AssessmentInput){
		"no responses": func(in *AssessmentInput) { in.PersonalityResponses = nil },
		"null skills":  func(in *AssessmentInput) { in.SkillsAssessment = json.RawMessage("null") },
		"no interests": func(in *AssessmentInput) { in.Interests = []string{" "} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validAssessment()
			mutate(&in)
			if _, err := e.svc.SubmitAssessment(context.Background(), e.uid, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Recommendations(t *testing.T) {
	e := newEnv()
	if _, err := e.svc.Recommendations(context.Background(), e.uid); !errors.Is(err, ErrNoAssessment) {
		t.Fatalf("expected ErrNoAssessment, got %v", err)
	}
	if _, err := e.svc.SubmitAssessment(context.Background(), e.uid, validAssessment()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rec, err := e.svc.Recommendations(context.Background(), e.uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Careers) != 4 || len(rec.Courses) != 1 {
		t.Fatalf("unexpected recommendations: %+v", rec)
	}
	f := e.courses.filter
	if f.Limit != 6 || len(f.Skills) != 2 || len(f.Titles) != 4 || len(f.Categories) != 4 {
		t.Fatalf("unexpected suggest filter: %+v", f)
	}

	e.courses.err = errors.New("db down")
	rec, err = e.svc.Recommendations(context.Background(), e.uid)
	if err != nil || rec.Courses == nil || len(rec.Courses) != 0 {
		t.Fatalf("expected empty course list on failure, got %+v %v", rec.Courses, err)
	}
}

func TestService_Insights(t *testing.T) {
	e := newEnv()
	if _, err := e.svc.Insights(context.Background(), e.uid); !errors.Is(err, ErrNoAssessment) {
		t.Fatalf("expected ErrNoAssessment, got %v", err)
	}
	if _, err := e.svc.SubmitAssessment(context.Background(), e.uid, validAssessment()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	in, err := e.svc.Insights(context.Background(), e.uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.ProfileCompletion != 100 || in.LearningProvider != ai.SourcePrimary || in.JobTipsProvider != ai.SourceFallback {
		t.Fatalf("unexpected insights: %+v", in)
	}
	if len(e.advisor.goals) != 1 || !e.advisor.prefs.Remote || e.advisor.prefs.Location.City != "Nagpur" {
		t.Fatalf("unexpected advisor inputs: goals=%v prefs=%+v", e.advisor.goals, e.advisor.prefs)
	}
	if !in.LastUpdated.Equal(fixedNow) {
		t.Fatalf("unexpected last updated: %v", in.LastUpdated)
	}
}

func TestService_Profile(t *testing.T) {
	e := newEnv()
	e.users.u.PasswordHash = "hash"
	if _, err := e.svc.SubmitAssessment(context.Background(), e.uid, validAssessment()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v, err := e.svc.Profile(context.Background(), e.uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.User.PasswordHash != "" || v.Profile.PersonalityType != "Analyst" {
		t.Fatalf("unexpected view: %+v", v)
	}
}
