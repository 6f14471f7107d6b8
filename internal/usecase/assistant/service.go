package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groweasy/internal/ai"
	"groweasy/internal/domain/career"
	"groweasy/internal/domain/course"
	"groweasy/internal/domain/user"
	"groweasy/internal/logger"
	"groweasy/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
	ErrNoAssessment = errors.New("no career assessment found")
	ErrInternal     = errors.New("internal error")
)

const (
	suggestedCourseLimit = 6
	matchesKept          = 3
)

// Categories every assessment may lead into, whatever careers were suggested.
var baselineCategories = []string{"Programming", "Data Science", "Digital Marketing", "Design"}

var (
	defaultStrengths    = []string{"Problem-solving", "Adaptability"}
	defaultImprovements = []string{"Communication", "Leadership"}
)

// Advisor is the AI surface the assistant needs.
type Advisor interface {
	AnalyzeProfile(ctx context.Context, in ai.ProfileInput) (career.Analysis, ai.Source, error)
	LearningRecommendations(ctx context.Context, p user.Profile, goals []string) (ai.Response, error)
	JobSearchTips(ctx context.Context, p user.Profile, prefs ai.JobPreferences) (ai.Response, error)
	Chat(ctx context.Context, name string, p user.Profile, message, topic string) (ai.Response, error)
}

type Deps struct {
	Advisor  Advisor
	Users    user.Repository
	Profiles career.Repository
	Courses  course.Repository
	Events   usecase.EventPublisher
	Logger   *zap.Logger
	Now      func() time.Time
}

type Service struct {
	advisor  Advisor
	users    user.Repository
	profiles career.Repository
	courses  course.Repository
	events   usecase.EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		advisor:  d.Advisor,
		users:    d.Users,
		profiles: d.Profiles,
		courses:  d.Courses,
		events:   d.Events,
		log:      logger.Named(d.Logger, "assistant"),
		now:      now,
	}
}

type ChatResult struct {
	Response  string    `json:"response"`
	Provider  ai.Source `json:"aiProvider"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Service) Chat(ctx context.Context, userID uuid.UUID, message, topic string) (ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{}, ErrInvalidInput
	}
	usr, err := s.user(ctx, userID)
	if err != nil {
		return ChatResult{}, err
	}

	resp, err := s.advisor.Chat(ctx, usr.Name, usr.Profile, message, strings.TrimSpace(topic))
	if err != nil {
		s.log.Error("chat failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		return ChatResult{}, ErrInternal
	}
	return ChatResult{Response: resp.Text, Provider: resp.Source, Timestamp: s.now().UTC()}, nil
}

type AssessmentInput struct {
	PersonalityResponses json.RawMessage
	SkillsAssessment     json.RawMessage
	Interests            []string
	Goals                *career.Goals
}

type AssessmentResult struct {
	PersonalityType string                  `json:"personalityType"`
	Careers         []career.Suggestion     `json:"careerRecommendations"`
	Completion      career.CompletionStatus `json:"completionStatus"`
	Provider        ai.Source               `json:"aiProvider"`
}

// SubmitAssessment analyses the answers, stores the career profile and keeps
// the top matches on the user record.
func (s *Service) SubmitAssessment(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error) {
	interests := trimList(in.Interests)
	if isBlankJSON(in.PersonalityResponses) || isBlankJSON(in.SkillsAssessment) || len(interests) == 0 {
		return AssessmentResult{}, ErrInvalidInput
	}
	usr, err := s.user(ctx, userID)
	if err != nil {
		return AssessmentResult{}, err
	}

	var goals career.Goals
	if in.Goals != nil {
		goals = *in.Goals
	}

	analysis, src, err := s.advisor.AnalyzeProfile(ctx, ai.ProfileInput{
		PersonalityResponses: in.PersonalityResponses,
		SkillsAssessment:     in.SkillsAssessment,
		Interests:            interests,
		Goals:                goals,
		Profile:              usr.Profile,
	})
	if err != nil {
		s.log.Error("career analysis failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		return AssessmentResult{}, ErrInternal
	}

	now := s.now().UTC()
	completion := career.CompletionStatus{Personality: true, Skills: true, Interests: true, OverallCompletion: 100}
	profile := career.Profile{
		UserID:               userID,
		PersonalityResponses: in.PersonalityResponses,
		PersonalityType:      analysis.PersonalityType,
		Traits:               analysis.Traits,
		SkillsAssessment:     in.SkillsAssessment,
		Interests:            interests,
		Goals:                goals,
		Careers:              analysis.Careers,
		GeneratedAt:          now,
		Completion:           completion,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.log.Error("career profile upsert failed", zap.Error(err))
		return AssessmentResult{}, ErrInternal
	}

	if err := s.users.UpdateAssessment(ctx, userID, Summarize(analysis, now)); err != nil {
		s.log.Error("assessment summary update failed", zap.Error(err))
		return AssessmentResult{}, ErrInternal
	}

	if s.events != nil {
		s.events.Publish(ctx, usecase.EventAssessmentDone, map[string]any{
			"userId":          userID,
			"personalityType": analysis.PersonalityType,
			"provider":        src.String(),
		})
	}

	return AssessmentResult{
		PersonalityType: analysis.PersonalityType,
		Careers:         analysis.Careers,
		Completion:      completion,
		Provider:        src,
	}, nil
}

// Summarize condenses an analysis into the results kept on the user, filling
// in default strengths and improvements when the model gave none.
func Summarize(a career.Analysis, at time.Time) user.AssessmentResults {
	strengths := a.Strengths
	if len(strengths) == 0 {
		strengths = defaultStrengths
	}
	improvements := a.Improvements
	if len(improvements) == 0 {
		improvements = defaultImprovements
	}

	n := len(a.Careers)
	if n > matchesKept {
		n = matchesKept
	}
	matches := make([]user.CareerMatch, 0, n)
	for _, c := range a.Careers[:n] {
		matches = append(matches, user.CareerMatch{
			Career:          c.Title,
			MatchPercentage: c.MatchPercentage,
			Description:     c.Description,
		})
	}

	return user.AssessmentResults{
		PersonalityType: a.PersonalityType,
		Strengths:       strengths,
		Improvements:    improvements,
		CareerMatches:   matches,
		CompletedAt:     at,
	}
}

type CareerRecommendations struct {
	Careers     []career.Suggestion `json:"careers"`
	Courses     []course.Course     `json:"courses"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Recommendations returns the stored careers and courses that lead toward them.
// A failed course lookup degrades to an empty course list.
func (s *Service) Recommendations(ctx context.Context, userID uuid.UUID) (CareerRecommendations, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return CareerRecommendations{}, err
	}

	titles := make([]string, 0, len(p.Careers))
	var skills []string
	for _, c := range p.Careers {
		titles = append(titles, c.Title)
		skills = append(skills, c.RequiredSkills...)
	}

	courses, err := s.courses.Suggest(ctx, course.SuggestFilter{
		Skills:     trimList(skills),
		Titles:     trimList(titles),
		Categories: baselineCategories,
		Limit:      suggestedCourseLimit,
	})
	if err != nil {
		s.log.Warn("course suggestions failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		courses = []course.Course{}
	}

	return CareerRecommendations{Careers: p.Careers, Courses: courses, GeneratedAt: p.GeneratedAt}, nil
}

type ProfileView struct {
	Profile career.Profile
	User    user.User
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	usr, err := s.user(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	usr.PasswordHash = ""
	return ProfileView{Profile: p, User: usr}, nil
}

type Insights struct {
	LearningRecommendations string    `json:"learningRecommendations"`
	JobSearchTips           string    `json:"jobSearchTips"`
	ProfileCompletion       int       `json:"profileCompletion"`
	LastUpdated             time.Time `json:"lastUpdated"`
	LearningProvider        ai.Source `json:"learningProvider"`
	JobTipsProvider         ai.Source `json:"jobTipsProvider"`
}

func (s *Service) Insights(ctx context.Context, userID uuid.UUID) (Insights, error) {
	usr, err := s.user(ctx, userID)
	if err != nil {
		return Insights{}, err
	}
	p, err := s.profile(ctx, userID)
	if err != nil {
		return Insights{}, err
	}

	learning, err := s.advisor.LearningRecommendations(ctx, usr.Profile, p.Goals.ShortTerm)
	if err != nil {
		s.log.Error("learning recommendations failed", zap.Error(err))
		return Insights{}, ErrInternal
	}
	tips, err := s.advisor.JobSearchTips(ctx, usr.Profile, ai.JobPreferences{Remote: true, Location: usr.Profile.Location})
	if err != nil {
		s.log.Error("job search tips failed", zap.Error(err))
		return Insights{}, ErrInternal
	}

	return Insights{
		LearningRecommendations: learning.Text,
		JobSearchTips:           tips.Text,
		ProfileCompletion:       p.Completion.OverallCompletion,
		LastUpdated:             p.UpdatedAt,
		LearningProvider:        learning.Source,
		JobTipsProvider:         tips.Source,
	}, nil
}

func (s *Service) user(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return usr, nil
}

func (s *Service) profile(ctx context.Context, userID uuid.UUID) (career.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, career.ErrNotFound) {
			return career.Profile{}, ErrNoAssessment
		}
		return career.Profile{}, ErrInternal
	}
	return p, nil
}

func isBlankJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
