package course

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groweasy/internal/domain/course"
	"groweasy/internal/domain/matching"
	"groweasy/internal/domain/user"
	"groweasy/internal/logger"
	"groweasy/internal/usecase"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("course not found")
	ErrModuleNotFound  = errors.New("module not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrNotEnrolled     = errors.New("not enrolled in this course")
	ErrInternal        = errors.New("internal error")
)

const (
	defaultPageSize     = 12
	recommendationLimit = 10
)

type Deps struct {
	Courses     course.Repository
	Enrollments course.EnrollmentRepository
	Users       user.Repository
	Cache       usecase.SearchCache
	Events      usecase.EventPublisher
	Logger      *zap.Logger
	Now         func() time.Time
}

type Service struct {
	courses     course.Repository
	enrollments course.EnrollmentRepository
	users       user.Repository
	cache       usecase.SearchCache
	events      usecase.EventPublisher
	log         *zap.Logger
	now         func() time.Time
}

func NewService(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		courses:     d.Courses,
		enrollments: d.Enrollments,
		users:       d.Users,
		cache:       d.Cache,
		events:      d.Events,
		log:         logger.Named(d.Logger, "courses"),
		now:         now,
	}
}

type ListParams struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type ListResult struct {
	Courses    []course.Course    `json:"courses"`
	Pagination usecase.Pagination `json:"pagination"`
}

// List returns active courses, newest first.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	p.Page, p.Limit = usecase.NormalizePage(p.Page, p.Limit, defaultPageSize)
	p.Category = allOrValue(p.Category)
	p.Level = allOrValue(p.Level)

	key := usecase.CacheKey(usecase.CoursesListPrefix, p)
	var cached ListResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	items, total, err := s.courses.ListActive(ctx, course.ListFilter{
		Category: p.Category,
		Level:    p.Level,
		Limit:    p.Limit,
		Offset:   usecase.Offset(p.Page, p.Limit),
	})
	if err != nil {
		s.log.Error("list courses failed", zap.Error(err))
		return ListResult{}, ErrInternal
	}

	out := ListResult{Courses: items, Pagination: usecase.NewPagination(p.Page, p.Limit, total)}
	s.cacheSet(ctx, key, out)
	return out, nil
}

type SearchParams struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

type SearchResult struct {
	Courses []course.Course `json:"courses"`
	Count   int             `json:"count"`
	Query   string          `json:"query"`
}

func (s *Service) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	p.Query = strings.TrimSpace(p.Query)
	if p.Query == "" {
		return SearchResult{}, ErrInvalidInput
	}
	p.Category = allOrValue(p.Category)
	p.Level = allOrValue(p.Level)

	key := usecase.CacheKey(usecase.CoursesSearchPrefix, SearchParams{
		Query:    usecase.NormalizeSearchValue(p.Query),
		Category: p.Category,
		Level:    p.Level,
	})
	var cached SearchResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.courses.Search(ctx, course.SearchFilter{Query: p.Query, Category: p.Category, Level: p.Level})
	if err != nil {
		s.log.Error("search courses failed", zap.String("query", p.Query), zap.Error(err))
		return SearchResult{}, ErrInternal
	}

	out := SearchResult{Courses: items, Count: len(items), Query: p.Query}
	s.cacheSet(ctx, key, out)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return course.Course{}, ErrNotFound
		}
		return course.Course{}, ErrInternal
	}
	return c, nil
}

func (s *Service) Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Course, error) {
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return course.Course{}, err
	}
	if !c.IsActive {
		return course.Course{}, ErrNotFound
	}

	e := course.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: s.now().UTC(), CompletedModules: []int{}}
	if err := s.enrollments.Enroll(ctx, e); err != nil {
		if errors.Is(err, course.ErrAlreadyEnrolled) {
			return course.Course{}, ErrAlreadyEnrolled
		}
		s.log.Error("enroll failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		return course.Course{}, ErrInternal
	}
	c.EnrolledStudents++

	if s.cache != nil {
		if err := s.cache.InvalidateCourses(ctx); err != nil {
			s.log.Warn("course cache invalidation failed", zap.Error(err))
		}
	}
	if s.events != nil {
		s.events.Publish(ctx, usecase.EventCourseEnrolled, map[string]any{"courseId": courseID, "userId": userID})
	}
	return c, nil
}

func (s *Service) Enrolled(ctx context.Context, userID uuid.UUID) ([]course.EnrolledCourse, error) {
	items, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list enrollments failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// UpdateProgress marks one module (by position) complete or incomplete and
// recomputes the percentage over all modules of the course.
func (s *Service) UpdateProgress(ctx context.Context, userID, courseID uuid.UUID, moduleIndex int, completed bool) (course.Enrollment, error) {
	e, err := s.enrollment(ctx, userID, courseID)
	if err != nil {
		return course.Enrollment{}, err
	}
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return course.Enrollment{}, err
	}
	if moduleIndex < 0 || moduleIndex >= len(c.Modules) {
		return course.Enrollment{}, ErrInvalidInput
	}

	e.CompletedModules = toggle(e.CompletedModules, moduleIndex, completed)
	e.Progress = Progress(len(e.CompletedModules), len(c.Modules))

	if err := s.enrollments.UpdateProgress(ctx, e); err != nil {
		s.log.Error("update progress failed", zap.Error(err))
		return course.Enrollment{}, ErrInternal
	}
	return e, nil
}

func toggle(done []int, idx int, completed bool) []int {
	out := make([]int, 0, len(done)+1)
	found := false
	for _, d := range done {
		if d == idx {
			found = true
			if !completed {
				continue
			}
		}
		out = append(out, d)
	}
	if completed && !found {
		out = append(out, idx)
	}
	return out
}

// Progress is the rounded percentage of completed modules.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(total) * 100))
	if p > 100 {
		p = 100
	}
	return p
}

type QuestionResult struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	UserAnswer    *int   `json:"userAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizResult struct {
	Score          int              `json:"score"`
	CorrectAnswers int              `json:"correctAnswers"`
	TotalQuestions int              `json:"totalQuestions"`
	Results        []QuestionResult `json:"results"`
}

// SubmitQuiz grades answers (option indexes, by question position) for an
// enrolled user. Missing answers count as wrong.
func (s *Service) SubmitQuiz(ctx context.Context, userID, courseID, moduleID uuid.UUID, answers []int) (QuizResult, error) {
	c, err := s.Get(ctx, courseID)
	if err != nil {
		return QuizResult{}, err
	}
	m, ok := c.ModuleByID(moduleID)
	if !ok {
		return QuizResult{}, ErrModuleNotFound
	}
	if _, err := s.enrollment(ctx, userID, courseID); err != nil {
		return QuizResult{}, err
	}

	return Grade(m.Quiz, answers), nil
}

func Grade(quiz []course.QuizQuestion, answers []int) QuizResult {
	res := QuizResult{TotalQuestions: len(quiz), Results: make([]QuestionResult, 0, len(quiz))}
	for i, q := range quiz {
		r := QuestionResult{
			QuestionIndex: i,
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if i < len(answers) {
			a := answers[i]
			r.UserAnswer = &a
			r.IsCorrect = a == q.CorrectAnswer
		}
		if r.IsCorrect {
			res.CorrectAnswers++
		}
		res.Results = append(res.Results, r)
	}
	res.Score = Progress(res.CorrectAnswers, res.TotalQuestions)
	return res
}

func (s *Service) enrollment(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error) {
	e, err := s.enrollments.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, course.ErrNotEnrolled) {
			return course.Enrollment{}, ErrNotEnrolled
		}
		return course.Enrollment{}, ErrInternal
	}
	return e, nil
}

// Recommend ranks every active course for the user with the shared scorer.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) ([]matching.Ranked[course.Course], error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	all, err := s.courses.ListAllActive(ctx)
	if err != nil {
		s.log.Error("list active courses failed", zap.Error(err))
		return nil, ErrInternal
	}

	p := usr.Profile
	profile := matching.Profile{Skills: p.Skills, City: p.Location.City, EducationLevel: p.Education.Level}
	ranked := matching.Rank(profile, all, CourseCandidate, s.now())
	if len(ranked) > recommendationLimit {
		ranked = ranked[:recommendationLimit]
	}
	return ranked, nil
}

// CourseCandidate maps a course onto the scorer. Courses are delivered online
// and open to every education level.
func CourseCandidate(c course.Course) matching.Candidate {
	return matching.Candidate{
		Skills:    c.Skills,
		IsRemote:  true,
		Education: matching.EducationAny,
		CreatedAt: c.CreatedAt,
	}
}

func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, out)
	if err != nil {
		s.log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v, 0); err != nil {
		s.log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func allOrValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
