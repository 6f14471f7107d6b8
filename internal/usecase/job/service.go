package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groweasy/internal/domain/job"
	"groweasy/internal/domain/matching"
	"groweasy/internal/domain/user"
	"groweasy/internal/logger"
	"groweasy/internal/search"
	"groweasy/internal/usecase"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("job not found")
	ErrAlreadyApplied    = errors.New("already applied for this job")
	ErrDeadlinePassed    = errors.New("application deadline has passed")
	ErrUploadUnavailable = errors.New("resume upload is not configured")
	ErrInternal          = errors.New("internal error")
)

const (
	defaultPageSize     = 10
	candidatePoolSize   = 100
	recommendationLimit = 10
	maxResumeBytes      = 5 << 20
)

// ResumeStore persists an uploaded resume and returns where it can be fetched.
type ResumeStore interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error)
}

// Notifier pushes new postings to connected clients.
type Notifier interface {
	JobPosted(j job.Job)
}

type Deps struct {
	Jobs         job.Repository
	Applications job.ApplicationRepository
	Users        user.Repository
	Cache        usecase.SearchCache
	Resumes      ResumeStore
	Events       usecase.EventPublisher
	Notifier     Notifier
	Logger       *zap.Logger
	Now          func() time.Time
}

type Service struct {
	jobs     job.Repository
	apps     job.ApplicationRepository
	users    user.Repository
	cache    usecase.SearchCache
	resumes  ResumeStore
	events   usecase.EventPublisher
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		jobs:     d.Jobs,
		apps:     d.Applications,
		users:    d.Users,
		cache:    d.Cache,
		resumes:  d.Resumes,
		events:   d.Events,
		notifier: d.Notifier,
		log:      logger.Named(d.Logger, "jobs"),
		now:      now,
	}
}

type ListParams struct {
	JobType  string `json:"jobType"`
	WorkType string `json:"workType"`
	City     string `json:"city"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type ListResult struct {
	Jobs       []job.Job          `json:"jobs"`
	Pagination usecase.Pagination `json:"pagination"`
}

// List returns open postings, featured first and then newest.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	p.Page, p.Limit = usecase.NormalizePage(p.Page, p.Limit, defaultPageSize)
	p.JobType = allOrValue(p.JobType)
	p.WorkType = allOrValue(p.WorkType)
	p.City = strings.TrimSpace(p.City)

	keyParams := p
	keyParams.City = usecase.NormalizeSearchValue(p.City)
	key := usecase.CacheKey(usecase.JobsListPrefix, keyParams)

	var cached ListResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, total, err := s.jobs.ListOpen(ctx, job.ListFilter{
		JobType:  p.JobType,
		WorkType: p.WorkType,
		City:     p.City,
		Limit:    p.Limit,
		Offset:   usecase.Offset(p.Page, p.Limit),
		Now:      s.now(),
	})
	if err != nil {
		s.log.Error("list jobs failed", zap.Error(err))
		return ListResult{}, ErrInternal
	}

	out := ListResult{Jobs: jobs, Pagination: usecase.NewPagination(p.Page, p.Limit, total)}
	s.cacheSet(ctx, key, out)
	return out, nil
}

type SearchParams struct {
	Query      string   `json:"q"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Experience *int     `json:"experience"`
	MinSalary  *int64   `json:"salary"`
}

type SearchResult struct {
	Jobs    []job.Job    `json:"jobs"`
	Count   int          `json:"count"`
	Query   string       `json:"query"`
	Filters SearchParams `json:"filters"`
}

func (s *Service) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	p.Query = strings.TrimSpace(p.Query)
	if p.Query == "" {
		return SearchResult{}, ErrInvalidInput
	}
	p.Location = strings.TrimSpace(p.Location)
	p.Skills = trimList(p.Skills)

	key := usecase.CacheKey(usecase.JobsSearchPrefix, SearchParams{
		Query:      usecase.NormalizeSearchValue(p.Query),
		Location:   usecase.NormalizeSearchValue(p.Location),
		Skills:     usecase.NormalizeList(p.Skills),
		Experience: p.Experience,
		MinSalary:  p.MinSalary,
	})

	var cached SearchResult
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, err := s.jobs.Search(ctx, job.SearchFilter{
		Query:      p.Query,
		Variants:   search.ProcessQuery(p.Query).Variants,
		Location:   p.Location,
		Skills:     p.Skills,
		Experience: p.Experience,
		MinSalary:  p.MinSalary,
		Now:        s.now(),
	})
	if err != nil {
		s.log.Error("search jobs failed", zap.String("query", p.Query), zap.Error(err))
		return SearchResult{}, ErrInternal
	}

	out := SearchResult{Jobs: jobs, Count: len(jobs), Query: p.Query, Filters: p}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// Get returns a posting and counts the view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		s.log.Warn("increment views failed", zap.String("job_id", id.String()), zap.Error(err))
	} else {
		j.Views++
	}
	return j, nil
}

type CreateInput struct {
	Title            string
	Company          job.Company
	Description      string
	Requirements     []string
	Responsibilities []string
	RequiredSkills   []string
	PreferredSkills  []string
	Location         job.Location
	Salary           job.Salary
	Experience       job.ExperienceRange
	Education        string
	JobType          string
	Benefits         []string
	Deadline         *time.Time
	Featured         bool
}

func (s *Service) Create(ctx context.Context, postedBy uuid.UUID, in CreateInput) (job.Job, error) {
	j, err := s.buildJob(postedBy, in)
	if err != nil {
		return job.Job{}, err
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		s.log.Error("create job failed", zap.Error(err))
		return job.Job{}, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.InvalidateJobs(ctx); err != nil {
			s.log.Warn("job cache invalidation failed", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.JobPosted(j)
	}
	s.publish(ctx, usecase.EventJobPosted, map[string]any{
		"jobId":   j.ID,
		"title":   j.Title,
		"company": j.Company.Name,
		"city":    j.Location.City,
		"remote":  j.Location.IsRemote,
	})

	s.log.Info("job posted", zap.String("job_id", j.ID.String()), zap.String(logger.FieldUserID, postedBy.String()))
	return j, nil
}

func (s *Service) buildJob(postedBy uuid.UUID, in CreateInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company.Name)
	desc := strings.TrimSpace(in.Description)
	if title == "" || company == "" || desc == "" {
		return job.Job{}, ErrInvalidInput
	}

	jobType := strings.TrimSpace(in.JobType)
	if !job.IsJobType(jobType) {
		return job.Job{}, ErrInvalidInput
	}
	loc := in.Location
	loc.City = strings.TrimSpace(loc.City)
	loc.State = strings.TrimSpace(loc.State)
	loc.Country = strings.TrimSpace(loc.Country)
	if loc.Country == "" {
		loc.Country = "India"
	}
	if loc.WorkType == "" {
		loc.WorkType = "Full-time"
	}
	if !job.IsWorkType(loc.WorkType) {
		return job.Job{}, ErrInvalidInput
	}
	if loc.City == "" && !loc.IsRemote {
		return job.Job{}, ErrInvalidInput
	}

	edu := strings.TrimSpace(in.Education)
	if edu == "" {
		edu = matching.EducationAny
	}
	if !job.IsEducation(edu) {
		return job.Job{}, ErrInvalidInput
	}

	sal := in.Salary
	if sal.Min < 0 || (sal.Max > 0 && sal.Max < sal.Min) {
		return job.Job{}, ErrInvalidInput
	}
	if sal.Currency == "" {
		sal.Currency = "INR"
	}
	if sal.Period == "" {
		sal.Period = "Annual"
	}
	exp := in.Experience
	if exp.Min < 0 || (exp.Max > 0 && exp.Max < exp.Min) {
		return job.Job{}, ErrInvalidInput
	}

	now := s.now().UTC()
	if in.Deadline != nil && !in.Deadline.After(now) {
		return job.Job{}, ErrInvalidInput
	}

	in.Company.Name = company
	return job.Job{
		ID:                  uuid.New(),
		Title:               title,
		Company:             in.Company,
		Description:         desc,
		Requirements:        trimList(in.Requirements),
		Responsibilities:    trimList(in.Responsibilities),
		RequiredSkills:      trimList(in.RequiredSkills),
		PreferredSkills:     trimList(in.PreferredSkills),
		Location:            loc,
		Salary:              sal,
		Experience:          exp,
		Education:           edu,
		JobType:             jobType,
		Benefits:            trimList(in.Benefits),
		ApplicationDeadline: in.Deadline,
		PostedBy:            &postedBy,
		IsActive:            true,
		Featured:            in.Featured,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// ResumeFile is an uploaded resume attached to an application.
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ApplyInput struct {
	CoverLetter string
	ResumeURL   string
	Resume      *ResumeFile
}

type ApplyResult struct {
	JobID       uuid.UUID `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	CompanyName string    `json:"companyName"`
	ResumeURL   string    `json:"resumeUrl,omitempty"`
}

func (s *Service) Apply(ctx context.Context, userID, jobID uuid.UUID, in ApplyInput) (ApplyResult, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ApplyResult{}, ErrNotFound
		}
		return ApplyResult{}, ErrInternal
	}
	if !j.IsActive {
		return ApplyResult{}, ErrNotFound
	}

	applied, err := s.apps.HasApplied(ctx, jobID, userID)
	if err != nil {
		return ApplyResult{}, ErrInternal
	}
	if applied {
		return ApplyResult{}, ErrAlreadyApplied
	}
	if j.DeadlinePassed(s.now()) {
		return ApplyResult{}, ErrDeadlinePassed
	}

	resumeURL := strings.TrimSpace(in.ResumeURL)
	if in.Resume != nil {
		if len(in.Resume.Data) == 0 || len(in.Resume.Data) > maxResumeBytes {
			return ApplyResult{}, ErrInvalidInput
		}
		if s.resumes == nil {
			return ApplyResult{}, ErrUploadUnavailable
		}
		resumeURL, err = s.resumes.Upload(ctx, userID, in.Resume.Filename, in.Resume.ContentType, in.Resume.Data)
		if err != nil {
			s.log.Error("resume upload failed", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
			return ApplyResult{}, ErrInternal
		}
	}

	a := job.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		UserID:      userID,
		Status:      job.StatusApplied,
		ResumeURL:   resumeURL,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		AppliedAt:   s.now().UTC(),
	}
	if err := s.apps.CreateApplication(ctx, a); err != nil {
		if errors.Is(err, job.ErrAlreadyApplied) {
			return ApplyResult{}, ErrAlreadyApplied
		}
		s.log.Error("create application failed", zap.Error(err))
		return ApplyResult{}, ErrInternal
	}

	s.publish(ctx, usecase.EventJobApplied, map[string]any{
		"jobId":  jobID,
		"userId": userID,
		"status": a.Status,
	})
	return ApplyResult{JobID: jobID, JobTitle: j.Title, CompanyName: j.Company.Name, ResumeURL: resumeURL}, nil
}

func (s *Service) Applications(ctx context.Context, userID uuid.UUID) ([]job.ApplicationView, error) {
	views, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list applications failed", zap.Error(err))
		return nil, ErrInternal
	}
	return views, nil
}

// ProfileSummary is the slice of the profile that drove a recommendation.
type ProfileSummary struct {
	Skills    []string `json:"skills"`
	Location  string   `json:"location"`
	Education string   `json:"education"`
}

type Recommendations struct {
	Items       []matching.Ranked[job.Job]
	UserProfile ProfileSummary
}

// Recommend scores a broad candidate pool for the user and keeps the best ten.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) (Recommendations, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Recommendations{}, ErrNotFound
		}
		return Recommendations{}, ErrInternal
	}

	now := s.now()
	p := usr.Profile
	candidates, err := s.jobs.ListCandidates(ctx, job.CandidateFilter{
		Skills: p.Skills,
		City:   p.Location.City,
		Limit:  candidatePoolSize,
		Now:    now,
	})
	if err != nil {
		s.log.Error("list candidates failed", zap.Error(err))
		return Recommendations{}, ErrInternal
	}

	profile := matching.Profile{Skills: p.Skills, City: p.Location.City, EducationLevel: p.Education.Level}
	ranked := matching.Rank(profile, candidates, JobCandidate, now)
	if len(ranked) > recommendationLimit {
		ranked = ranked[:recommendationLimit]
	}

	return Recommendations{
		Items: ranked,
		UserProfile: ProfileSummary{
			Skills:    p.Skills,
			Location:  p.Location.City,
			Education: p.Education.Level,
		},
	}, nil
}

// JobCandidate is the scorer's view of a posting.
func JobCandidate(j job.Job) matching.Candidate {
	return matching.Candidate{
		Skills:    j.RequiredSkills,
		City:      j.Location.City,
		IsRemote:  j.Location.IsRemote,
		Education: j.Education,
		CreatedAt: j.CreatedAt,
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
	if hit {
		s.log.Debug("cache hit", zap.String("key", key))
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

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, key, payload)
}

func allOrValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
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
