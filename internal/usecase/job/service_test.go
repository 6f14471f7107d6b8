package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/domain/job"
	"groweasy/internal/domain/user"
	"groweasy/internal/usecase"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type memJobs struct {
	jobs       map[uuid.UUID]job.Job
	listCalls  int
	candidates []job.Job
	created    []job.Job
}

func newMemJobs(items ...job.Job) *memJobs {
	m := &memJobs{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range items {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *memJobs) ListOpen(_ context.Context, f job.ListFilter) ([]job.Job, int, error) {
	m.listCalls++
	out := make([]job.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	return out, len(out), nil
}

func (m *memJobs) Search(context.Context, job.SearchFilter) ([]job.Job, error) { return nil, nil }

func (m *memJobs) ListCandidates(context.Context, job.CandidateFilter) ([]job.Job, error) {
	return m.candidates, nil
}

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *memJobs) IncrementViews(_ context.Context, id uuid.UUID) error {
	j := m.jobs[id]
	j.Views++
	m.jobs[id] = j
	return nil
}

func (m *memJobs) Create(_ context.Context, j job.Job) error {
	m.created = append(m.created, j)
	m.jobs[j.ID] = j
	return nil
}

type memApps struct {
	apps []job.Application
}

func (m *memApps) HasApplied(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	for _, a := range m.apps {
		if a.JobID == jobID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) CreateApplication(_ context.Context, a job.Application) error {
	m.apps = append(m.apps, a)
	return nil
}

func (m *memApps) ListByUser(context.Context, uuid.UUID) ([]job.ApplicationView, error) {
	return nil, nil
}

type oneUser struct{ u user.User }

func (o oneUser) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (o oneUser) CreateUser(context.Context, user.User) error         { return nil }
func (o oneUser) GetUserByEmail(context.Context, string) (user.User, error) {
	return o.u, nil
}
func (o oneUser) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != o.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return o.u, nil
}
func (o oneUser) UpdateProfile(context.Context, uuid.UUID, string, user.Profile) error { return nil }
func (o oneUser) UpdateAssessment(context.Context, uuid.UUID, user.AssessmentResults) error {
	return nil
}

type mapCache struct {
	data        map[string]any
	invalidated int
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if p, ok := out.(*ListResult); ok {
		*p = v.(ListResult)
	}
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) InvalidateJobs(context.Context) error {
	c.invalidated++
	c.data = map[string]any{}
	return nil
}

func (c *mapCache) InvalidateCourses(context.Context) error { return nil }

type recordedEvents struct{ keys []string }

func (r *recordedEvents) Publish(_ context.Context, key string, _ any) { r.keys = append(r.keys, key) }

type recordedNotifier struct{ posted []job.Job }

func (r *recordedNotifier) JobPosted(j job.Job) { r.posted = append(r.posted, j) }

type fakeResumes struct {
	url   string
	calls int
}

func (f *fakeResumes) Upload(context.Context, uuid.UUID, string, string, []byte) (string, error) {
	f.calls++
	return f.url, nil
}

func openJob(title string) job.Job {
	deadline := fixedNow.Add(48 * time.Hour)
	return job.Job{
		ID:                  uuid.New(),
		Title:               title,
		Company:             job.Company{Name: "Acme"},
		IsActive:            true,
		ApplicationDeadline: &deadline,
		Education:           "Any",
		CreatedAt:           fixedNow.Add(-24 * time.Hour),
	}
}

func TestService_List_UsesCache(t *testing.T) {
	jobs := newMemJobs(openJob("Dev"))
	cache := &mapCache{data: map[string]any{}}
	s := NewService(Deps{Jobs: jobs, Cache: cache, Now: func() time.Time { return fixedNow }})

	first, err := s.List(context.Background(), ListParams{City: " Pune "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Pagination.Total != 1 || first.Pagination.CurrentPage != 1 {
		t.Fatalf("unexpected pagination: %+v", first.Pagination)
	}
	if _, err := s.List(context.Background(), ListParams{City: "pune", JobType: "all"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.listCalls != 1 {
		t.Fatalf("expected second call served from cache, got %d repository calls", jobs.listCalls)
	}
}

func TestService_Search_RequiresQuery(t *testing.T) {
	s := NewService(Deps{Jobs: newMemJobs()})
	if _, err := s.Search(context.Background(), SearchParams{Query: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Get_CountsView(t *testing.T) {
	j := openJob("Dev")
	s := NewService(Deps{Jobs: newMemJobs(j)})

	got, err := s.Get(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("expected views=1, got %d", got.Views)
	}
	if _, err := s.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Create(t *testing.T) {
	jobs := newMemJobs()
	cache := &mapCache{data: map[string]any{"jobs:list:x": ListResult{}}}
	events := &recordedEvents{}
	notifier := &recordedNotifier{}
	s := NewService(Deps{Jobs: jobs, Cache: cache, Events: events, Notifier: notifier, Now: func() time.Time { return fixedNow }})

	admin := uuid.New()
	got, err := s.Create(context.Background(), admin, CreateInput{
		Title:          " Data Analyst ",
		Company:        job.Company{Name: "Acme"},
		Description:    "Analyse data",
		RequiredSkills: []string{"SQL", " ", "Excel"},
		Location:       job.Location{IsRemote: true},
		JobType:        "Data Science",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Title != "Data Analyst" || got.Education != "Any" || got.Location.WorkType != "Full-time" {
		t.Fatalf("unexpected job: %+v", got)
	}
	if len(got.RequiredSkills) != 2 || got.PostedBy == nil || *got.PostedBy != admin {
		t.Fatalf("unexpected job: %+v", got)
	}
	if cache.invalidated != 1 || len(notifier.posted) != 1 {
		t.Fatalf("expected invalidation and notification, got %d %d", cache.invalidated, len(notifier.posted))
	}
	if len(events.keys) != 1 || events.keys[0] != usecase.EventJobPosted {
		t.Fatalf("unexpected events: %v", events.keys)
	}
}

func TestService_Create_Invalid(t *testing.T) {
	s := NewService(Deps{Jobs: newMemJobs(), Now: func() time.Time { return fixedNow }})
	past := fixedNow.Add(-time.Hour)
	base := CreateInput{Title: "T", Company: job.Company{Name: "C"}, Description: "D", JobType: "Sales", Location: job.Location{City: "Indore"}}

	cases := map[string]func(in *CreateInput){
		"job type":   func(in *CreateInput) { in.JobType = "Astronaut" },
		"no place":   func(in *CreateInput) { in.Location = job.Location{} },
		"work type":  func(in *CreateInput) { in.Location.WorkType = "Gig" },
		"salary":     func(in *CreateInput) { in.Salary = job.Salary{Min: 10, Max: 5} },
		"deadline":   func(in *CreateInput) { in.Deadline = &past },
		"education":  func(in *CreateInput) { in.Education = "PhD" },
		"no company": func(in *CreateInput) { in.Company.Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			if _, err := s.Create(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Apply(t *testing.T) {
	j := openJob("Dev")
	apps := &memApps{}
	events := &recordedEvents{}
	resumes := &fakeResumes{url: "https://cdn/resumes/a.pdf"}
	s := NewService(Deps{Jobs: newMemJobs(j), Applications: apps, Resumes: resumes, Events: events, Now: func() time.Time { return fixedNow }})
	uid := uuid.New()

	res, err := s.Apply(context.Background(), uid, j.ID, ApplyInput{
		CoverLetter: "hello",
		Resume:      &ResumeFile{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.ResumeURL != resumes.url || res.CompanyName != "Acme" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(apps.apps) != 1 || apps.apps[0].Status != job.StatusApplied {
		t.Fatalf("expected one applied application, got %+v", apps.apps)
	}

	if _, err := s.Apply(context.Background(), uid, j.ID, ApplyInput{}); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestService_Apply_Closed(t *testing.T) {
	j := openJob("Dev")
	past := fixedNow.Add(-time.Hour)
	j.ApplicationDeadline = &past
	s := NewService(Deps{Jobs: newMemJobs(j), Applications: &memApps{}, Now: func() time.Time { return fixedNow }})

	if _, err := s.Apply(context.Background(), uuid.New(), j.ID, ApplyInput{}); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
	if _, err := s.Apply(context.Background(), uuid.New(), uuid.New(), ApplyInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Apply_UploadUnavailable(t *testing.T) {
	j := openJob("Dev")
	s := NewService(Deps{Jobs: newMemJobs(j), Applications: &memApps{}, Now: func() time.Time { return fixedNow }})
	_, err := s.Apply(context.Background(), uuid.New(), j.ID, ApplyInput{Resume: &ResumeFile{Data: []byte("x")}})
	if !errors.Is(err, ErrUploadUnavailable) {
		t.Fatalf("expected ErrUploadUnavailable, got %v", err)
	}
}

func TestService_Recommend(t *testing.T) {
	uid := uuid.New()
	users := oneUser{u: user.User{ID: uid, Profile: user.Profile{
		Skills:    []string{"JavaScript", "React"},
		Location:  user.Location{City: "Indore"},
		Education: user.Education{Level: "Graduate"},
	}}}

	weak := openJob("Accountant")
	weak.RequiredSkills = []string{"Tally"}
	weak.Location = job.Location{City: "Pune"}
	weak.Education = "Postgraduate"
	weak.CreatedAt = fixedNow.Add(-30 * 24 * time.Hour)

	strong := openJob("Frontend")
	strong.RequiredSkills = []string{"React", "JavaScript"}
	strong.Location = job.Location{City: "indore"}

	jobs := newMemJobs()
	jobs.candidates = []job.Job{weak, strong}
	for i := 0; i < 12; i++ {
		jobs.candidates = append(jobs.candidates, weak)
	}

	s := NewService(Deps{Jobs: jobs, Users: users, Now: func() time.Time { return fixedNow }})
	rec, err := s.Recommend(context.Background(), uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Items) != recommendationLimit {
		t.Fatalf("expected %d items, got %d", recommendationLimit, len(rec.Items))
	}
	if rec.Items[0].Item.ID != strong.ID || rec.Items[0].MatchScore != 100 {
		t.Fatalf("expected strong match first with 100, got %s %d", rec.Items[0].Item.Title, rec.Items[0].MatchScore)
	}
	if rec.Items[1].MatchScore != 0 {
		t.Fatalf("expected weak match to score 0, got %d", rec.Items[1].MatchScore)
	}
	if rec.UserProfile.Location != "Indore" {
		t.Fatalf("unexpected profile summary: %+v", rec.UserProfile)
	}
}
