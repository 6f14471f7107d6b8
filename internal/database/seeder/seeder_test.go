package seeder

import (
	"testing"

	"groweasy/internal/domain/course"
	"groweasy/internal/domain/job"
)

func TestSampleCourses_Valid(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range sampleCourses() {
		if seen[c.Title] {
			t.Fatalf("duplicate course title %q", c.Title)
		}
		seen[c.Title] = true
		if !course.IsCategory(c.Category) || !course.IsLevel(c.Level) {
			t.Fatalf("course %q has invalid category or level", c.Title)
		}
		if len(c.Modules) == 0 {
			t.Fatalf("course %q has no modules", c.Title)
		}
		for _, m := range c.Modules {
			for _, q := range m.Quiz {
				if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
					t.Fatalf("course %q module %q has out of range answer", c.Title, m.Title)
				}
			}
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 sample courses, got %d", len(seen))
	}
}

func TestSampleJobs_Valid(t *testing.T) {
	jobs := sampleJobs()
	if len(jobs) != 5 {
		t.Fatalf("expected 5 sample jobs, got %d", len(jobs))
	}
	for _, sj := range jobs {
		j := sj.job
		if !job.IsWorkType(j.Location.WorkType) || !job.IsJobType(j.JobType) || !job.IsEducation(j.Education) {
			t.Fatalf("job %q has invalid enum values", j.Title)
		}
		if sj.deadlineDays <= 0 {
			t.Fatalf("job %q must have a future deadline", j.Title)
		}
		if j.Salary.Min > j.Salary.Max {
			t.Fatalf("job %q salary range inverted", j.Title)
		}
	}
}

func TestDefaults_Order(t *testing.T) {
	s := Defaults(AdminSeeder{Email: "admin@groweasyai.com", Password: "admin1234"})
	want := []string{"admin", "courses", "jobs"}
	if len(s) != len(want) {
		t.Fatalf("unexpected seeders: %d", len(s))
	}
	for i, name := range want {
		if s[i].Name() != name {
			t.Fatalf("seeder %d: got %s want %s", i, s[i].Name(), name)
		}
	}
}
