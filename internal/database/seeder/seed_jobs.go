package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/domain/job"
)

// JobsSeeder inserts sample postings attributed to the admin account.
type JobsSeeder struct {
	AdminEmail string
	Now        func() time.Time
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "company_name", "required_skills", "application_deadline", "posted_by"); err != nil {
		return err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	var postedBy *uuid.UUID
	if email := strings.ToLower(strings.TrimSpace(s.AdminEmail)); email != "" {
		var id uuid.UUID
		if err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id); err == nil {
			postedBy = &id
		}
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, sj := range sampleJobs() {
			j := sj.job
			deadline := now.Add(time.Duration(sj.deadlineDays) * 24 * time.Hour)

			_, err := tx.Exec(ctx, `
INSERT INTO jobs (title, company_name, company_about, description, requirements, responsibilities,
	required_skills, preferred_skills, city, state, is_remote, work_type, salary_min, salary_max,
	experience_min, experience_max, education, job_type, benefits, application_deadline, posted_by)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE title = $1 AND company_name = $2)`,
				j.Title, j.Company.Name, j.Company.About, j.Description, j.Requirements, j.Responsibilities,
				j.RequiredSkills, j.PreferredSkills, j.Location.City, j.Location.State, j.Location.IsRemote, j.Location.WorkType,
				j.Salary.Min, j.Salary.Max, j.Experience.Min, j.Experience.Max, j.Education, j.JobType, j.Benefits,
				deadline, postedBy,
			)
			if err != nil {
				return fmt.Errorf("insert job %q: %w", j.Title, err)
			}
		}
		return nil
	})
}

type sampleJob struct {
	job          job.Job
	deadlineDays int
}

func sampleJobs() []sampleJob {
	return []sampleJob{
		{deadlineDays: 30, job: job.Job{
			Title: "Junior Web Developer",
			Company: job.Company{
				Name:  "TechStart Solutions",
				About: "A growing startup focused on web development and digital solutions",
			},
			Description: "We are looking for a passionate Junior Web Developer to join our team. You will work on exciting projects using modern web technologies.",
			Requirements: []string{
				"Bachelor's degree in Computer Science or related field",
				"Basic knowledge of HTML, CSS, JavaScript",
				"Familiarity with React or Angular",
				"Good communication skills",
			},
			Responsibilities: []string{
				"Develop and maintain web applications",
				"Collaborate with designers and backend developers",
				"Write clean, efficient code",
				"Participate in code reviews",
			},
			RequiredSkills:  []string{"HTML", "CSS", "JavaScript", "React"},
			PreferredSkills: []string{"Node.js", "Git", "Bootstrap"},
			Location:        job.Location{City: "Indore", State: "Madhya Pradesh", WorkType: "Full-time"},
			Salary:          job.Salary{Min: 300000, Max: 450000},
			Experience:      job.ExperienceRange{Min: 0, Max: 2},
			Education:       "Undergraduate",
			JobType:         "Software Development",
			Benefits:        []string{"Health Insurance", "Flexible Hours", "Learning Budget"},
		}},
		{deadlineDays: 45, job: job.Job{
			Title: "Data Analyst Intern",
			Company: job.Company{
				Name:  "DataInsights Corp",
				About: "Leading data analytics company serving enterprises across India",
			},
			Description: "Join our data team as an intern and gain hands-on experience with real-world data projects.",
			Requirements: []string{
				"Currently pursuing degree in Statistics, Mathematics, or Computer Science",
				"Knowledge of Excel and SQL",
				"Basic understanding of Python or R",
				"Analytical mindset",
			},
			Responsibilities: []string{
				"Assist in data collection and cleaning",
				"Create reports and visualizations",
				"Support senior analysts in projects",
				"Learn advanced analytics tools",
			},
			RequiredSkills:  []string{"Excel", "SQL", "Python"},
			PreferredSkills: []string{"Tableau", "Power BI", "Statistics"},
			Location:        job.Location{City: "Pune", State: "Maharashtra", WorkType: "Internship", IsRemote: true},
			Salary:          job.Salary{Min: 15000, Max: 25000},
			Experience:      job.ExperienceRange{Min: 0, Max: 1},
			Education:       "Undergraduate",
			JobType:         "Data Science",
			Benefits:        []string{"Mentorship", "Certificate", "Remote Work"},
		}},
		{deadlineDays: 25, job: job.Job{
			Title: "Digital Marketing Executive",
			Company: job.Company{
				Name:  "GrowthHackers Agency",
				About: "Digital marketing agency helping businesses scale online presence",
			},
			Description: "We need a creative and data-driven Digital Marketing Executive to manage campaigns across multiple channels.",
			Requirements: []string{
				"Graduation in Marketing, Business, or related field",
				"Understanding of SEO, SEM, and social media",
				"Knowledge of Google Analytics and Facebook Ads",
				"Creative and analytical thinking",
			},
			Responsibilities: []string{
				"Plan and execute digital marketing campaigns",
				"Manage social media accounts",
				"Analyze campaign performance",
				"Create engaging content",
			},
			RequiredSkills:  []string{"SEO", "Google Ads", "Social Media", "Analytics"},
			PreferredSkills: []string{"Content Writing", "Graphic Design", "Email Marketing"},
			Location:        job.Location{City: "Jaipur", State: "Rajasthan", WorkType: "Full-time"},
			Salary:          job.Salary{Min: 250000, Max: 400000},
			Experience:      job.ExperienceRange{Min: 1, Max: 3},
			Education:       "Undergraduate",
			JobType:         "Digital Marketing",
			Benefits:        []string{"Performance Bonus", "Skill Development", "Health Insurance"},
		}},
		{deadlineDays: 35, job: job.Job{
			Title: "UI/UX Designer",
			Company: job.Company{
				Name:  "DesignCraft Studio",
				About: "Creative design studio specializing in user experience and interface design",
			},
			Description: "Looking for a talented UI/UX Designer to create beautiful and functional designs for web and mobile applications.",
			Requirements: []string{
				"Portfolio demonstrating UI/UX design skills",
				"Proficiency in Figma, Adobe XD, or Sketch",
				"Understanding of user-centered design principles",
				"Knowledge of responsive design",
			},
			Responsibilities: []string{
				"Design user interfaces for web and mobile apps",
				"Create wireframes and prototypes",
				"Conduct user research and testing",
				"Collaborate with development teams",
			},
			RequiredSkills:  []string{"Figma", "Adobe XD", "Wireframing", "Prototyping"},
			PreferredSkills: []string{"User Research", "Adobe Creative Suite", "HTML/CSS"},
			Location:        job.Location{City: "Kochi", State: "Kerala", WorkType: "Full-time", IsRemote: true},
			Salary:          job.Salary{Min: 350000, Max: 600000},
			Experience:      job.ExperienceRange{Min: 1, Max: 4},
			Education:       "Undergraduate",
			JobType:         "Design",
			Benefits:        []string{"Creative Freedom", "Latest Tools", "Flexible Schedule"},
		}},
		{deadlineDays: 20, job: job.Job{
			Title: "Content Writer",
			Company: job.Company{
				Name:  "ContentCrafters",
				About: "Content marketing agency creating engaging content for various industries",
			},
			Description: "We are seeking a skilled Content Writer to produce high-quality content for our clients across different industries.",
			Requirements: []string{
				"Excellent English writing and grammar skills",
				"Experience in content writing or copywriting",
				"Research and fact-checking abilities",
				"SEO knowledge preferred",
			},
			Responsibilities: []string{
				"Write blog posts, articles, and web content",
				"Research industry topics and trends",
				"Optimize content for SEO",
				"Meet content deadlines",
			},
			RequiredSkills:  []string{"Content Writing", "Research", "SEO", "Grammar"},
			PreferredSkills: []string{"WordPress", "Social Media", "Marketing"},
			Location:        job.Location{City: "Bhopal", State: "Madhya Pradesh", WorkType: "Part-time", IsRemote: true},
			Salary:          job.Salary{Min: 20000, Max: 35000},
			Experience:      job.ExperienceRange{Min: 1, Max: 3},
			Education:       "Undergraduate",
			JobType:         "Other",
			Benefits:        []string{"Flexible Hours", "Work from Home", "Skill Development"},
		}},
	}
}
