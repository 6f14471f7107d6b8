package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/domain/course"
)

type CoursesSeeder struct{}

func (CoursesSeeder) Name() string { return "courses" }

func (CoursesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "courses", "id", "title", "modules", "instructor", "skills", "enrolled_students"); err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, c := range sampleCourses() {
			modules, err := json.Marshal(c.Modules)
			if err != nil {
				return err
			}
			instructor, err := json.Marshal(c.Instructor)
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, `
INSERT INTO courses (title, description, category, level, duration, modules, skills, prerequisites,
	difficulty, instructor, thumbnail, enrolled_students, rating)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
WHERE NOT EXISTS (SELECT 1 FROM courses WHERE title = $1)`,
				c.Title, c.Description, c.Category, c.Level, c.Duration, modules, c.Skills, c.Prerequisites,
				c.Difficulty, instructor, c.Thumbnail, c.EnrolledStudents, c.Rating,
			)
			if err != nil {
				return fmt.Errorf("insert course %q: %w", c.Title, err)
			}
		}
		return nil
	})
}

func module(order int, title, description, duration string, quiz ...course.QuizQuestion) course.Module {
	return course.Module{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Duration:    duration,
		Order:       order,
		Quiz:        quiz,
	}
}

func sampleCourses() []course.Course {
	return []course.Course{
		{
			Title:         "Complete Web Development Bootcamp",
			Description:   "Learn HTML, CSS, JavaScript, React, Node.js and build full-stack web applications. Perfect for beginners.",
			Category:      "Programming",
			Level:         "Beginner",
			Duration:      "12 weeks",
			Skills:        []string{"HTML", "CSS", "JavaScript", "React", "Node.js", "MongoDB"},
			Prerequisites: []string{"Basic computer knowledge"},
			Difficulty:    2,
			Instructor: course.Instructor{
				Name:   "Priya Sharma",
				Bio:    "Full-stack developer with 5+ years experience in web development",
				Rating: 4.8,
			},
			Thumbnail: "https://images.pexels.com/photos/3861958/pexels-photo-3861958.jpeg?w=400",
			Modules: []course.Module{
				module(1, "HTML & CSS Fundamentals", "Learn the building blocks of web development", "3 hours", course.QuizQuestion{
					Question:      "What does HTML stand for?",
					Options:       []string{"Hypertext Markup Language", "High Tech Modern Language", "Home Tool Markup Language"},
					CorrectAnswer: 0,
					Explanation:   "HTML stands for Hypertext Markup Language, the standard markup language for web pages.",
				}),
				module(2, "JavaScript Basics", "Introduction to programming with JavaScript", "4 hours", course.QuizQuestion{
					Question:      "Which of the following is used to declare a variable in JavaScript?",
					Options:       []string{"var", "let", "const", "All of the above"},
					CorrectAnswer: 3,
					Explanation:   "JavaScript provides var, let, and const keywords to declare variables, each with different scoping rules.",
				}),
			},
			Rating:           4.7,
			EnrolledStudents: 1250,
		},
		{
			Title:         "Data Science with Python",
			Description:   "Master data analysis, visualization, and machine learning using Python, pandas, and scikit-learn.",
			Category:      "Data Science",
			Level:         "Intermediate",
			Duration:      "16 weeks",
			Skills:        []string{"Python", "pandas", "NumPy", "Matplotlib", "scikit-learn", "SQL"},
			Prerequisites: []string{"Basic Python knowledge", "Mathematics basics"},
			Difficulty:    3,
			Instructor: course.Instructor{
				Name:   "Dr. Rajesh Kumar",
				Bio:    "Data Scientist with PhD in Statistics and 8+ years industry experience",
				Rating: 4.9,
			},
			Thumbnail: "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?w=400",
			Modules: []course.Module{
				module(1, "Python for Data Analysis", "Learn pandas and NumPy for data manipulation", "5 hours", course.QuizQuestion{
					Question:      "Which library is primarily used for data manipulation in Python?",
					Options:       []string{"NumPy", "pandas", "Matplotlib", "scikit-learn"},
					CorrectAnswer: 1,
					Explanation:   "pandas is the primary library for data manipulation and analysis in Python.",
				}),
			},
			Rating:           4.8,
			EnrolledStudents: 850,
		},
		{
			Title:         "Digital Marketing Mastery",
			Description:   "Complete guide to digital marketing including SEO, social media, PPC, and email marketing.",
			Category:      "Digital Marketing",
			Level:         "Beginner",
			Duration:      "8 weeks",
			Skills:        []string{"SEO", "Social Media Marketing", "Google Ads", "Email Marketing", "Analytics"},
			Prerequisites: []string{"Basic internet knowledge"},
			Difficulty:    2,
			Instructor: course.Instructor{
				Name:   "Aisha Patel",
				Bio:    "Digital marketing expert with 6+ years helping businesses grow online",
				Rating: 4.6,
			},
			Thumbnail: "https://images.pexels.com/photos/3861951/pexels-photo-3861951.jpeg?w=400",
			Modules: []course.Module{
				module(1, "SEO Fundamentals", "Learn search engine optimization basics", "3 hours", course.QuizQuestion{
					Question:      "What does SEO stand for?",
					Options:       []string{"Search Engine Optimization", "Social Engagement Online", "Site Enhancement Operations"},
					CorrectAnswer: 0,
					Explanation:   "SEO stands for Search Engine Optimization, the practice of increasing website visibility in search results.",
				}),
			},
			Rating:           4.5,
			EnrolledStudents: 2100,
		},
		{
			Title:         "UI/UX Design Fundamentals",
			Description:   "Learn user interface and user experience design principles, tools, and create stunning designs.",
			Category:      "Design",
			Level:         "Beginner",
			Duration:      "10 weeks",
			Skills:        []string{"Figma", "Adobe XD", "Wireframing", "Prototyping", "User Research"},
			Prerequisites: []string{"Creative thinking", "Basic computer skills"},
			Difficulty:    2,
			Instructor: course.Instructor{
				Name:   "Saurabh Gupta",
				Bio:    "Senior UI/UX Designer with 7+ years experience in product design",
				Rating: 4.7,
			},
			Thumbnail: "https://images.pexels.com/photos/3861943/pexels-photo-3861943.jpeg?w=400",
			Modules: []course.Module{
				module(1, "Design Principles", "Understand fundamental design principles", "2 hours"),
			},
			Rating:           4.6,
			EnrolledStudents: 950,
		},
		{
			Title:         "Business Analytics with Excel",
			Description:   "Master Excel for business analytics, data visualization, and decision making.",
			Category:      "Business",
			Level:         "Beginner",
			Duration:      "6 weeks",
			Skills:        []string{"Excel", "Data Analysis", "Pivot Tables", "Charts", "Dashboard Creation"},
			Prerequisites: []string{"Basic computer knowledge"},
			Difficulty:    1,
			Instructor: course.Instructor{
				Name:   "Neha Jain",
				Bio:    "Business analyst with 4+ years experience in corporate data analysis",
				Rating: 4.4,
			},
			Thumbnail: "https://images.pexels.com/photos/3861972/pexels-photo-3861972.jpeg?w=400",
			Modules: []course.Module{
				module(1, "Excel Basics", "Learn Excel fundamentals and formulas", "2 hours"),
			},
			Rating:           4.3,
			EnrolledStudents: 1450,
		},
	}
}
