package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"groweasy/internal/domain/course"
	"groweasy/internal/domain/user"

	"github.com/google/uuid"
)

func TestNewCourseResponse_HidesAnswers(t *testing.T) {
	c := course.Course{
		ID:    uuid.New(),
		Title: "Go Basics",
		Modules: []course.Module{{
			ID:    uuid.New(),
			Title: "Intro",
			Quiz: []course.QuizQuestion{{
				Question:      "2+2?",
				Options:       []string{"3", "4"},
				CorrectAnswer: 1,
				Explanation:   "arithmetic",
			}},
		}},
	}

	b, err := json.Marshal(NewCourseResponse(c))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "correctAnswer") || strings.Contains(s, "arithmetic") {
		t.Fatalf("answer key leaked: %s", s)
	}
	if !strings.Contains(s, `"options":["3","4"]`) {
		t.Fatalf("expected options in output: %s", s)
	}
	if c.Modules[0].Quiz[0].CorrectAnswer != 1 {
		t.Fatalf("source course must not be modified")
	}
}

func TestNewUserResponse_OmitsPasswordHash(t *testing.T) {
	u := user.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", PasswordHash: "$2a$secret", Role: user.RoleStudent}

	b, err := json.Marshal(NewUserResponse(u))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "secret") {
		t.Fatalf("password hash leaked: %s", s)
	}
	if !strings.Contains(s, `"skills":[]`) {
		t.Fatalf("expected empty skills array: %s", s)
	}
}
