package matching

import (
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func puneGraduate() Profile {
	return Profile{
		Skills:         []string{"JavaScript", "React"},
		City:           "Pune",
		EducationLevel: "Undergraduate",
	}
}

func TestScore_CityMatchAnyEducationFresh(t *testing.T) {
	c := Candidate{
		Skills:    []string{"javascript", "node"},
		City:      "Pune",
		Education: "Any",
		CreatedAt: fixedNow,
	}

	res := Score(puneGraduate(), c, fixedNow)
	if res.MatchScore != 80 {
		t.Fatalf("expected score 80, got %d", res.MatchScore)
	}
	if res.MatchingSkillCount != 1 {
		t.Fatalf("expected 1 matching skill, got %d", res.MatchingSkillCount)
	}
}

func TestScore_NothingMatches(t *testing.T) {
	c := Candidate{
		Skills:    []string{"Go", "C++"},
		City:      "Delhi",
		Education: "Postgraduate",
		CreatedAt: fixedNow.Add(-30 * 24 * time.Hour),
	}

	res := Score(puneGraduate(), c, fixedNow)
	if res.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", res.MatchScore)
	}
	if res.MatchingSkillCount != 0 {
		t.Fatalf("expected 0 matching skills, got %d", res.MatchingSkillCount)
	}
}

func TestScore_SubstringMatchesEitherWay(t *testing.T) {
	// "java" is contained in "javascript", so it counts as a match.
	c := Candidate{
		Skills:    []string{"Java", "C++"},
		City:      "Delhi",
		Education: "Postgraduate",
		CreatedAt: fixedNow.Add(-30 * 24 * time.Hour),
	}

	res := Score(puneGraduate(), c, fixedNow)
	if res.MatchingSkillCount != 1 {
		t.Fatalf("expected 1 matching skill, got %d", res.MatchingSkillCount)
	}
	if res.MatchScore != 20 {
		t.Fatalf("expected score 20, got %d", res.MatchScore)
	}

	short := Score(Profile{Skills: []string{"R"}}, Candidate{Skills: []string{"React"}}, fixedNow)
	if short.MatchingSkillCount != 1 {
		t.Fatalf("expected R to match React")
	}
}

func TestScore_NoRequiredSkills(t *testing.T) {
	c := Candidate{Skills: nil, IsRemote: true, Education: "Any", CreatedAt: fixedNow}
	res := Score(puneGraduate(), c, fixedNow)
	if res.MatchScore != 60 {
		t.Fatalf("expected 60 without skill term, got %d", res.MatchScore)
	}

	blank := Candidate{Skills: []string{" ", ""}}
	if got := Score(Profile{Skills: []string{""}}, blank, fixedNow); got.MatchScore != 0 || got.MatchingSkillCount != 0 {
		t.Fatalf("expected blank skills to be ignored, got %+v", got)
	}
}

func TestScore_MissingFieldsContributeNothing(t *testing.T) {
	res := Score(Profile{}, Candidate{}, fixedNow)
	if res.MatchScore != 0 {
		t.Fatalf("expected 0 for empty inputs, got %d", res.MatchScore)
	}

	// Both cities empty must not count as a location match.
	res = Score(Profile{City: ""}, Candidate{City: "", Education: ""}, fixedNow)
	if res.MatchScore != 0 {
		t.Fatalf("expected empty cities not to match, got %d", res.MatchScore)
	}
}

func TestScore_CaseInsensitiveLocationAndEducation(t *testing.T) {
	c := Candidate{City: "PUNE", Education: "undergraduate"}
	res := Score(puneGraduate(), c, fixedNow)
	if res.MatchScore != 50 {
		t.Fatalf("expected 50, got %d", res.MatchScore)
	}
}

func TestScore_RecencyBoundary(t *testing.T) {
	c := Candidate{CreatedAt: fixedNow.Add(-7 * 24 * time.Hour)}
	if got := Score(Profile{}, c, fixedNow).MatchScore; got != 10 {
		t.Fatalf("expected exactly 7 days to be recent, got %d", got)
	}
	c.CreatedAt = fixedNow.Add(-7*24*time.Hour - time.Second)
	if got := Score(Profile{}, c, fixedNow).MatchScore; got != 0 {
		t.Fatalf("expected older than 7 days not to be recent, got %d", got)
	}
}

func TestScore_RoundsAndStaysInRange(t *testing.T) {
	p := Profile{Skills: []string{"go"}}
	c := Candidate{Skills: []string{"go", "rust", "zig"}, IsRemote: true, Education: "Any", CreatedAt: fixedNow}
	res := Score(p, c, fixedNow)
	// 40/3 = 13.33 -> 13, plus 60
	if res.MatchScore != 73 {
		t.Fatalf("expected 73, got %d", res.MatchScore)
	}

	full := Candidate{Skills: []string{"go"}, IsRemote: true, Education: "Any", CreatedAt: fixedNow}
	if got := Score(p, full, fixedNow).MatchScore; got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScore_Reasons(t *testing.T) {
	res := Score(puneGraduate(), Candidate{Skills: []string{"react"}, IsRemote: true, Education: "Any"}, fixedNow)
	want := []string{"1 matching skills", "Remote work available", "Suitable for Any level"}
	if !reflect.DeepEqual(res.Reasons, want) {
		t.Fatalf("unexpected reasons: %v", res.Reasons)
	}

	res = Score(puneGraduate(), Candidate{City: "Indore"}, fixedNow)
	want = []string{"0 matching skills", "Located in Indore"}
	if !reflect.DeepEqual(res.Reasons, want) {
		t.Fatalf("unexpected reasons: %v", res.Reasons)
	}
}

type item struct {
	name string
	c    Candidate
}

func viewItem(it item) Candidate { return it.c }

func TestRank_DescendingAndStable(t *testing.T) {
	items := []item{
		{name: "a", c: Candidate{City: "Delhi"}},
		{name: "b", c: Candidate{IsRemote: true}},
		{name: "c", c: Candidate{City: "Mumbai"}},
		{name: "d", c: Candidate{City: "pune"}},
	}

	ranked := Rank(puneGraduate(), items, viewItem, fixedNow)
	got := make([]string, 0, len(ranked))
	for _, r := range ranked {
		got = append(got, r.Item.name)
	}
	want := []string{"b", "d", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRank_DeterministicAndDoesNotMutate(t *testing.T) {
	items := []item{
		{name: "x", c: Candidate{Skills: []string{"React"}}},
		{name: "y", c: Candidate{Skills: []string{"Go"}, IsRemote: true}},
		{name: "z", c: Candidate{Skills: []string{"javascript"}, CreatedAt: fixedNow}},
	}
	before := make([]item, len(items))
	copy(before, items)

	first := Rank(puneGraduate(), items, viewItem, fixedNow)
	second := Rank(puneGraduate(), items, viewItem, fixedNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
	if !reflect.DeepEqual(items, before) {
		t.Fatalf("input slice was modified")
	}
	for _, r := range first {
		if r.MatchScore < 0 || r.MatchScore > 100 {
			t.Fatalf("score out of range: %d", r.MatchScore)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(puneGraduate(), []item{}, viewItem, fixedNow); len(got) != 0 {
		t.Fatalf("expected empty result")
	}
}
