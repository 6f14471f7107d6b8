package search

import "testing"

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"  Front-End  Developer ": "front end developer",
		"UI/UX":                   "ui ux",
		"Node.js":                 "nodejs",
		"":                        "",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Fatalf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProcessQuery_KeepsOriginalFirst(t *testing.T) {
	qc := ProcessQuery(" Node.js ")
	if qc.Original != "Node.js" {
		t.Fatalf("unexpected original: %q", qc.Original)
	}
	if len(qc.Variants) == 0 || qc.Variants[0] != "Node.js" {
		t.Fatalf("expected raw query first, got %v", qc.Variants)
	}
}

func TestProcessQuery_ExpandsSynonyms(t *testing.T) {
	qc := ProcessQuery("ML engineer")
	if !has(qc.Variants, "machine learning engineer") {
		t.Fatalf("expected expansion of leading word, got %v", qc.Variants)
	}

	qc = ProcessQuery("fullstack")
	if !has(qc.Variants, "full stack") || !has(qc.Variants, "mern") {
		t.Fatalf("expected compact form to expand, got %v", qc.Variants)
	}

	qc = ProcessQuery("Frontend")
	if !has(qc.Variants, "front end") {
		t.Fatalf("expected synonym, got %v", qc.Variants)
	}
	if len(qc.Variants) > maxVariants {
		t.Fatalf("too many variants: %d", len(qc.Variants))
	}
}

func TestProcessQuery_NoDuplicates(t *testing.T) {
	qc := ProcessQuery("devops")
	seen := map[string]bool{}
	for _, v := range qc.Variants {
		if seen[v] {
			t.Fatalf("duplicate variant %q in %v", v, qc.Variants)
		}
		seen[v] = true
	}
}

func TestProcessQuery_Empty(t *testing.T) {
	qc := ProcessQuery("   ")
	if qc.Variants == nil || len(qc.Variants) != 0 {
		t.Fatalf("expected empty non-nil variants, got %v", qc.Variants)
	}
}

func TestGetSynonyms_ReturnsCopy(t *testing.T) {
	got := GetSynonyms("js")
	got[0] = "mutated"
	if Synonyms["js"][0] != "javascript" {
		t.Fatalf("synonym table was mutated")
	}
	if len(GetSynonyms("unknown")) != 0 {
		t.Fatalf("expected no synonyms")
	}
}

func has(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
