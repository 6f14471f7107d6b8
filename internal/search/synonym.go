package search

// Synonyms maps a normalized search phrase to phrases that mean the same
// thing in postings.
var Synonyms = map[string][]string{
	"frontend":          {"front end", "ui developer", "react"},
	"backend":           {"back end", "server side", "api developer"},
	"full stack":        {"fullstack", "mern"},
	"js":                {"javascript"},
	"ts":                {"typescript"},
	"ml":                {"machine learning"},
	"ai":                {"artificial intelligence", "machine learning"},
	"data analyst":      {"data analytics", "business analyst"},
	"data scientist":    {"data science", "machine learning"},
	"designer":          {"ui designer", "ux designer", "graphic designer"},
	"ui ux":             {"ui/ux", "product designer"},
	"hr":                {"human resources", "recruiter"},
	"devops":            {"site reliability", "cloud engineer"},
	"digital marketing": {"seo", "social media marketing"},
	"fresher":           {"entry level", "graduate trainee"},
}

func GetSynonyms(phrase string) []string {
	if phrase == "" {
		return []string{}
	}
	if v, ok := Synonyms[phrase]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
