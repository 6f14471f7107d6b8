package ai

import "strings"

const (
	fallbackCareer = "Based on your profile, I recommend exploring technology, digital marketing, or data analysis fields. " +
		"These areas have great opportunities in India. Consider taking relevant courses to build your skills. " +
		"Would you like specific course recommendations?"

	fallbackStudy = "Great question! For effective learning, I suggest: 1) Break topics into smaller parts, " +
		"2) Practice regularly with hands-on projects, 3) Join study groups or online communities, " +
		"4) Take notes and review them daily. What specific topic are you working on?"

	fallbackProgramming = "Programming is an excellent skill to develop! Start with fundamentals like HTML, CSS, and JavaScript " +
		"for web development, or Python for data science. Practice by building small projects and gradually increase complexity. " +
		"Consistency is key!"

	fallbackGeneric = "Thank you for your question! While I'm having some technical difficulties right now, " +
		"I encourage you to explore our courses and resources. Remember, every expert was once a beginner. " +
		"Keep learning and practicing!"
)

type keywordReply struct {
	keywords []string
	text     string
}

// Checked in order; the first group with a hit wins.
var keywordReplies = []keywordReply{
	{keywords: []string{"career", "job"}, text: fallbackCareer},
	{keywords: []string{"learn", "study"}, text: fallbackStudy},
	{keywords: []string{"programming", "coding"}, text: fallbackProgramming},
}

// FallbackText picks a canned reply by keyword. It does no I/O.
func FallbackText(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, kr := range keywordReplies {
		for _, kw := range kr.keywords {
			if strings.Contains(lower, kw) {
				return kr.text
			}
		}
	}
	return fallbackGeneric
}

const defaultLearningRecommendations = `Based on current market trends, here are key learning recommendations:

Priority Skills:
1. Programming (JavaScript, Python) - 3-6 months
2. Digital Marketing - 2-3 months
3. Data Analysis - 4-6 months
4. Communication Skills - Ongoing
5. English Proficiency - Ongoing

Free Resources:
- FreeCodeCamp for programming
- Google Digital Marketing courses
- YouTube tutorials
- Government skill development programs

Certifications:
- Google Career Certificates
- Microsoft Learn
- AWS Cloud Practitioner`

const defaultJobSearchTips = `Job Search Strategy:

Target Roles:
- Junior Developer
- Digital Marketing Executive
- Data Analyst Trainee
- Customer Support Specialist

Companies to Target:
- Local IT companies
- Startups in your city
- Remote-first companies
- Government organizations

Salary Expectations:
- Entry level: ₹2-4 LPA
- With skills: ₹4-8 LPA

Key Tips:
- Build a strong LinkedIn profile
- Create a portfolio of projects
- Practice interview skills
- Network with professionals`
