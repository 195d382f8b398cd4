package interview

import "fmt"

// GenerateQuestions returns the scripted question list for a session.
// The default set is a single opener regardless of role and company; the
// extended set adds four more questions, two of them templated on the
// role. IDs are stable ordinals so answers can reference them.
func GenerateQuestions(role, company string, extended bool) []Question {
	questions := []Question{
		{
			ID:         "1",
			Text:       "Could you introduce yourself, focusing on your skills, strengths, and career aspirations?",
			Category:   "Behavioral",
			Difficulty: "Easy",
		},
	}

	if !extended {
		return questions
	}

	return append(questions,
		Question{
			ID:         "2",
			Text:       fmt.Sprintf("What makes you a good fit for the %s position?", role),
			Category:   "Role Fit",
			Difficulty: "Medium",
		},
		Question{
			ID:         "3",
			Text:       "Describe a challenging project you worked on and how you overcame obstacles.",
			Category:   "Problem Solving",
			Difficulty: "Medium",
		},
		Question{
			ID:         "4",
			Text:       "How do you handle working under pressure and tight deadlines?",
			Category:   "Behavioral",
			Difficulty: "Easy",
		},
		Question{
			ID:         "5",
			Text:       "What are your salary expectations for this role?",
			Category:   "Compensation",
			Difficulty: "Hard",
		},
	)
}
