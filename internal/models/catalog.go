package models

// Tutorial is one item of the fixed tutorial catalogue.
type Tutorial struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Tutorials is the numbered set of instructional items whose completion is tracked.
var Tutorials = []Tutorial{
	{ID: 1, Title: "Getting Started with AI in Education"},
	{ID: 2, Title: "Email Assistant Walkthrough"},
	{ID: 3, Title: "Effective Note Summarization"},
	{ID: 4, Title: "Prompt Engineering Fundamentals"},
	{ID: 5, Title: "Academic Integrity and AI"},
	{ID: 6, Title: "Research Assistant Best Practices"},
}

// IsTutorial reports whether id belongs to the catalogue.
func IsTutorial(id int) bool {
	for _, t := range Tutorials {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Tool names used as usage-log keys
const (
	ToolEmailAssistant    = "email-assistant"
	ToolNoteSummarizer    = "note-summarizer"
	ToolQuizGenerator     = "quiz-generator"
	ToolSearchAssistant   = "search-assistant"
	ToolFeedbackAssistant = "feedback-assistant"
	ToolPromptBuilder     = "prompt-builder"
)

// IsTool reports whether name is a known tool.
func IsTool(name string) bool {
	switch name {
	case ToolEmailAssistant, ToolNoteSummarizer, ToolQuizGenerator,
		ToolSearchAssistant, ToolFeedbackAssistant, ToolPromptBuilder:
		return true
	}
	return false
}
