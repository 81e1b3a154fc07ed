package types

// TopicRequest is the JSON body of /api/process-topic and of the upstream /summarize-web call
type TopicRequest struct {
	Topic string `json:"topic"`
}

// QuizRequest is the JSON body of /api/generate-quiz and of the upstream /generate-quiz call
type QuizRequest struct {
	Summary string `json:"summary"`
}

// FileUpload is a file received from the client. It only lives for one request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes
func (f FileUpload) Size() int {
	return len(f.Data)
}

// SummaryResponse is the expected upstream answer for the three summarize endpoints
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// QuizResponse is the expected upstream answer for /generate-quiz
type QuizResponse struct {
	Title     string         `json:"quiz_title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one multiple-choice question.
// CorrectLabel should match one option label; nothing enforces it.
type QuizQuestion struct {
	Prompt       string       `json:"question"`
	Options      []QuizOption `json:"options"`
	CorrectLabel string       `json:"correct_answer"`
}

// QuizOption is one labelled answer, e.g. {"label":"A","text":"Paris"}
type QuizOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// IsCorrect reports whether label is the question's correct answer
func (q QuizQuestion) IsCorrect(label string) bool {
	return q.CorrectLabel != "" && q.CorrectLabel == label
}
