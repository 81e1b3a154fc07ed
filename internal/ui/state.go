package ui

import (
	"fmt"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
)

// Banner texts shown for failed actions
const (
	SummaryErrorText = "Failed to fetch summary. Please check your backend servers."
	QuizErrorText    = "Failed to generate quiz. Please check your backend servers."
	UploadErrorText  = "Failed to read the uploaded file. It may exceed the size limit."
)

// Mode selects which inputs the form submits
type Mode int

const (
	ModeWeb Mode = iota
	ModePDF
	ModeCombined
)

// Modes lists every mode in display order
var Modes = []Mode{ModeWeb, ModePDF, ModeCombined}

// ParseMode converts a form value into a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "web", "":
		return ModeWeb, nil
	case "pdf":
		return ModePDF, nil
	case "combined":
		return ModeCombined, nil
	default:
		return ModeWeb, fmt.Errorf("unknown mode %q", s)
	}
}

// String returns the form value
func (m Mode) String() string {
	switch m {
	case ModePDF:
		return "pdf"
	case ModeCombined:
		return "combined"
	default:
		return "web"
	}
}

// Label is the human readable name
func (m Mode) Label() string {
	switch m {
	case ModePDF:
		return "PDF"
	case ModeCombined:
		return "Topic + PDF"
	default:
		return "Web topic"
	}
}

func (m Mode) NeedsTopic() bool { return m == ModeWeb || m == ModeCombined }

func (m Mode) NeedsFile() bool { return m == ModePDF || m == ModeCombined }

// ViewState is everything the page shows
type ViewState struct {
	Mode        Mode
	Topic       string
	FileName    string
	Loading     bool
	Error       string
	Summary     string
	Quiz        *types.QuizResponse
	QuizLoading bool
}

// CanSubmit reports whether the summarize button may fire
func (s ViewState) CanSubmit() bool {
	if s.Loading || s.QuizLoading {
		return false
	}
	if s.Mode.NeedsTopic() && s.Topic == "" {
		return false
	}
	if s.Mode.NeedsFile() && s.FileName == "" {
		return false
	}
	return true
}

// CanQuiz reports whether a quiz may be requested
func (s ViewState) CanQuiz() bool {
	return s.Summary != "" && !s.Loading && !s.QuizLoading
}

// Msg is an event fed to Update
type Msg interface{ msg() }

type (
	SelectMode    struct{ Mode Mode }
	EditTopic     struct{ Topic string }
	SelectFile    struct{ Name string }
	UploadFailed  struct{}
	SubmitStarted struct{}
	SummaryLoaded struct{ Summary string }
	SummaryFailed struct{}
	QuizStarted   struct{}
	QuizLoaded    struct{ Quiz *types.QuizResponse }
	QuizFailed    struct{}
)

func (SelectMode) msg()    {}
func (EditTopic) msg()     {}
func (SelectFile) msg()    {}
func (UploadFailed) msg()  {}
func (SubmitStarted) msg() {}
func (SummaryLoaded) msg() {}
func (SummaryFailed) msg() {}
func (QuizStarted) msg()   {}
func (QuizLoaded) msg()    {}
func (QuizFailed) msg()    {}

// Update returns the state after applying msg. Messages that are not
// allowed in the current state leave it unchanged.
func Update(s ViewState, m Msg) ViewState {
	switch m := m.(type) {
	case SelectMode:
		if s.Loading {
			return s
		}
		s.Mode = m.Mode
		s.Error = ""
	case EditTopic:
		s.Topic = m.Topic
	case SelectFile:
		s.FileName = m.Name
	case UploadFailed:
		if s.Loading {
			return s
		}
		s.FileName = ""
		s.Error = UploadErrorText
	case SubmitStarted:
		if !s.CanSubmit() {
			return s
		}
		s.Loading = true
		s.Error = ""
		s.Summary = ""
		s.Quiz = nil
	case SummaryLoaded:
		if !s.Loading {
			return s
		}
		s.Loading = false
		s.Summary = m.Summary
	case SummaryFailed:
		if !s.Loading {
			return s
		}
		s.Loading = false
		s.Error = SummaryErrorText
	case QuizStarted:
		if !s.CanQuiz() {
			return s
		}
		s.QuizLoading = true
		s.Error = ""
		s.Quiz = nil
	case QuizLoaded:
		if !s.QuizLoading {
			return s
		}
		s.QuizLoading = false
		s.Quiz = m.Quiz
	case QuizFailed:
		if !s.QuizLoading {
			return s
		}
		s.QuizLoading = false
		s.Error = QuizErrorText
	}
	return s
}
