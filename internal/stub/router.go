// Package stub serves canned answers for the summarization service contract.
// It lets the gateway and the UI run end to end without the real service.
package stub

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// detail mirrors the error envelope of the real service
type detail struct {
	Detail string `json:"detail"`
}

// NewRouter returns a gin engine implementing the upstream endpoints
func NewRouter(log *logger.Logger) *gin.Engine {
	h := &handler{logger: log.Named("stub")}

	r := gin.New()
	r.Use(logger.GinRecovery(log))
	r.Use(logger.GinLogger(log))

	r.GET("/", h.root)
	r.POST("/summarize-web", h.summarizeWeb)
	r.POST("/summarize-pdf", h.summarizePDF)
	r.POST("/summarize-combined", h.summarizeCombined)
	r.POST("/generate-quiz", h.generateQuiz)

	return r
}

type handler struct {
	logger *logger.Logger
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI service is online!"})
}

func (h *handler) summarizeWeb(c *gin.Context) {
	var req struct {
		Topic *string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == nil {
		unprocessable(c, "field required: topic")
		return
	}

	c.JSON(http.StatusOK, types.SummaryResponse{
		Summary: fmt.Sprintf("Placeholder summary for the topic: %s", *req.Topic),
	})
}

func (h *handler) summarizePDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		unprocessable(c, "field required: file")
		return
	}

	if ct := file.Header.Get("Content-Type"); ct != pdfContentType {
		h.logger.Info("rejected upload", zap.String("filename", file.Filename), zap.String("content_type", ct))
		c.JSON(http.StatusBadRequest, detail{Detail: "Invalid file type. Only PDF files are supported."})
		return
	}

	c.JSON(http.StatusOK, types.SummaryResponse{Summary: "Placeholder summary for the uploaded PDF."})
}

func (h *handler) summarizeCombined(c *gin.Context) {
	if _, err := c.FormFile("file"); err != nil {
		unprocessable(c, "field required: file")
		return
	}
	if _, ok := c.GetPostForm("topic"); !ok {
		unprocessable(c, "field required: topic")
		return
	}

	c.JSON(http.StatusOK, types.SummaryResponse{Summary: "Placeholder summary for combined data."})
}

func (h *handler) generateQuiz(c *gin.Context) {
	var req struct {
		Summary *string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Summary == nil {
		unprocessable(c, "field required: summary")
		return
	}

	c.JSON(http.StatusOK, PlaceholderQuiz(*req.Summary))
}

// PlaceholderQuiz is the canned quiz served for any summary
func PlaceholderQuiz(summary string) types.QuizResponse {
	title := "Quiz"
	if words := strings.Fields(summary); len(words) > 0 {
		if len(words) > 6 {
			words = words[:6]
		}
		title = "Quiz: " + strings.Join(words, " ")
	}

	return types.QuizResponse{
		Title: title,
		Questions: []types.QuizQuestion{
			{
				Prompt: "What is the capital of France?",
				Options: []types.QuizOption{
					{Label: "A", Text: "Paris"},
					{Label: "B", Text: "Berlin"},
					{Label: "C", Text: "Rome"},
				},
				CorrectLabel: "A",
			},
			{
				Prompt: "Which planet is known as the Red Planet?",
				Options: []types.QuizOption{
					{Label: "A", Text: "Venus"},
					{Label: "B", Text: "Mars"},
					{Label: "C", Text: "Jupiter"},
					{Label: "D", Text: "Mercury"},
				},
				CorrectLabel: "B",
			},
		},
	}
}

func unprocessable(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, detail{Detail: msg})
}
