package handlers

import (
	"net/http"

	"quiz-api/internal/models"
	"quiz-api/internal/service"
	"quiz-api/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	Gemini *service.GeminiService
}

func NewFeedbackHandler(g *service.GeminiService) *FeedbackHandler {
	return &FeedbackHandler{Gemini: g}
}

// GenerateFeedback handles POST /feedback/generate. The response is a study
// handout for the missed questions, or a congratulations message when the
// attempt was perfect.
func (h *FeedbackHandler) GenerateFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid feedback request", err)
		return
	}

	feedback, err := h.Gemini.GenerateFeedback(c.Request.Context(), &req)
	if err != nil {
		respondGeminiError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FeedbackResponse{Feedback: feedback})
}
