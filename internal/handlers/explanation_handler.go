package handlers

import (
	"errors"
	"net/http"

	"quiz-api/internal/models"
	"quiz-api/internal/service"
	"quiz-api/utils"

	"github.com/gin-gonic/gin"
)

type ExplanationHandler struct {
	Gemini *service.GeminiService
}

func NewExplanationHandler(g *service.GeminiService) *ExplanationHandler {
	return &ExplanationHandler{Gemini: g}
}

// GenerateExplanation handles POST /explanations/generate.
func (h *ExplanationHandler) GenerateExplanation(c *gin.Context) {
	var req models.ExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid explanation request", err)
		return
	}

	explanation, err := h.Gemini.GenerateExplanation(c.Request.Context(), req.QuestionText)
	if err != nil {
		respondGeminiError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ExplanationResponse{Explanation: explanation})
}

// TestConnection handles GET /explanations/test.
func (h *ExplanationHandler) TestConnection(c *gin.Context) {
	message, err := h.Gemini.TestConnection(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusOK, "Gemini connection failed", err)
		return
	}
	utils.SuccessResponse(c, "Gemini connection OK", gin.H{"message": message})
}

// respondGeminiError maps generation errors onto HTTP statuses: validation
// faults are 400, upstream 5xx becomes 502, everything else 500.
func respondGeminiError(c *gin.Context, err error) {
	var apiErr *service.APIError
	switch {
	case errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, models.ErrNoQuestions),
		errors.Is(err, models.ErrTotalMismatch),
		errors.Is(err, models.ErrAnswersMismatch):
		utils.BadRequestResponse(c, "Invalid request", err)
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 500 {
			utils.BadGatewayResponse(c, "Gemini server error", err)
		} else {
			utils.BadRequestResponse(c, "Gemini rejected the request", err)
		}
	default:
		utils.InternalErrorResponse(c, "Failed to generate content", err)
	}
}
