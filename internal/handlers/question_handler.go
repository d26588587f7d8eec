package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quiz-api/configs"
	"quiz-api/internal/models"
	"quiz-api/internal/service"
	"quiz-api/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

// GetRandomQuestions handles GET /questions?count=&subject=.
func (h *QuestionHandler) GetRandomQuestions(c *gin.Context) {
	count := 5
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > configs.AppConfig.MaxQuestionsPerRequest {
			utils.BadRequestResponse(c, "count must be between 1 and "+
				strconv.Itoa(configs.AppConfig.MaxQuestionsPerRequest), nil)
			return
		}
		count = n
	}
	subject := c.Query("subject")

	questions, err := h.Service.RandomQuestions(c.Request.Context(), count, subject)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch questions", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := c.Param("id")
	question, err := h.Service.GetQuestion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.NotFoundResponse(c, "Question not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch question", err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) GetAvailableSubjects(c *gin.Context) {
	subjects, err := h.Service.ListSubjects(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch subjects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (h *QuestionHandler) GetQuestionsCount(c *gin.Context) {
	subject := c.Query("subject")

	count, err := h.Service.CountQuestions(c.Request.Context(), subject)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to count questions", err)
		return
	}

	resp := gin.H{
		"total_questions": count,
		"filtered":        subject != "",
	}
	if subject != "" {
		resp["subject"] = subject
	} else {
		resp["subject"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		utils.BadRequestResponse(c, "Invalid question payload", err)
		return
	}
	if err := h.Service.CreateQuestion(c.Request.Context(), &question); err != nil {
		if errors.Is(err, models.ErrAnswerOutOfRange) || errors.Is(err, models.ErrTooFewOptions) ||
			errors.Is(err, models.ErrEmptyQuestionText) {
			utils.BadRequestResponse(c, "Invalid question payload", err)
			return
		}
		utils.InternalErrorResponse(c, "Failed to create question", err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := c.Param("id")
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid update payload", err)
		return
	}
	if err := h.Service.UpdateQuestion(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.NotFoundResponse(c, "Question not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteQuestion(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.NotFoundResponse(c, "Question not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete question", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
