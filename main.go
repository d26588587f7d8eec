package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"quiz-api/configs"
	"quiz-api/internal/db"
	"quiz-api/internal/event"
	"quiz-api/internal/handlers"
	"quiz-api/internal/repository"
	"quiz-api/internal/service"
	"quiz-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configs.LoadConfig()

	if configs.AppConfig.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	gin.SetMode(configs.AppConfig.GinMode)

	db.InitMongo(configs.AppConfig.MongoURI)
	defer db.Close()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if configs.AppConfig.RabbitMQURI != "" && configs.AppConfig.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(configs.AppConfig.RabbitMQURI, configs.AppConfig.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, activity events will not be published")
	}

	r := setupRouter(publisher)

	log.Printf("Starting %s v%s on port %s",
		configs.AppConfig.ServiceName, configs.AppConfig.ServiceVersion, configs.AppConfig.Port)
	if err := r.Run(":" + configs.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRouter(publisher *event.EventPublisher) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s\" %s\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.ErrorMessage,
		)
	}))

	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": configs.AppConfig.ServiceName,
			"version": configs.AppConfig.ServiceVersion,
		})
	})

	// Repositories, services, handlers
	database := db.Client.Database(configs.AppConfig.MongoDatabase)

	questionRepo := repository.NewQuestionRepository(database)
	questionService := service.NewQuestionService(questionRepo)
	questionHandler := handlers.NewQuestionHandler(questionService)

	geminiService := service.NewGeminiService(configs.AppConfig)
	explanationHandler := handlers.NewExplanationHandler(geminiService)
	feedbackHandler := handlers.NewFeedbackHandler(geminiService)

	api := r.Group("/api/v1")

	questions := api.Group("/questions")
	{
		questions.GET("/", func(c *gin.Context) {
			questionHandler.GetRandomQuestions(c)
			publish(publisher, "quiz.question.fetched", gin.H{
				"count":   c.Query("count"),
				"subject": c.Query("subject"),
			})
		})
		questions.GET("/:id", func(c *gin.Context) {
			questionHandler.GetQuestion(c)
			publish(publisher, "quiz.question.viewed", gin.H{"id": c.Param("id")})
		})
		questions.GET("/subjects/available", func(c *gin.Context) {
			questionHandler.GetAvailableSubjects(c)
			publish(publisher, "quiz.subjects.listed", nil)
		})
		questions.GET("/count/total", questionHandler.GetQuestionsCount)
	}

	protected := api.Group("/questions")
	protected.Use(authMiddleware())
	{
		protected.POST("/", func(c *gin.Context) {
			questionHandler.CreateQuestion(c)
			publish(publisher, "quiz.question.created", gin.H{"user_id": c.GetString("userID")})
		})
		protected.PUT("/:id", func(c *gin.Context) {
			questionHandler.UpdateQuestion(c)
			publish(publisher, "quiz.question.updated", gin.H{"id": c.Param("id"), "user_id": c.GetString("userID")})
		})
		protected.DELETE("/:id", func(c *gin.Context) {
			questionHandler.DeleteQuestion(c)
			publish(publisher, "quiz.question.deleted", gin.H{"id": c.Param("id"), "user_id": c.GetString("userID")})
		})
	}

	explanations := api.Group("/explanations")
	{
		explanations.POST("/generate", func(c *gin.Context) {
			explanationHandler.GenerateExplanation(c)
			publish(publisher, "quiz.explanation.generated", nil)
		})
		explanations.GET("/test", explanationHandler.TestConnection)
	}

	feedback := api.Group("/feedback")
	{
		feedback.POST("/generate", func(c *gin.Context) {
			feedbackHandler.GenerateFeedback(c)
			publish(publisher, "quiz.feedback.generated", nil)
		})
	}

	return r
}

func publish(publisher *event.EventPublisher, eventType string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(eventType, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}

func authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or missing token")
			c.Abort()
			return
		}
		if userID == "" {
			utils.UnauthorizedResponse(c, "Token is required for this endpoint")
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
