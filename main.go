package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"interview-service/internal/config"
	"interview-service/internal/db"
	"interview-service/internal/engine"
	"interview-service/internal/event"
	"interview-service/internal/handlers"
	"interview-service/internal/llm"
	"interview-service/internal/repository"
	"interview-service/internal/service"
	"interview-service/internal/sweep"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	database := db.Client.Database(cfg.MongoDatabase)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Repositories
	checkpointRepo := repository.NewCheckpointRepository(database)
	resultRepo := repository.NewResultRepository(database)
	testRepo := repository.NewTestRepository(database)

	// LLM collaborators
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, cfg.LLMMaxRetries)
	interviewer := llm.NewInterviewer(llmClient)

	// Result sink and session engine
	var sinkPublisher service.Publisher
	if publisher != nil {
		sinkPublisher = publisher
	}
	resultSink := service.NewResultSink(resultRepo, testRepo, sinkPublisher)
	sessionEngine := engine.NewEngine(checkpointRepo, interviewer, interviewer, interviewer, resultSink)

	// Tests
	testService := service.NewTestService(testRepo)
	testHandler := handlers.NewTestHandler(testService)

	// Sessions and results
	sessionHandler := handlers.NewSessionHandler(sessionEngine, checkpointRepo)
	resultHandler := handlers.NewResultHandler(resultRepo)

	// Expiry sweep for sessions abandoned in AWAITING_ANSWER
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := sweep.NewSweeper(checkpointRepo, sessionEngine, cfg.SweepInterval)
	go sweeper.Run(sweepCtx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/interview")

	api.POST("/test", testHandler.CreateTest)
	api.POST("/test/activate", testHandler.ActivateTest)

	setupSessionRoutes(api, sessionHandler, resultHandler, publisher)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func setupSessionRoutes(api *gin.RouterGroup, sessionHandler *handlers.SessionHandler, resultHandler *handlers.ResultHandler, publisher *event.EventPublisher) {
	session := api.Group("/session")

	// Authentication middleware: session routes need the candidate id.
	session.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	session.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[SESSION] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))

	session.POST("/", func(c *gin.Context) {
		sessionHandler.CreateSession(c)
		if publisher != nil {
			publishTap(c, publisher, event.SessionCreated, gin.H{
				"user_id":   c.GetHeader("X-User-ID"),
				"timestamp": time.Now(),
			})
		}
	})

	session.POST("/:id/answer", func(c *gin.Context) {
		sessionHandler.SubmitAnswer(c)
		if publisher != nil {
			publishTap(c, publisher, event.AnswerSubmitted, gin.H{
				"session_id": c.Param("id"),
				"user_id":    c.GetHeader("X-User-ID"),
				"timestamp":  time.Now(),
			})
		}
	})

	session.GET("/:id/status", sessionHandler.GetSessionStatus)
	session.GET("/:id/result", sessionHandler.GetSessionResult)

	api.GET("/result/:id", resultHandler.GetResultBySession)
	api.GET("/user/:id/results", resultHandler.GetResultsByUser)
}

type tapPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// publishTap reports a handler's outcome on the event exchange, but only
// when the handler actually succeeded.
func publishTap(c *gin.Context, publisher tapPublisher, eventType string, payload gin.H) {
	if c.Writer.Status() >= http.StatusBadRequest {
		return
	}
	publisher.Publish(eventType, payload)
}
