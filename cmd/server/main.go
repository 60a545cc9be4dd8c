package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"socialnet/backend/internal/assistant"
	"socialnet/backend/internal/auth"
	"socialnet/backend/internal/cache"
	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/handler"
	"socialnet/backend/internal/media"
	"socialnet/backend/internal/memory"
	"socialnet/backend/internal/repository"
	"socialnet/backend/internal/service"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "socialnet/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           SocialNet API
// @version         1.0
// @description     This is the API for the SocialNet service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	// Connect to the database
	database.Connect(cfg.DatabaseURL)

	// Optional infrastructure. Each piece degrades gracefully when not
	// configured so local development needs only Postgres.
	ctx := context.Background()

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: redis unavailable, rate limiting disabled: %v", err)
		}
	}

	var mediaStorage media.Storage
	if cfg.MinioEndpoint != "" {
		storage, err := media.NewMinIOStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
		if err != nil {
			log.Printf("Warning: MinIO unavailable, profile pictures disabled: %v", err)
		} else {
			mediaStorage = storage
		}
	}

	var memStore memory.Store
	if cfg.WeaviateURL != "" {
		store, err := memory.NewWeaviateStore(ctx, cfg.WeaviateURL)
		if err != nil {
			log.Printf("Warning: Weaviate unavailable, assistant memory disabled: %v", err)
		} else {
			memStore = store
		}
	}

	var textGen assistant.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		textGen = assistant.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, AI features disabled")
	}

	var auditProducer sarama.SyncProducer
	if cfg.KafkaBrokers != "" {
		producer, err := service.NewAuditProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Printf("Warning: Kafka unavailable, audit mirror disabled: %v", err)
		} else {
			auditProducer = producer
			defer producer.Close()
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	friendRepo := repository.NewFriendRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	voteRepo := repository.NewVoteRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)
	activityRepo := repository.NewActivityRepository(database.DB)
	accountRepo := repository.NewAccountRepository(database.DB)

	// Services
	activityLogger := service.NewActivityLogger(activityRepo, auditProducer, cfg.KafkaAuditTopic)
	userService := service.NewUserService(userRepo, mediaStorage, activityLogger, cfg.AdminEmail)
	relationshipService := service.NewRelationshipService(friendRepo, userRepo, activityLogger)
	interactionService := service.NewInteractionService(postRepo, voteRepo, friendRepo, textGen, activityLogger)
	messageService := service.NewMessageService(messageRepo, friendRepo, userRepo, activityLogger)
	assistantService := service.NewAssistantService(chatRepo, userRepo, friendRepo, postRepo, textGen, memStore, activityLogger)
	accountService := service.NewAccountService(accountRepo, chatRepo, memStore)
	adminService := service.NewAdminService(userRepo, friendRepo, postRepo, messageRepo, chatRepo, accountService, activityLogger)

	// Handlers
	userHandler := handler.NewUserHandler(userService, relationshipService, accountService)
	relationHandler := handler.NewRelationHandler(relationshipService)
	postHandler := handler.NewPostHandler(interactionService)
	messageHandler := handler.NewMessageHandler(messageService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	activityHandler := handler.NewActivityHandler(activityRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	rateLimit := auth.NewRateLimitMiddleware(redisClient)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(rateLimit.PerIP(20, time.Minute))
		{
			authRoutes.POST("/register", userHandler.Register)
			authRoutes.POST("/login", userHandler.Login)
		}

		// Public user card. Tokens are honored when present so the
		// relationship flags reflect the viewer, but none is required.
		apiV1.GET("/users/:id", auth.OptionalAuthMiddleware(), userHandler.GetUserByID)

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", userHandler.SearchUsers)
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.DELETE("/me", userHandler.DeleteAccount)
		}

		// Profile routes (protected)
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(auth.AuthMiddleware())
		{
			profileRoutes.GET("", userHandler.GetProfile)
			profileRoutes.PUT("", userHandler.SaveProfile)
			profileRoutes.GET("/secret-key", userHandler.GetSecretKey)
			profileRoutes.POST("/secret-key", userHandler.RegenerateSecretKey)
			profileRoutes.POST("/picture", userHandler.UploadProfilePicture)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", relationHandler.ListFriends)
			friendRoutes.POST("/requests", relationHandler.SendFriendRequest)
			friendRoutes.GET("/requests", relationHandler.ListPendingRequests)
			friendRoutes.POST("/requests/:id", relationHandler.RespondToFriendRequest)
			friendRoutes.DELETE("/:id", relationHandler.Unfriend)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", rateLimit.PerUser(30, time.Minute), postHandler.CreatePost)
			postRoutes.GET("/feed", postHandler.Feed)
			postRoutes.GET("/:id", postHandler.GetPost)
			postRoutes.DELETE("/:id", postHandler.DeletePost)
			postRoutes.POST("/:id/vote", postHandler.VotePost)
			postRoutes.POST("/:id/comments", postHandler.AddComment)
		}

		// Comment routes (protected)
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.DELETE("/:id", postHandler.DeleteComment)
			commentRoutes.POST("/:id/vote", postHandler.VoteComment)
		}

		// Message routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", rateLimit.PerUser(60, time.Minute), messageHandler.SendMessage)
			messageRoutes.GET("/unread", messageHandler.UnreadCount)
			messageRoutes.GET("/:id", messageHandler.GetConversation)
		}

		// Assistant routes (protected)
		assistantRoutes := apiV1.Group("/assistant")
		assistantRoutes.Use(auth.AuthMiddleware())
		{
			assistantRoutes.POST("/chat", rateLimit.PerUser(20, time.Minute), assistantHandler.Chat)
			assistantRoutes.GET("/sessions", assistantHandler.ListSessions)
			assistantRoutes.DELETE("/sessions", assistantHandler.DeleteAllSessions)
			assistantRoutes.GET("/sessions/:id", assistantHandler.GetSession)
			assistantRoutes.DELETE("/sessions/:id", assistantHandler.DeleteSession)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.GET("/activities", activityHandler.ListActivities)
			adminRoutes.GET("/users", adminHandler.ListUsers)
			adminRoutes.GET("/users/:id", adminHandler.GetUser)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
