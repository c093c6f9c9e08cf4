package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memoras-backend/auth"
	"memoras-backend/internal/config"
	"memoras-backend/internal/db"
	"memoras-backend/internal/memorial"
	"memoras-backend/internal/middleware"
	"memoras-backend/internal/pdf"
	"memoras-backend/internal/photo"
	"memoras-backend/internal/program"
	"memoras-backend/internal/user"
	"memoras-backend/internal/worker"
	"memoras-backend/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Initialize Redis
	redis.InitRedis()

	// Worker pool for PDF generation
	pool := worker.NewWorkerPool(2, 100)

	// Initialize repositories
	userRepo := user.NewRepository(db.AppDb)
	memorialRepo := memorial.NewRepository(db.AppDb)

	// Initialize services
	cache := redis.NewCache()
	userService := user.NewService(userRepo)
	memorialService := memorial.NewService(memorialRepo, cache)
	programService := program.NewService(db.AppDb, memorialService)
	photoStorage := photo.NewStorage(config.AppConfig.UploadDir)
	photoService := photo.NewService(db.AppDb, memorialService, photoStorage)
	renderClient := pdf.NewRenderClient(config.AppConfig.RenderServiceAddress)
	pdfService := pdf.NewService(memorialRepo, memorialService, renderClient, pool, config.AppConfig.UploadDir)

	// Initialize handlers
	userHandler := user.NewHandler(userService)
	memorialHandler := memorial.NewHandler(memorialService)
	speechHandler := program.NewSpeechHandler(programService)
	photoHandler := photo.NewHandler(photoService)
	pdfHandler := pdf.NewHandler(pdfService)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", auth.GuestSessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Uploaded photos and generated programs are served statically
	router.Static("/uploads", config.AppConfig.UploadDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Memoras API is running"})
	})

	// Auth routes
	authGroup := router.Group("/api/auth")
	authGroup.POST("/register", userHandler.Register)
	authGroup.POST("/login", userHandler.Login)
	authGroup.POST("/guest-session", userHandler.GuestSession)
	authGroup.GET("/me", auth.RequireAuth(), userHandler.Me)
	authGroup.POST("/logout", auth.RequireAuth(), userHandler.Logout)

	// Memorial routes; most accept either a registered user or a guest token
	memorials := router.Group("/api/memorials", auth.OptionalIdentity())
	memorials.POST("/", memorialHandler.Create)
	memorials.GET("/:id", memorialHandler.Show)
	memorials.PUT("/:id", memorialHandler.Update)
	memorials.DELETE("/:id", memorialHandler.Delete)
	memorials.POST("/:id/steps/:name", memorialHandler.CompleteStep)
	memorials.GET("/", auth.RequireAuth(), memorialHandler.List)

	// Program section routes, one generic trio per section
	program.Register(router.Group("/api/obituaries", auth.OptionalIdentity()), "obituary", programService, program.ObituarySection)
	program.Register(router.Group("/api/acknowledgements", auth.OptionalIdentity()), "acknowledgements", programService, program.AcknowledgementsSection)
	program.Register(router.Group("/api/body-viewing", auth.OptionalIdentity()), "body-viewing", programService, program.BodyViewingSection)
	program.Register(router.Group("/api/repass", auth.OptionalIdentity()), "repass", programService, program.RepassLocationSection)
	program.Register(router.Group("/api/burial", auth.OptionalIdentity()), "burial", programService, program.BurialLocationSection)

	speeches := router.Group("/api/speeches", auth.OptionalIdentity())
	speeches.POST("/:id/speeches", speechHandler.Save)
	speeches.PUT("/:id/speeches", speechHandler.Save)
	speeches.GET("/:id/speeches", speechHandler.List)
	speeches.DELETE("/:id/speeches", speechHandler.Delete)

	photos := router.Group("/api/photos", auth.OptionalIdentity())
	photos.POST("/:id/photos", photoHandler.Upload)
	photos.GET("/:id/photos", photoHandler.List)
	photos.DELETE("/:id/photos/:photoId", photoHandler.Delete)

	pdfGroup := router.Group("/api/pdf", auth.OptionalIdentity())
	pdfGroup.POST("/:id/generate", pdfHandler.Generate)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	// Drain in-flight PDF jobs before exit
	pool.Shutdown()

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
