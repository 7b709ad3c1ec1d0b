package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/api/handlers"
	"github.com/ianjohndal5/Rental/internal/api/middleware"
	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/services"
	"github.com/ianjohndal5/Rental/internal/storage"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, taskClient *asynq.Client) *gin.Engine {
	media, err := storage.NewMediaStorage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize media storage: %v", err)
	}

	propertyService := services.NewPropertyService(db, cfg, rdb, media)
	agentService := services.NewAgentService(db)
	blogService := services.NewBlogService(db)
	testimonialService := services.NewTestimonialService(db)

	r := gin.Default()

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Global middleware (order matters: CORS first, then size cap, then rate limit)
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.BodyLimitMiddleware(cfg.MaxUploadSizeMB))
	r.Use(rateLimiter.Limit())

	propertyHandler := handlers.NewPropertyHandler(propertyService, cfg, taskClient)
	agentHandler := handlers.NewAgentHandler(agentService, cfg)
	blogHandler := handlers.NewBlogHandler(blogService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)

	apiGroup := r.Group("/api")
	{
		// Public property routes. The static /featured route must be
		// registered before the :id route.
		apiGroup.GET("/properties/featured", propertyHandler.GetFeatured)
		apiGroup.GET("/properties", propertyHandler.ListProperties)
		apiGroup.GET("/properties/:id", propertyHandler.GetPropertyByID)

		// Property writes require an authenticated agent.
		agentRequired := apiGroup.Group("/")
		agentRequired.Use(middleware.AgentMiddleware(cfg.JwtSecret))
		{
			agentRequired.POST("/properties", propertyHandler.CreateProperty)
			agentRequired.POST("/properties/bulk", propertyHandler.CreatePropertiesBulk)
		}

		// Agent account routes
		apiGroup.POST("/agents/register", agentHandler.Register)
		apiGroup.POST("/agents/login", agentHandler.Login)
		apiGroup.POST("/auth/login", agentHandler.Login) // legacy alias

		authRequired := apiGroup.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.GET("/agents/me", agentHandler.Me)
		}

		// Content routes; /news is an alias kept for older clients.
		apiGroup.GET("/blogs", blogHandler.ListBlogs)
		apiGroup.GET("/blogs/:id", blogHandler.GetBlogByID)
		apiGroup.GET("/news", blogHandler.ListBlogs)
		apiGroup.GET("/news/:id", blogHandler.GetBlogByID)

		apiGroup.GET("/testimonials", testimonialHandler.ListTestimonials)

		apiGroup.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
	}

	return r
}
