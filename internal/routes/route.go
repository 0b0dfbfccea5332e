package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skills4mind/events-api/internal/container"
	"github.com/skills4mind/events-api/internal/handlers"
	"github.com/skills4mind/events-api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "events-api",
			})
		})

		v1.GET("/stats/media-events-by-creator", handlers.MediaEventsByCreator(container.StatsService))
	}

	eventRoutes := v1.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/", handlers.ListEvents(container.EventService))
		eventRoutes.GET("/descriptions", handlers.ListEvents(container.EventService))
		eventRoutes.GET("/descriptions/stats", handlers.DescriptionStats(container.StatsService))
		eventRoutes.GET("/media", handlers.ListMediaEvents(container.EventService))
		eventRoutes.GET("/titles/sorted", handlers.ListSortedTitles(container.EventService))
		eventRoutes.GET("/top5", handlers.TopEvents(container.EventService))
		eventRoutes.GET("/by-participant/:name", handlers.SearchEventsByParticipant(container.EventService))
		eventRoutes.GET("/by-organizer/:name", handlers.SearchEventsByOrganizer(container.EventService))

		eventRoutes.GET("/:id/title", handlers.GetEventTitle(container.EventService))
		eventRoutes.PATCH("/:id/title", handlers.UpdateEventTitle(container.EventService))
		eventRoutes.DELETE("/:id/title", handlers.ResetEventTitle(container.EventService))
		eventRoutes.POST("/:id/description", handlers.UpdateEventDescription(container.EventService))
		eventRoutes.PUT("/:id/description", handlers.UpdateEventDescription(container.EventService))
		eventRoutes.DELETE("/:id/description", handlers.ResetEventDescription(container.EventService))
		eventRoutes.PUT("/:id/popularity", handlers.IncrementEventPopularity(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))
	}

	accountRoutes := v1.Group("/accounts")
	{
		accountRoutes.POST("/register", handlers.Register(container.AccountService))
		accountRoutes.POST("/login", handlers.Login(container.AccountService))
		accountRoutes.POST("/check-username", handlers.CheckUsername(container.AccountService))
		accountRoutes.PUT("/:id/username", handlers.ChangeUsername(container.AccountService))
		accountRoutes.PUT("/:id/password", handlers.ChangePassword(container.AccountService))
	}

	protected := accountRoutes.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Config.JWTSecret, container.Config.AdminEmails, container.Logger))
	{
		protected.PUT("/:id", handlers.UpdateAccount(container.AccountService))
		protected.DELETE("/:id", handlers.DeleteAccount(container.AccountService))
		protected.GET("/with-events", handlers.AccountsWithEvents(container.AccountService))
	}

	miscRoutes := v1.Group("/")
	{
		miscRoutes.GET("/incidents", handlers.ListIncidents(container.StatsService))
		miscRoutes.GET("/services", handlers.ListServices(container.StatsService))
	}

	return r
}
