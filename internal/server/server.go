package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Naveenverma440/activity-booking-app/internal/activity"
	"github.com/Naveenverma440/activity-booking-app/internal/auth"
	"github.com/Naveenverma440/activity-booking-app/internal/booking"
	"github.com/Naveenverma440/activity-booking-app/internal/config"
	"github.com/Naveenverma440/activity-booking-app/internal/notify"
	"github.com/Naveenverma440/activity-booking-app/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(db, bookingRepo, activityRepo, notifier, cfg.BookingTxTimeout)
	bookingHandler := booking.NewHandler(bookingService)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	apiGroup := router.Group("/api")
	apiGroup.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		users := apiGroup.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/profile", authMiddleware, userHandler.GetProfile)
		}

		activities := apiGroup.Group("/activities")
		{
			activities.GET("", activityHandler.ListActivities)
			activities.GET("/:id", activityHandler.GetActivity)
			activities.POST("", authMiddleware, activityHandler.CreateActivity)
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware)
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListMyBookings)
			bookings.DELETE("/:id", bookingHandler.CancelBooking)
		}
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{router: router}
}

func (s *Server) Start(port string) error {
	s.srv = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
