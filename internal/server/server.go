package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/zeeddd0107/GymPlify-sub000/internal/attendance"
	"github.com/zeeddd0107/GymPlify-sub000/internal/auth"
	"github.com/zeeddd0107/GymPlify-sub000/internal/config"
	"github.com/zeeddd0107/GymPlify-sub000/internal/guide"
	"github.com/zeeddd0107/GymPlify-sub000/internal/inventory"
	"github.com/zeeddd0107/GymPlify-sub000/internal/notify"
	"github.com/zeeddd0107/GymPlify-sub000/internal/otp"
	"github.com/zeeddd0107/GymPlify-sub000/internal/request"
	"github.com/zeeddd0107/GymPlify-sub000/internal/session"
	"github.com/zeeddd0107/GymPlify-sub000/internal/subscription"
	"github.com/zeeddd0107/GymPlify-sub000/internal/user"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	notify *notify.Service
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, notifyService *notify.Service, requestService request.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	otpClient := otp.NewClient(cfg.OTPServiceURL)
	userRepo := user.NewRepository(db)
	userHandler := user.NewHandler(user.NewService(userRepo, otpClient, cfg.JWTSecret))

	sessionHandler := session.NewHandler(session.NewService(session.NewRepository(db), notifyService))

	subscriptionRepo := subscription.NewRepository(db)
	subscriptionHandler := subscription.NewHandler(subscription.NewService(subscriptionRepo))

	attendanceHandler := attendance.NewHandler(attendance.NewService(attendance.NewRepository(db)))
	notifyHandler := notify.NewHandler(notify.NewRepository(db))
	requestHandler := request.NewHandler(requestService)
	inventoryHandler := inventory.NewHandler(inventory.NewRepository(db))
	guideHandler := guide.NewHandler(guide.NewRepository(db))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
		public.POST("/password-reset/send", userHandler.SendPasswordReset)
		public.POST("/password-reset/resend", userHandler.ResendPasswordReset)
		public.POST("/password-reset/confirm", userHandler.ConfirmPasswordReset)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.POST("/sessions", sessionHandler.CreateSession)
		protected.GET("/sessions", sessionHandler.ListSessions)
		protected.GET("/sessions/availability", sessionHandler.SlotAvailability)
		protected.PUT("/sessions/:sessionID/reschedule", sessionHandler.RescheduleSession)
		protected.DELETE("/sessions/:sessionID", sessionHandler.CancelSession)
		protected.GET("/blocked-dates", sessionHandler.ListBlockedDates)

		protected.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
		protected.GET("/subscriptions/active", subscriptionHandler.GetActiveSubscription)
		protected.GET("/subscriptions/:subscriptionID", subscriptionHandler.GetSubscription)

		protected.GET("/attendance/qr", attendanceHandler.MyQRCode)

		protected.GET("/notifications", notifyHandler.ListMyNotifications)
		protected.POST("/notifications/:notificationID/read", notifyHandler.MarkRead)

		protected.GET("/guides", guideHandler.ListGuides)
		protected.GET("/guides/:guideID", guideHandler.GetGuide)

		protected.POST("/requests", requestHandler.Submit)
	}

	staffMiddleware := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)
	staff := router.Group("/")
	staff.Use(authMiddleware, staffMiddleware)
	{
		staff.POST("/sessions/:sessionID/complete", sessionHandler.CompleteSession)
		staff.POST("/blocked-dates", sessionHandler.BlockDate)
		staff.DELETE("/blocked-dates/:date", sessionHandler.UnblockDate)

		staff.POST("/subscriptions", subscriptionHandler.CreateSubscription)
		staff.PUT("/subscriptions/:subscriptionID/status", subscriptionHandler.UpdateStatus)

		staff.POST("/attendance/scan", attendanceHandler.Scan)
		staff.GET("/attendance", attendanceHandler.ListForDay)
		staff.GET("/attendance/users/:userID", attendanceHandler.ListForUser)

		staff.GET("/requests", requestHandler.ListRequests)
		staff.POST("/requests/:requestID/approve", requestHandler.Approve)
		staff.POST("/requests/:requestID/reject", requestHandler.Reject)

		staff.POST("/inventory", inventoryHandler.CreateItem)
		staff.GET("/inventory", inventoryHandler.ListItems)
		staff.GET("/inventory/:itemID", inventoryHandler.GetItem)
		staff.PUT("/inventory/:itemID", inventoryHandler.UpdateItem)
		staff.DELETE("/inventory/:itemID", inventoryHandler.DeleteItem)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/users", userHandler.CreateStaff)
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:userID/role", userHandler.UpdateRole)
		admin.DELETE("/users/:userID", userHandler.DeleteUser)

		admin.POST("/guides", guideHandler.CreateGuide)
		admin.PUT("/guides/:guideID", guideHandler.UpdateGuide)
		admin.DELETE("/guides/:guideID", guideHandler.DeleteGuide)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		notify: notifyService,
	}
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
