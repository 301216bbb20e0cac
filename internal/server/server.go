package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"afroboost/internal/auth"
	"afroboost/internal/booking"
	"afroboost/internal/concept"
	"afroboost/internal/config"
	"afroboost/internal/course"
	"afroboost/internal/discount"
	"afroboost/internal/notify"
	"afroboost/internal/offer"
	"afroboost/internal/payment"
	"afroboost/internal/reservation"
	"afroboost/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	dispatcher *notify.Dispatcher
	sessions   *booking.Store
}

func New(db *sqlx.DB, cfg *config.Config, dispatcher *notify.Dispatcher, outbound notify.Outbound) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	authHandler := auth.NewHandler(cfg.CoachEmail, cfg.CoachPasswordHash, cfg.JWTSecret)
	courseHandler := course.NewHandler(db)
	offerHandler := offer.NewHandler(db)
	userHandler := user.NewHandler(db)
	discountHandler := discount.NewHandler(db)
	paymentHandler := payment.NewHandler(db)
	reservationHandler := reservation.NewHandler(db)
	conceptHandler := concept.NewHandler(db)

	sessions := booking.NewStore()
	workflow := booking.NewWorkflow(
		sessions,
		course.NewRepository(db),
		offer.NewRepository(db),
		user.NewRepository(db),
		user.NewResolver(user.NewRepository(db)),
		discount.NewService(discount.NewRepository(db)),
		payment.NewRepository(db),
		reservation.NewRepository(db),
		dispatcher,
		outbound,
	)
	bookingHandler := booking.NewHandler(sessions, workflow)

	public := router.Group("/api")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.Refresh)

		public.GET("/courses", courseHandler.ListCourses)
		public.GET("/courses/:courseID/occurrences", courseHandler.ListOccurrences)
		public.GET("/offers", offerHandler.ListOffers)
		public.GET("/users", userHandler.ListUsers)
		public.POST("/users", userHandler.CreateUser)
		public.GET("/payment-links", paymentHandler.GetLinks)
		public.GET("/concept", conceptHandler.GetConcept)
		public.GET("/config", conceptHandler.GetConfig)

		public.GET("/discount-codes", discountHandler.ListCodes)
		public.POST("/discount-codes/validate", discountHandler.ValidateCode)
		public.POST("/discount-codes/:codeID/use", discountHandler.UseCode)

		public.POST("/reservations", reservationHandler.CreateReservation)

		public.POST("/bookings", bookingHandler.CreateSession)
		public.GET("/bookings/:sessionID", bookingHandler.GetSession)
		public.POST("/bookings/:sessionID/select", bookingHandler.Select)
		public.POST("/bookings/:sessionID/submit", bookingHandler.Submit)
		public.POST("/bookings/:sessionID/confirm", bookingHandler.Confirm)
		public.POST("/bookings/:sessionID/cancel", bookingHandler.Cancel)
		public.POST("/bookings/:sessionID/dismiss", bookingHandler.Dismiss)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	coachOnly := auth.RequireRole(auth.RoleCoach)
	admin := router.Group("/api/admin")
	admin.Use(authMiddleware, coachOnly)
	{
		admin.POST("/courses", courseHandler.CreateCourse)
		admin.PUT("/courses/:courseID", courseHandler.UpdateCourse)
		admin.DELETE("/courses/:courseID", courseHandler.DeleteCourse)

		admin.GET("/offers", offerHandler.ListAllOffers)
		admin.POST("/offers", offerHandler.CreateOffer)
		admin.PUT("/offers/:offerID", offerHandler.UpdateOffer)
		admin.DELETE("/offers/:offerID", offerHandler.DeleteOffer)

		admin.POST("/discount-codes", discountHandler.CreateCode)
		admin.PUT("/discount-codes/:codeID", discountHandler.ToggleCode)
		admin.DELETE("/discount-codes/:codeID", discountHandler.DeleteCode)

		admin.PUT("/payment-links", paymentHandler.UpdateLinks)
		admin.PUT("/concept", conceptHandler.UpdateConcept)
		admin.PUT("/config", conceptHandler.UpdateConfig)
	}

	reservations := router.Group("/api/reservations")
	reservations.Use(authMiddleware, coachOnly)
	{
		reservations.GET("", reservationHandler.ListReservations)
		reservations.GET("/export", reservationHandler.ExportReservations)
	}

	router.GET("/health", Health(dispatcher))
	router.GET("/metrics", Metrics())
	router.GET("/test-notification", TestNotification(outbound))
	SetupSwagger(router)

	return &Server{
		router:     router,
		db:         db,
		config:     cfg,
		dispatcher: dispatcher,
		sessions:   sessions,
	}
}

// Sessions exposes the booking session store so main can run its reaper.
func (s *Server) Sessions() *booking.Store {
	return s.sessions
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
