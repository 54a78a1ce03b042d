package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/response"
	"mcq-practice-service/internal/validator"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Quiz      *app.QuizService
	Authoring *app.AuthoringService
	Auth      app.Authenticator
	// Tokens, when set, guards the authoring routes with RequireJWT.
	Tokens TokenValidator
}

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
	// AllowAllWSOrigins disables the websocket origin check.
	AllowAllWSOrigins bool
}

// NewRouter wires every handler onto a gin engine.
func NewRouter(svc Services, opts RouterOptions, log zerolog.Logger) *gin.Engine {
	validator.Setup()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(response.RequestIDMiddleware())
	router.Use(RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	catalog := NewCatalogHandler(svc.Quiz)
	sessions := NewSessionHandler(svc.Quiz)

	api := router.Group("/api")
	{
		api.GET("/subjects", catalog.Subjects)
		api.GET("/faculties", catalog.Faculties)

		s := api.Group("/sessions")
		s.POST("", sessions.Start)
		s.GET("/:id", sessions.Get)
		s.DELETE("/:id", sessions.End)
		s.POST("/:id/category", sessions.SelectCategory)
		s.POST("/:id/answer", sessions.SelectAnswer)
		s.POST("/:id/next", sessions.Next)
		s.POST("/:id/previous", sessions.Previous)
		s.POST("/:id/goto", sessions.GoTo)
		s.POST("/:id/submit", sessions.Submit)
		s.POST("/:id/reset", sessions.Reset)
		s.POST("/:id/close-results", sessions.CloseResults)
		s.GET("/:id/review", sessions.Review)

		if svc.Authoring != nil {
			mcqs := NewAuthoringHandler(svc.Authoring)
			g := api.Group("/mcqs")
			if svc.Tokens != nil {
				g.Use(RequireJWT(svc.Tokens))
			}
			g.POST("", mcqs.Create)
			g.POST("/upload", mcqs.Upload)
		}
		if svc.Auth != nil {
			auth := NewAuthHandler(svc.Auth)
			api.POST("/auth/register", auth.Register)
			api.POST("/auth/login", auth.Login)
		}
	}

	ws := NewWSHandler(svc.Quiz, log, opts.AllowedOrigins, opts.AllowAllWSOrigins)
	router.GET("/ws", ws.ServeWS)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})
	return router
}
