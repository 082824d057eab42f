package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine: recovery, permissive CORS for the
// browser-based clients, the public auth routes and the token-guarded user
// routes.
func NewRouter(h *Handler, secretKey []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.GET("/ping", h.ping)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.signUp)
		authGroup.POST("/login", h.logIn)
		authGroup.POST("/google", h.googleAuth)
	}

	users := api.Group("/users/:userID", authRequired(secretKey))
	{
		users.PUT("/analysis", h.updateAnalysis)
		users.PUT("/study-plan", h.updateStudyPlan)
		users.PUT("/interview-prep", h.updateInterviewPrep)
		users.POST("/chat", h.appendChat)
		users.GET("/data", h.readAll)
	}

	return router
}
