// Package api exposes the facade over a versioned JSON REST surface and owns
// the mapping from failure taxonomy to HTTP status codes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/middleware"
)

// API holds the handler dependencies. Routes call the facade; they never
// touch repositories.
type API struct {
	facade *facade.Facade
	jwt    *auth.JWTManager
	logger *slog.Logger
}

// NewRouter wires all routes and middleware onto a gin engine.
func NewRouter(f *facade.Facade, jwtManager *auth.JWTManager, logger *slog.Logger) *gin.Engine {
	a := &API{facade: f, jwt: jwtManager, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := middleware.RequireAuth(jwtManager)
	admin := middleware.RequireAdmin()

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", a.login)

	users := v1.Group("/users")
	users.POST("", middleware.OptionalAuth(jwtManager), a.registerUser)
	users.GET("", a.listUsers)
	users.GET("/:id", a.getUser)
	users.PUT("/:id", authed, a.updateUser)
	users.DELETE("/:id", authed, a.deleteUser)

	amenities := v1.Group("/amenities")
	amenities.GET("", a.listAmenities)
	amenities.GET("/:id", a.getAmenity)
	amenities.POST("", authed, admin, a.createAmenity)
	amenities.PUT("/:id", authed, admin, a.updateAmenity)
	amenities.DELETE("/:id", authed, admin, a.deleteAmenity)

	places := v1.Group("/places")
	places.GET("", a.listPlaces)
	places.GET("/:id", a.getPlace)
	places.GET("/:id/reviews", a.listPlaceReviews)
	places.POST("", authed, a.createPlace)
	places.PUT("/:id", authed, a.updatePlace)
	places.DELETE("/:id", authed, a.deletePlace)

	reviews := v1.Group("/reviews")
	reviews.GET("", a.listReviews)
	reviews.GET("/:id", a.getReview)
	reviews.POST("", authed, a.createReview)
	reviews.PUT("/:id", authed, a.updateReview)
	reviews.DELETE("/:id", authed, a.deleteReview)

	return r
}
