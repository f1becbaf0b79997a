package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/goktugdsert/Flight-Project/internal/config"
	"github.com/goktugdsert/Flight-Project/internal/http/handlers"
	"github.com/goktugdsert/Flight-Project/internal/http/middleware"
	"github.com/goktugdsert/Flight-Project/internal/roster"
	"github.com/goktugdsert/Flight-Project/internal/rosterapi"

	_ "github.com/goktugdsert/Flight-Project/docs"
)

func Router(cfg config.Config, svc rosterapi.Service, rec *roster.Reconciler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Service:    svc,
		Reconciler: rec,
		Validator:  validator.New(),
		Logger:     logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.POST("/login", h.Login)

	authed := api.Group("")
	authed.Use(middleware.BearerSession())
	{
		authed.GET("/flights", h.FlightsList)
		authed.GET("/dashboard", h.Dashboard)

		authed.POST("/roster/open", h.OpenRoster)
		authed.GET("/roster", h.RosterView)
		authed.GET("/roster/seatmap", h.SeatMap)
		authed.GET("/roster/passengers/:id/connections", h.PassengerConnections)
		authed.GET("/roster/available-crew", h.AvailableCrew)
		authed.POST("/roster/replace-crew", h.ReplaceCrew)
		authed.POST("/roster/assign-seat", h.AssignSeat)

		authed.POST("/roster/save", h.SaveRoster)
		authed.GET("/roster/saved", h.SavedList)
		authed.GET("/roster/saved/:id", h.SavedOpen)
		authed.DELETE("/roster/saved/:id", h.SavedDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
