package logbook

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/internal/vehicle"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
)

func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("/api/vehicles/:vehicleId/logs", func(c *gin.Context) {
		list, err := svc.ListLogs(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.POST("/api/vehicles/:vehicleId/logs", func(c *gin.Context) {
		var in Entry
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e, err := svc.AddLog(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	})

	r.DELETE("/api/logs/:id", func(c *gin.Context) {
		if err := svc.DeleteLog(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/api/vehicles/:vehicleId/total", func(c *gin.Context) {
		vehicleID := c.Param("vehicleId")
		total, err := svc.TotalSpent(c.Request.Context(), middleware.UserID(c), vehicleID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vehicleId": vehicleID, "totalSpent": total})
	})

	r.GET("/api/vehicles/:vehicleId/summary", func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		logger.Debugf("rejected log entry: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, vehicle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
	default:
		logger.Errorf("logbook store: %v", err)
		metrics.StoreErrors.WithLabelValues("log").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
