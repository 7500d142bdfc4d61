package vehicle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
)

type vehicleView struct {
	*Vehicle
	KmToService int64 `json:"kmToService"`
}

func view(v *Vehicle) vehicleView { return vehicleView{Vehicle: v, KmToService: v.KmToService()} }

// RegisterRoutes mounts the garage endpoints on an authenticated router.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("/api/vehicles", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]vehicleView, 0, len(list))
		for _, v := range list {
			out = append(out, view(v))
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/api/vehicles/active", func(c *gin.Context) {
		v, err := svc.Active(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view(v))
	})

	r.POST("/api/vehicles", func(c *gin.Context) {
		var in Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v, err := svc.Add(c.Request.Context(), middleware.UserID(c), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view(v))
	})

	r.GET("/api/vehicles/:vehicleId", func(c *gin.Context) {
		v, err := svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view(v))
	})

	r.PUT("/api/vehicles/:vehicleId", func(c *gin.Context) {
		var in Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v, err := svc.Update(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view(v))
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
	default:
		logger.Errorf("vehicle store: %v", err)
		metrics.StoreErrors.WithLabelValues("vehicle").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
