package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/internal/document"
	"github.com/glovebox/glovebox/backend/go-services/internal/document/service"
	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
	"github.com/glovebox/glovebox/backend/go-services/internal/storage"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
)

// MaxScanBytes bounds an uploaded scan.
const MaxScanBytes = 10 << 20

type saveRequest struct {
	Title      string `json:"title"`
	ExpiryDate string `json:"expiryDate"`
	VehicleID  string `json:"vehicleId"`
}

type classifiedItem struct {
	*document.TrackedDocument
	Classification *expiry.Result `json:"classification,omitempty"`
	Presentation   *Presentation  `json:"presentation,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// RegisterDocumentRoutes mounts the document vault on r, which must run behind
// middleware.AuthMiddleware. Expiry dates are read as midnight in loc.
func RegisterDocumentRoutes(r gin.IRouter, svc service.Service, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}

	r.GET("/api/vehicles/:vehicleId/documents", func(c *gin.Context) {
		items, err := svc.Classify(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"), middleware.Now(c).In(loc))
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]classifiedItem, 0, len(items))
		for _, it := range items {
			item := classifiedItem{TrackedDocument: it.Document}
			if it.Err != nil {
				item.Error = it.Err.Error()
			} else {
				res := it.Result
				p := present(it.Document.Title, res)
				item.Classification = &res
				item.Presentation = &p
			}
			out = append(out, item)
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/api/vehicles/:vehicleId/documents/summary", func(c *gin.Context) {
		items, err := svc.Classify(c.Request.Context(), middleware.UserID(c), c.Param("vehicleId"), middleware.Now(c).In(loc))
		if err != nil {
			writeError(c, err)
			return
		}
		counts := map[string]int{
			string(expiry.StatusNone):     0,
			string(expiry.StatusExpired):  0,
			string(expiry.StatusExpiring): 0,
			string(expiry.StatusValid):    0,
			"invalid":                     0,
		}
		for _, it := range items {
			if it.Err != nil {
				counts["invalid"]++
				continue
			}
			counts[string(it.Result.Status)]++
		}
		c.JSON(http.StatusOK, gin.H{"total": len(items), "counts": counts})
	})

	r.POST("/api/documents", func(c *gin.Context) {
		var req saveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := svc.Save(c.Request.Context(), middleware.UserID(c), service.SaveInput{
			Title: req.Title, ExpiryDate: req.ExpiryDate, VehicleID: req.VehicleID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.PUT("/api/documents/:id", func(c *gin.Context) {
		var req saveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := svc.Save(c.Request.Context(), middleware.UserID(c), service.SaveInput{
			ID: c.Param("id"), Title: req.Title, ExpiryDate: req.ExpiryDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.DELETE("/api/documents/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.POST("/api/documents/:id/scan", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
			return
		}
		if fh.Size > MaxScanBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "scan too large"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
			return
		}
		defer f.Close()
		d, err := svc.AttachScan(c.Request.Context(), middleware.UserID(c), c.Param("id"), f, fh.Size, fh.Header.Get("Content-Type"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.GET("/api/documents/:id/scan", func(c *gin.Context) {
		rc, contentType, err := svc.OpenScan(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		defer rc.Close()
		c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
	})

	r.GET("/api/documents/:id/scan/url", func(c *gin.Context) {
		url, err := svc.ScanURL(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, expiry.ErrInvalidDateFormat), errors.Is(err, document.ErrInvalidInput):
		logger.Debugf("rejected document input: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, document.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
	case errors.Is(err, document.ErrNoScan):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, document.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrPresignUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	default:
		logger.Errorf("document store: %v", err)
		metrics.StoreErrors.WithLabelValues("document").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
