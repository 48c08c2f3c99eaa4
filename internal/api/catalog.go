package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"animetrack/internal/auth"
	"animetrack/internal/catalog"
)

type catalogCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" binding:"required"`
	Status      string `json:"status" binding:"required"`
	UnitCount   int    `json:"unit_count"`
	ReleaseDate string `json:"release_date"`
}

type catalogUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
	Status      *string `json:"status"`
	UnitCount   *int    `json:"unit_count"`
	ReleaseDate *string `json:"release_date"`
}

func CatalogListHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := catalog.List(db, catalog.Filter{
			Kind:   c.Query("kind"),
			Status: c.Query("status"),
			Search: c.Query("search"),
		})
		if err != nil {
			logrus.WithError(err).Error("list catalog")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func CatalogGetHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		it, err := catalog.GetByID(db, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
				return
			}
			logrus.WithError(err).Error("get catalog item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": it})
	}
}

func CatalogCreateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req catalogCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, kind and status are required"})
			return
		}

		it, err := catalog.Create(db, acct.ID, catalog.NewItem{
			Title:       req.Title,
			Description: req.Description,
			Kind:        req.Kind,
			Status:      req.Status,
			UnitCount:   req.UnitCount,
			ReleaseDate: req.ReleaseDate,
		})
		if err != nil {
			logrus.WithError(err).Error("create catalog item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"item": it})
	}
}

func CatalogUpdateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}

		var req catalogUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		it, err := catalog.Update(db, id, catalog.Patch{
			Title:       req.Title,
			Description: req.Description,
			Kind:        req.Kind,
			Status:      req.Status,
			UnitCount:   req.UnitCount,
			ReleaseDate: req.ReleaseDate,
		})
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
				return
			}
			logrus.WithError(err).Error("update catalog item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": it})
	}
}

func CatalogDeleteHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		if err := catalog.Delete(db, id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
				return
			}
			logrus.WithError(err).Error("delete catalog item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "catalog item deleted"})
	}
}

// paramID parses the :id route segment. A non-numeric id can never match
// a row, so callers treat a false return as not found.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
