package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"animetrack/internal/auth"
	"animetrack/internal/catalog"
	"animetrack/internal/list"
)

type entryCreateRequest struct {
	ItemID   int64  `json:"item_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Progress int    `json:"progress"`
	Rating   *int   `json:"rating"`
	Review   string `json:"review"`
}

type entryUpdateRequest struct {
	Status   *string `json:"status"`
	Progress *int    `json:"progress"`
	Rating   *int    `json:"rating"`
	Review   *string `json:"review"`
}

func ListEntriesHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		entries, err := list.ForUser(db, acct.ID)
		if err != nil {
			logrus.WithError(err).Error("list entries")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

func ListCreateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req entryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item_id and status are required"})
			return
		}

		if _, err := catalog.GetByID(db, req.ItemID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
				return
			}
			logrus.WithError(err).Error("check catalog item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		entry, err := list.Create(db, acct.ID, list.NewEntry{
			ItemID:   req.ItemID,
			Status:   req.Status,
			Progress: req.Progress,
			Rating:   req.Rating,
			Review:   req.Review,
		})
		if err != nil {
			switch {
			case errors.Is(err, list.ErrDuplicate):
				c.JSON(http.StatusConflict, gin.H{"error": "item already in list"})
			case errors.Is(err, list.ErrInvalidRating):
				c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 10"})
			default:
				logrus.WithError(err).Error("create list entry")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"entry": entry})
	}
}

func ListUpdateHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "list entry not found"})
			return
		}

		var req entryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		entry, err := list.Update(db, acct.ID, id, list.Patch{
			Status:   req.Status,
			Progress: req.Progress,
			Rating:   req.Rating,
			Review:   req.Review,
		})
		if err != nil {
			switch {
			case errors.Is(err, list.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "list entry not found"})
			case errors.Is(err, list.ErrInvalidRating):
				c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 10"})
			default:
				logrus.WithError(err).Error("update list entry")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"entry": entry})
	}
}

func ListDeleteHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		id, ok := paramID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "list entry not found"})
			return
		}

		if err := list.Delete(db, acct.ID, id); err != nil {
			if errors.Is(err, list.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "list entry not found"})
				return
			}
			logrus.WithError(err).Error("delete list entry")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "list entry removed"})
	}
}
