package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"animetrack/internal/account"
	"animetrack/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func RegisterHandler(db *sql.DB, secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
			return
		}

		acct, err := account.Create(db, req.Name, normalizeEmail(req.Email), req.Password)
		if err != nil {
			if errors.Is(err, account.ErrEmailTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			logrus.WithError(err).Error("register account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		token, err := auth.Sign(secret, acct.ID, ttl)
		if err != nil {
			logrus.WithError(err).Error("sign token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": acct, "token": token})
	}
}

func LoginHandler(db *sql.DB, secret []byte, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		acct, err := account.Authenticate(db, normalizeEmail(req.Email), req.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			logrus.WithError(err).Error("login")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		token, err := auth.Sign(secret, acct.ID, ttl)
		if err != nil {
			logrus.WithError(err).Error("sign token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": acct, "token": token})
	}
}

func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": acct})
	}
}

func UpdateMeHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := auth.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Email != nil {
			e := normalizeEmail(*req.Email)
			req.Email = &e
		}

		updated, err := account.UpdateProfile(db, acct.ID, account.ProfilePatch{Name: req.Name, Email: req.Email})
		if err != nil {
			if errors.Is(err, account.ErrEmailTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			logrus.WithError(err).Error("update profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": updated})
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
