package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login verifies credentials and returns a signed token plus the user.
func (a *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	user, err := a.facade.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.abortError(c, err)
		return
	}

	token, err := a.jwt.Generate(user)
	if err != nil {
		a.abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}
