package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/middleware"
)

type registerUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// registerUser creates an account. Only an admin caller may mint another
// admin.
func (a *API) registerUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsAdmin && !middleware.IsAdmin(c) {
		a.abortForbidden(c)
		return
	}

	user, err := a.facade.CreateUser(c.Request.Context(), facade.NewUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (a *API) listUsers(c *gin.Context) {
	users, err := a.facade.GetAllUsers(c.Request.Context())
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (a *API) getUser(c *gin.Context) {
	user, err := a.facade.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (a *API) updateUser(c *gin.Context) {
	id := c.Param("id")
	if !auth.CanModify(middleware.UserID(c), id, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Privilege escalation is admin-only.
	if req.IsAdmin != nil && !middleware.IsAdmin(c) {
		a.abortForbidden(c)
		return
	}

	user, err := a.facade.UpdateUser(c.Request.Context(), id, facade.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (a *API) deleteUser(c *gin.Context) {
	id := c.Param("id")
	if !auth.CanModify(middleware.UserID(c), id, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	if err := a.facade.DeleteUser(c.Request.Context(), id); err != nil {
		a.abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
