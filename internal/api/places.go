package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/middleware"
)

type createPlaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

type updatePlaceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OwnerID     *string  `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

// createPlace stores a listing owned by the caller. Admins may create on
// behalf of another user by supplying owner_id.
func (a *API) createPlace(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := middleware.UserID(c)
	if req.OwnerID != "" && middleware.IsAdmin(c) {
		ownerID = req.OwnerID
	}

	place, err := a.facade.CreatePlace(c.Request.Context(), facade.NewPlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     ownerID,
		AmenityIDs:  req.Amenities,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlaceResponse(place))
}

// listPlaces returns all places, or only one owner's when ?owner_id= is
// given.
func (a *API) listPlaces(c *gin.Context) {
	var places []placeResponse
	if ownerID := c.Query("owner_id"); ownerID != "" {
		owned, err := a.facade.GetPlacesByOwner(c.Request.Context(), ownerID)
		if err != nil {
			a.abortError(c, err)
			return
		}
		places = toPlaceResponses(owned)
	} else {
		all, err := a.facade.GetAllPlaces(c.Request.Context())
		if err != nil {
			a.abortError(c, err)
			return
		}
		places = toPlaceResponses(all)
	}
	c.JSON(http.StatusOK, places)
}

func (a *API) getPlace(c *gin.Context) {
	place, err := a.facade.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlaceResponse(place))
}

func (a *API) updatePlace(c *gin.Context) {
	id := c.Param("id")
	place, err := a.facade.GetPlace(c.Request.Context(), id)
	if err != nil {
		a.abortError(c, err)
		return
	}
	if !auth.CanModify(middleware.UserID(c), place.OwnerID, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Transferring ownership is admin-only.
	if req.OwnerID != nil && !middleware.IsAdmin(c) {
		a.abortForbidden(c)
		return
	}

	updated, err := a.facade.UpdatePlace(c.Request.Context(), id, facade.PlaceUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.Amenities,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlaceResponse(updated))
}

func (a *API) deletePlace(c *gin.Context) {
	id := c.Param("id")
	place, err := a.facade.GetPlace(c.Request.Context(), id)
	if err != nil {
		a.abortError(c, err)
		return
	}
	if !auth.CanModify(middleware.UserID(c), place.OwnerID, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	if err := a.facade.DeletePlace(c.Request.Context(), id); err != nil {
		a.abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
