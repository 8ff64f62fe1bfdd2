package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/facade"
)

type amenityRequest struct {
	Name *string `json:"name"`
}

func (a *API) createAmenity(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	amenity, err := a.facade.CreateAmenity(c.Request.Context(), name)
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAmenityResponse(amenity))
}

// listAmenities returns all amenities, or a single match when ?name= is
// given.
func (a *API) listAmenities(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		amenity, err := a.facade.GetAmenityByName(c.Request.Context(), name)
		if err != nil {
			a.abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, []any{toAmenityResponse(amenity)})
		return
	}

	amenities, err := a.facade.GetAllAmenities(c.Request.Context())
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponses(amenities))
}

func (a *API) getAmenity(c *gin.Context) {
	amenity, err := a.facade.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponse(amenity))
}

func (a *API) updateAmenity(c *gin.Context) {
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amenity, err := a.facade.UpdateAmenity(c.Request.Context(), c.Param("id"), facade.AmenityUpdate{Name: req.Name})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAmenityResponse(amenity))
}

func (a *API) deleteAmenity(c *gin.Context) {
	if err := a.facade.DeleteAmenity(c.Request.Context(), c.Param("id")); err != nil {
		a.abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
