package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/middleware"
)

type createReviewRequest struct {
	Text    string `json:"text"`
	Rating  *int   `json:"rating"`
	PlaceID string `json:"place_id"`
}

type updateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// createReview stores a review authored by the caller; the author cannot be
// spoofed through the payload.
func (a *API) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := a.facade.CreateReview(c.Request.Context(), facade.NewReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		UserID:  middleware.UserID(c),
		PlaceID: req.PlaceID,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(review))
}

// listReviews returns all reviews, or one user's when ?user_id= is given.
func (a *API) listReviews(c *gin.Context) {
	var reviews []reviewResponse
	if userID := c.Query("user_id"); userID != "" {
		byUser, err := a.facade.GetReviewsByUser(c.Request.Context(), userID)
		if err != nil {
			a.abortError(c, err)
			return
		}
		reviews = toReviewResponses(byUser)
	} else {
		all, err := a.facade.GetAllReviews(c.Request.Context())
		if err != nil {
			a.abortError(c, err)
			return
		}
		reviews = toReviewResponses(all)
	}
	c.JSON(http.StatusOK, reviews)
}

func (a *API) getReview(c *gin.Context) {
	review, err := a.facade.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (a *API) listPlaceReviews(c *gin.Context) {
	reviews, err := a.facade.GetReviewsByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponses(reviews))
}

func (a *API) updateReview(c *gin.Context) {
	id := c.Param("id")
	review, err := a.facade.GetReview(c.Request.Context(), id)
	if err != nil {
		a.abortError(c, err)
		return
	}
	if !auth.CanModify(middleware.UserID(c), review.UserID, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := a.facade.UpdateReview(c.Request.Context(), id, facade.ReviewUpdate{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		a.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(updated))
}

func (a *API) deleteReview(c *gin.Context) {
	id := c.Param("id")
	review, err := a.facade.GetReview(c.Request.Context(), id)
	if err != nil {
		a.abortError(c, err)
		return
	}
	if !auth.CanModify(middleware.UserID(c), review.UserID, middleware.IsAdmin(c)) {
		a.abortForbidden(c)
		return
	}

	if err := a.facade.DeleteReview(c.Request.Context(), id); err != nil {
		a.abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
