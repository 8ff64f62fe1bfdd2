package api

import (
	"time"

	"hbnb/internal/models"
)

// Responses are assembled here rather than serializing models directly:
// timestamps go out as ISO-8601 and the password hash never leaves the
// process.

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type amenityResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type placeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type reviewResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	UserID    string `json:"user_id"`
	PlaceID   string `json:"place_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func isoTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: isoTime(u.CreatedAt),
		UpdatedAt: isoTime(u.UpdatedAt),
	}
}

func toUserResponses(users []*models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toAmenityResponse(a *models.Amenity) amenityResponse {
	return amenityResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: isoTime(a.CreatedAt),
		UpdatedAt: isoTime(a.UpdatedAt),
	}
}

func toAmenityResponses(amenities []*models.Amenity) []amenityResponse {
	out := make([]amenityResponse, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, toAmenityResponse(a))
	}
	return out
}

func toPlaceResponse(p *models.Place) placeResponse {
	amenities := p.AmenityIDs
	if amenities == nil {
		amenities = []string{}
	}
	return placeResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.OwnerID,
		Amenities:   amenities,
		CreatedAt:   isoTime(p.CreatedAt),
		UpdatedAt:   isoTime(p.UpdatedAt),
	}
}

func toPlaceResponses(places []*models.Place) []placeResponse {
	out := make([]placeResponse, 0, len(places))
	for _, p := range places {
		out = append(out, toPlaceResponse(p))
	}
	return out
}

func toReviewResponse(r *models.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Text:      r.Text,
		Rating:    r.Rating,
		UserID:    r.UserID,
		PlaceID:   r.PlaceID,
		CreatedAt: isoTime(r.CreatedAt),
		UpdatedAt: isoTime(r.UpdatedAt),
	}
}

func toReviewResponses(reviews []*models.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}
