package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/models"
	"hbnb/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	facade *facade.Facade
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := facade.New(
		memory.New[*models.User](),
		memory.New[*models.Place](),
		memory.New[*models.Amenity](),
		memory.New[*models.Review](),
		logger,
	)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return &testServer{
		router: NewRouter(f, jwtManager, logger),
		facade: f,
	}
}

// do issues a JSON request against the router. An empty token leaves the
// request anonymous.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// register creates an account through the API and returns its id plus a
// session token from a follow-up login.
func (s *testServer) register(t *testing.T, email string) (id, token string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/users", "", gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "supersecret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got %d: %s", w.Code, w.Body.String())
	}
	user := decode[userResponse](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "supersecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", w.Code, w.Body.String())
	}
	login := decode[map[string]json.RawMessage](t, w)
	if err := json.Unmarshal(login["token"], &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return user.ID, token
}

// adminToken promotes a fresh user through the facade and logs them in, since
// the API itself refuses to mint admins without an existing one.
func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	_, err := s.facade.CreateUser(context.Background(), facade.NewUserInput{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "root@example.com",
		Password:  "supersecret",
		IsAdmin:   true,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "root@example.com",
		"password": "supersecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: got %d: %s", w.Code, w.Body.String())
	}
	login := decode[map[string]json.RawMessage](t, w)
	var token string
	if err := json.Unmarshal(login["token"], &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return token
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", &models.ValidationError{Field: "email", Message: "is invalid"}, http.StatusBadRequest},
		{"weak password", auth.ErrWeakPassword, http.StatusBadRequest},
		{"email exists", facade.ErrEmailExists, http.StatusBadRequest},
		{"duplicate name", facade.ErrDuplicateName, http.StatusBadRequest},
		{"duplicate review", facade.ErrDuplicateReview, http.StatusBadRequest},
		{"self review", facade.ErrSelfReview, http.StatusBadRequest},
		{"user owns places", facade.ErrUserOwnsPlaces, http.StatusBadRequest},
		{"not found", facade.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("place p1: %w", facade.ErrNotFound), http.StatusNotFound},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestAuthFlow(t *testing.T) {
	t.Run("register, login and fetch self", func(t *testing.T) {
		s := newTestServer(t)
		id, token := s.register(t, "ada@example.com")

		w := s.do(t, http.MethodGet, "/api/v1/users/"+id, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get user: got %d: %s", w.Code, w.Body.String())
		}
		user := decode[userResponse](t, w)
		if user.Email != "ada@example.com" {
			t.Errorf("email: got %q", user.Email)
		}
		if _, err := time.Parse(time.RFC3339, user.CreatedAt); err != nil {
			t.Errorf("created_at not RFC3339: %q", user.CreatedAt)
		}
	})

	t.Run("password never appears in responses", func(t *testing.T) {
		s := newTestServer(t)
		s.register(t, "ada@example.com")

		w := s.do(t, http.MethodGet, "/api/v1/users", "", nil)
		if bytes.Contains(w.Body.Bytes(), []byte("password")) {
			t.Errorf("password leaked: %s", w.Body.String())
		}
	})

	t.Run("wrong credentials are 401", func(t *testing.T) {
		s := newTestServer(t)
		s.register(t, "ada@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "ada@example.com",
			"password": "wrong-pass",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", w.Code)
		}
	})

	t.Run("mutations require a token", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(t, http.MethodPost, "/api/v1/places", "", gin.H{"title": "No auth"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", w.Code)
		}

		w = s.do(t, http.MethodPost, "/api/v1/places", "garbage-token", gin.H{"title": "Bad token"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("got %d, want 401", w.Code)
		}
	})

	t.Run("self-minted admin is rejected", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(t, http.MethodPost, "/api/v1/users", "", gin.H{
			"first_name": "Eve",
			"last_name":  "Dropper",
			"email":      "eve@example.com",
			"password":   "supersecret",
			"is_admin":   true,
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("got %d, want 403", w.Code)
		}
	})

	t.Run("users may not edit each other", func(t *testing.T) {
		s := newTestServer(t)
		idA, _ := s.register(t, "a@example.com")
		_, tokenB := s.register(t, "b@example.com")

		w := s.do(t, http.MethodPut, "/api/v1/users/"+idA, tokenB, gin.H{"first_name": "Hacked"})
		if w.Code != http.StatusForbidden {
			t.Errorf("got %d, want 403", w.Code)
		}
	})

	t.Run("privilege escalation is admin only", func(t *testing.T) {
		s := newTestServer(t)
		id, token := s.register(t, "a@example.com")

		w := s.do(t, http.MethodPut, "/api/v1/users/"+id, token, gin.H{"is_admin": true})
		if w.Code != http.StatusForbidden {
			t.Errorf("self-escalation: got %d, want 403", w.Code)
		}

		admin := s.adminToken(t)
		w = s.do(t, http.MethodPut, "/api/v1/users/"+id, admin, gin.H{"is_admin": true})
		if w.Code != http.StatusOK {
			t.Errorf("admin escalation: got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAmenityEndpoints(t *testing.T) {
	t.Run("creation is admin only", func(t *testing.T) {
		s := newTestServer(t)
		_, token := s.register(t, "user@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/amenities", token, gin.H{"name": "WiFi"})
		if w.Code != http.StatusForbidden {
			t.Errorf("non-admin create: got %d, want 403", w.Code)
		}

		admin := s.adminToken(t)
		w = s.do(t, http.MethodPost, "/api/v1/amenities", admin, gin.H{"name": "WiFi"})
		if w.Code != http.StatusCreated {
			t.Fatalf("admin create: got %d: %s", w.Code, w.Body.String())
		}
		created := decode[amenityResponse](t, w)

		w = s.do(t, http.MethodGet, "/api/v1/amenities/"+created.ID, "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("public read: got %d", w.Code)
		}
	})

	t.Run("case-insensitive duplicate is 400", func(t *testing.T) {
		s := newTestServer(t)
		admin := s.adminToken(t)

		if w := s.do(t, http.MethodPost, "/api/v1/amenities", admin, gin.H{"name": "WiFi"}); w.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
		}
		w := s.do(t, http.MethodPost, "/api/v1/amenities", admin, gin.H{"name": "wifi"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("duplicate: got %d, want 400", w.Code)
		}
	})

	t.Run("lookup by name query", func(t *testing.T) {
		s := newTestServer(t)
		admin := s.adminToken(t)
		if w := s.do(t, http.MethodPost, "/api/v1/amenities", admin, gin.H{"name": "WiFi"}); w.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
		}

		w := s.do(t, http.MethodGet, "/api/v1/amenities?name=WIFI", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("lookup: got %d: %s", w.Code, w.Body.String())
		}
		got := decode[[]amenityResponse](t, w)
		if len(got) != 1 || got[0].Name != "WiFi" {
			t.Errorf("lookup result: got %+v, want single WiFi entry", got)
		}

		w = s.do(t, http.MethodGet, "/api/v1/amenities?name=Sauna", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("unknown name: got %d, want 404", w.Code)
		}
	})
}

func TestPlaceEndpoints(t *testing.T) {
	newPlaceBody := gin.H{
		"title":     "Cozy flat",
		"price":     80.0,
		"latitude":  48.85,
		"longitude": 2.35,
	}

	t.Run("caller becomes owner", func(t *testing.T) {
		s := newTestServer(t)
		id, token := s.register(t, "owner@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/places", token, newPlaceBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
		}
		place := decode[placeResponse](t, w)
		if place.OwnerID != id {
			t.Errorf("owner: got %q, want %q", place.OwnerID, id)
		}
	})

	t.Run("supplied owner_id is ignored for non-admins", func(t *testing.T) {
		s := newTestServer(t)
		id, token := s.register(t, "owner@example.com")
		otherID, _ := s.register(t, "other@example.com")

		body := gin.H{
			"title": "Spoofed", "price": 10.0, "latitude": 0.0, "longitude": 0.0,
			"owner_id": otherID,
		}
		w := s.do(t, http.MethodPost, "/api/v1/places", token, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
		}
		place := decode[placeResponse](t, w)
		if place.OwnerID != id {
			t.Errorf("owner: got %q, want caller %q", place.OwnerID, id)
		}
	})

	t.Run("out-of-range latitude is 400", func(t *testing.T) {
		s := newTestServer(t)
		_, token := s.register(t, "owner@example.com")

		body := gin.H{"title": "Bad", "price": 10.0, "latitude": 120.0, "longitude": 0.0}
		w := s.do(t, http.MethodPost, "/api/v1/places", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("got %d, want 400", w.Code)
		}
	})

	t.Run("only owner or admin may modify", func(t *testing.T) {
		s := newTestServer(t)
		_, ownerToken := s.register(t, "owner@example.com")
		_, strangerToken := s.register(t, "stranger@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/places", ownerToken, newPlaceBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
		}
		place := decode[placeResponse](t, w)

		w = s.do(t, http.MethodPut, "/api/v1/places/"+place.ID, strangerToken, gin.H{"title": "Stolen"})
		if w.Code != http.StatusForbidden {
			t.Errorf("stranger update: got %d, want 403", w.Code)
		}
		w = s.do(t, http.MethodDelete, "/api/v1/places/"+place.ID, strangerToken, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("stranger delete: got %d, want 403", w.Code)
		}

		admin := s.adminToken(t)
		w = s.do(t, http.MethodPut, "/api/v1/places/"+place.ID, admin, gin.H{"title": "Renamed by admin"})
		if w.Code != http.StatusOK {
			t.Errorf("admin update: got %d: %s", w.Code, w.Body.String())
		}

		w = s.do(t, http.MethodDelete, "/api/v1/places/"+place.ID, ownerToken, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("owner delete: got %d: %s", w.Code, w.Body.String())
		}
		w = s.do(t, http.MethodGet, "/api/v1/places/"+place.ID, "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("deleted place still readable: got %d", w.Code)
		}
	})

	t.Run("list filters by owner_id", func(t *testing.T) {
		s := newTestServer(t)
		ownerID, ownerToken := s.register(t, "owner@example.com")
		_, otherToken := s.register(t, "other@example.com")

		for _, token := range []string{ownerToken, ownerToken, otherToken} {
			if w := s.do(t, http.MethodPost, "/api/v1/places", token, newPlaceBody); w.Code != http.StatusCreated {
				t.Fatalf("create: got %d: %s", w.Code, w.Body.String())
			}
		}

		w := s.do(t, http.MethodGet, "/api/v1/places?owner_id="+ownerID, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list: got %d: %s", w.Code, w.Body.String())
		}
		places := decode[[]placeResponse](t, w)
		if len(places) != 2 {
			t.Errorf("count: got %d, want 2", len(places))
		}
	})
}

func TestReviewEndpoints(t *testing.T) {
	setup := func(t *testing.T) (s *testServer, placeID, reviewerToken string) {
		s = newTestServer(t)
		_, ownerToken := s.register(t, "owner@example.com")
		_, reviewerToken = s.register(t, "reviewer@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/places", ownerToken, gin.H{
			"title": "Reviewed", "price": 50.0, "latitude": 10.0, "longitude": 10.0,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create place: got %d: %s", w.Code, w.Body.String())
		}
		return s, decode[placeResponse](t, w).ID, reviewerToken
	}

	t.Run("create and list per place", func(t *testing.T) {
		s, placeID, reviewerToken := setup(t)

		w := s.do(t, http.MethodPost, "/api/v1/reviews", reviewerToken, gin.H{
			"place_id": placeID, "rating": 4, "text": "Great stay",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create review: got %d: %s", w.Code, w.Body.String())
		}

		w = s.do(t, http.MethodGet, "/api/v1/places/"+placeID+"/reviews", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list reviews: got %d: %s", w.Code, w.Body.String())
		}
		reviews := decode[[]reviewResponse](t, w)
		if len(reviews) != 1 || reviews[0].Rating != 4 {
			t.Errorf("reviews: got %+v", reviews)
		}
	})

	t.Run("second review for the same place is 400", func(t *testing.T) {
		s, placeID, reviewerToken := setup(t)
		body := gin.H{"place_id": placeID, "rating": 4, "text": "Again"}

		if w := s.do(t, http.MethodPost, "/api/v1/reviews", reviewerToken, body); w.Code != http.StatusCreated {
			t.Fatalf("first review: got %d: %s", w.Code, w.Body.String())
		}
		w := s.do(t, http.MethodPost, "/api/v1/reviews", reviewerToken, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("duplicate: got %d, want 400", w.Code)
		}
	})

	t.Run("owner reviewing own place is 400", func(t *testing.T) {
		s := newTestServer(t)
		_, ownerToken := s.register(t, "owner@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/places", ownerToken, gin.H{
			"title": "Mine", "price": 50.0, "latitude": 10.0, "longitude": 10.0,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create place: got %d: %s", w.Code, w.Body.String())
		}
		placeID := decode[placeResponse](t, w).ID

		w = s.do(t, http.MethodPost, "/api/v1/reviews", ownerToken, gin.H{
			"place_id": placeID, "rating": 5, "text": "Best place ever",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("self review: got %d, want 400", w.Code)
		}
	})

	t.Run("only author or admin may modify", func(t *testing.T) {
		s, placeID, reviewerToken := setup(t)
		_, strangerToken := s.register(t, "stranger@example.com")

		w := s.do(t, http.MethodPost, "/api/v1/reviews", reviewerToken, gin.H{
			"place_id": placeID, "rating": 3, "text": "Fine",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create review: got %d: %s", w.Code, w.Body.String())
		}
		review := decode[reviewResponse](t, w)

		w = s.do(t, http.MethodPut, "/api/v1/reviews/"+review.ID, strangerToken, gin.H{"rating": 1})
		if w.Code != http.StatusForbidden {
			t.Errorf("stranger update: got %d, want 403", w.Code)
		}

		w = s.do(t, http.MethodPut, "/api/v1/reviews/"+review.ID, reviewerToken, gin.H{"rating": 5})
		if w.Code != http.StatusOK {
			t.Fatalf("author update: got %d: %s", w.Code, w.Body.String())
		}
		if got := decode[reviewResponse](t, w); got.Rating != 5 {
			t.Errorf("rating: got %d, want 5", got.Rating)
		}

		w = s.do(t, http.MethodDelete, "/api/v1/reviews/"+review.ID, reviewerToken, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("author delete: got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("got %d, want 200", w.Code)
	}
}
