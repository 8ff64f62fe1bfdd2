package auth

import (
	"errors"
	"testing"
	"time"

	"hbnb/internal/models"
)

func TestPasswords(t *testing.T) {
	t.Run("validate enforces minimum length", func(t *testing.T) {
		if err := ValidatePassword("1234567"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
		if err := ValidatePassword("12345678"); err != nil {
			t.Errorf("eight characters rejected: %v", err)
		}
	})

	t.Run("hash and check round-trip", func(t *testing.T) {
		hash, err := HashPassword("supersecret")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if hash == "supersecret" {
			t.Fatal("password stored in the clear")
		}
		if !CheckPassword(hash, "supersecret") {
			t.Error("correct password rejected")
		}
		if CheckPassword(hash, "wrong-pass") {
			t.Error("wrong password accepted")
		}
	})
}

func TestJWTManager(t *testing.T) {
	user, err := models.NewUser("Ada", "Lovelace", "ada@example.com", true)
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}

	t.Run("generate and validate round-trip", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("user id: got %q, want %q", claims.UserID, user.ID)
		}
		if !claims.IsAdmin {
			t.Error("admin flag lost in claims")
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-a", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := NewJWTManager("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		m := NewJWTManager("test-secret", -time.Minute)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestCanModify(t *testing.T) {
	cases := []struct {
		name    string
		actorID string
		ownerID string
		isAdmin bool
		want    bool
	}{
		{"owner may modify", "u1", "u1", false, true},
		{"stranger may not", "u2", "u1", false, false},
		{"admin overrides ownership", "u2", "u1", true, true},
		{"anonymous may not", "", "u1", false, false},
		{"anonymous never matches empty owner", "", "", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanModify(tc.actorID, tc.ownerID, tc.isAdmin); got != tc.want {
				t.Errorf("CanModify(%q, %q, %v) = %v, want %v", tc.actorID, tc.ownerID, tc.isAdmin, got, tc.want)
			}
		})
	}
}
