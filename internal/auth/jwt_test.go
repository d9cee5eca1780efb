package auth

import (
	"errors"
	"testing"

	"github.com/jessebautista/wpnew-sub000/internal/user"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("user-1", user.RoleModerator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != user.RoleModerator {
		t.Errorf("role = %q, want moderator", claims.Role)
	}
}

func TestGenerateTokenRejectsBadInput(t *testing.T) {
	svc := NewJWTService("test-secret")

	if _, err := svc.GenerateToken("", user.RoleUser); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("empty user id: got %v", err)
	}
	if _, err := svc.GenerateToken("user-1", "superadmin"); !errors.Is(err, user.ErrInvalidRole) {
		t.Errorf("bad role: got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := NewJWTService("secret-a")
	verifier := NewJWTService("secret-b")

	token, err := signer.GenerateToken("user-1", user.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenAcceptsPreviousSecretDuringRotation(t *testing.T) {
	old := NewJWTService("old-secret")
	token, err := old.GenerateToken("user-1", user.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	rotated := NewJWTServiceWithRotation("new-secret", "old-secret")
	claims, err := rotated.ValidateToken(token)
	if err != nil {
		t.Fatalf("token signed with previous secret rejected: %v", err)
	}
	if claims.Role != user.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}

	noRotation := NewJWTServiceWithRotation("new-secret", "")
	if _, err := noRotation.ValidateToken(token); err == nil {
		t.Error("old token accepted after rotation window closed")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")
	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
