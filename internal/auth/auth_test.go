package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wuwenbin0122/userdash/internal/auth"
)

func TestAuthServiceIssueAndVerify(t *testing.T) {
	svc, err := auth.NewService("test-secret", "admin-key", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating auth service: %v", err)
	}

	result, err := svc.IssueToken(context.Background(), auth.TokenInput{
		AdminKey: "admin-key",
		Subject:  "dashboard",
	})
	if err != nil {
		t.Fatalf("issue token returned error: %v", err)
	}

	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if result.Subject != "dashboard" {
		t.Fatalf("expected subject dashboard, got %s", result.Subject)
	}

	claims, err := svc.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if claims.Subject != "dashboard" {
		t.Fatalf("expected token subject dashboard, got %s", claims.Subject)
	}

	if _, err := svc.IssueToken(context.Background(), auth.TokenInput{AdminKey: "wrong"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthServiceRandomSubject(t *testing.T) {
	svc, err := auth.NewService("test-secret", "admin-key", time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.IssueToken(context.Background(), auth.TokenInput{AdminKey: "admin-key"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if result.Subject == "" {
		t.Fatalf("expected generated subject")
	}
}

func TestAuthServiceRejectsForeignToken(t *testing.T) {
	issuer, _ := auth.NewService("secret-a", "key", time.Hour)
	verifier, _ := auth.NewService("secret-b", "key", time.Hour)

	result, err := issuer.IssueToken(context.Background(), auth.TokenInput{AdminKey: "key"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := verifier.VerifyToken(result.Token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := auth.NewService(" ", "key", time.Hour); !errors.Is(err, auth.ErrSecretRequired) {
		t.Fatalf("expected secret required, got %v", err)
	}
	if _, err := auth.NewService("secret", "", time.Hour); !errors.Is(err, auth.ErrAdminKeyRequired) {
		t.Fatalf("expected admin key required, got %v", err)
	}
}

func TestParseAuthorization(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  xyz ": "xyz",
		"Basic abc":    "",
		"":             "",
	}
	for header, want := range cases {
		if got := auth.ParseAuthorization(header); got != want {
			t.Fatalf("ParseAuthorization(%q) = %q, want %q", header, got, want)
		}
	}
}
