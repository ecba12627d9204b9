package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	pkgAuth "github.com/kitkatcodeskitty/lms-migrate/internal/pkg/auth"
	testhelpers "github.com/kitkatcodeskitty/lms-migrate/internal/test"
)

func newOperatorAuth(password string) *OperatorAuthUseCase {
	return NewOperatorAuthUseCase("operator", "hash:"+password, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
}

func TestOperatorAuthLoginSuccess(t *testing.T) {
	password := testhelpers.RandomASCIIString(8, 24)
	uc := newOperatorAuth(password)

	token, err := uc.Login(context.Background(), " operator ", password)
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token != "token:operator" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestOperatorAuthLoginRejects(t *testing.T) {
	uc := newOperatorAuth("secret")

	cases := []struct {
		name     string
		login    string
		password string
	}{
		{"empty login", "", "secret"},
		{"empty password", "operator", ""},
		{"unknown login", "admin", "secret"},
		{"wrong password", "operator", "guess"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Login(context.Background(), tc.login, tc.password); err != domainErrors.ErrInvalidCredentials {
				t.Fatalf("expected invalid credentials error, got %v", err)
			}
		})
	}
}

func TestOperatorAuthLoginDisabledWithoutHash(t *testing.T) {
	uc := NewOperatorAuthUseCase("operator", "", testhelpers.HasherStub{
		CompareFn: func(string, string) error { return nil },
	}, testhelpers.StrategyStub{})
	if _, err := uc.Login(context.Background(), "operator", "anything"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestOperatorAuthLoginIssueTokenError(t *testing.T) {
	strategy := testhelpers.StrategyStub{IssueFn: func(string) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewOperatorAuthUseCase("operator", "hash:secret", testhelpers.HasherStub{}, strategy)
	if _, err := uc.Login(context.Background(), "operator", "secret"); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestOperatorAuthParseToken(t *testing.T) {
	uc := newOperatorAuth("secret")

	subject, err := uc.ParseToken("token:operator")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if subject != "operator" {
		t.Fatalf("expected operator, got %q", subject)
	}

	for _, token := range []string{"", "bad-token", "token:someone-else"} {
		if _, err := uc.ParseToken(token); err != pkgAuth.ErrInvalidToken {
			t.Fatalf("token %q: expected invalid token error, got %v", token, err)
		}
	}
}
