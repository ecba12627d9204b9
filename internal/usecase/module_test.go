package usecase

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	testhelpers "github.com/kitkatcodeskitty/lms-migrate/internal/test"
)

func TestNewOperatorAuthUseCaseChecksConfiguredHash(t *testing.T) {
	params := func(hash string) operatorParams {
		return operatorParams{
			Config: &config.Config{OperatorLogin: "operator", OperatorPasswordHash: hash},
			Hasher: testhelpers.HasherStub{},
			Tokens: testhelpers.StrategyStub{},
		}
	}

	if _, err := newOperatorAuthUseCase(params("")); err != nil {
		t.Fatalf("empty hash must disable login, got %v", err)
	}
	if _, err := newOperatorAuthUseCase(params("not-a-bcrypt-hash")); err == nil {
		t.Fatal("expected malformed hash to be rejected")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}
	if _, err := newOperatorAuthUseCase(params(string(hash))); err != nil {
		t.Fatalf("valid hash rejected: %v", err)
	}
}
