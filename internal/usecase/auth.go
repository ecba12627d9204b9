package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	pkgAuth "github.com/kitkatcodeskitty/lms-migrate/internal/pkg/auth"
)

// OperatorAuthUseCase authenticates the single admin operator.
type OperatorAuthUseCase struct {
	login        string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewOperatorAuthUseCase constructs OperatorAuthUseCase. An empty
// passwordHash disables login.
func NewOperatorAuthUseCase(login, passwordHash string, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *OperatorAuthUseCase {
	return &OperatorAuthUseCase{login: login, passwordHash: passwordHash, hasher: hasher, tokens: strategy}
}

// Login validates operator credentials and returns a session token.
func (u *OperatorAuthUseCase) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" || u.passwordHash == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if login != u.login {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(login)
}

// ParseToken returns the operator login encoded in token.
func (u *OperatorAuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if subject != u.login {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}
