package service

import (
	"context"
	"time"

	"docverify/internal/models/entity"
	"docverify/internal/storage"
	"docverify/pkg/appError"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// LedgerGateway is the on-chain collaborator. SubmitDocument reports
// whether the digest was newly recorded; MatchPasswords asserts two
// hashes match on chain.
type LedgerGateway interface {
	SubmitDocument(ctx context.Context, digest [32]byte) (bool, error)
	MatchPasswords(ctx context.Context, hashA, hashB string) error
}

type auth struct {
	userStorage storage.UserStorage
	ledger      LedgerGateway
	jwtSecret   []byte
	jwtExpiry   time.Duration
}

type AuthService interface {
	Register(ctx context.Context, user *entity.User) error
	Login(ctx context.Context, email, password string) (string, uuid.UUID, error)
	Authenticate(tokenString string) (*Claims, error)
}

func NewAuthService(userStorage storage.UserStorage, ledger LedgerGateway, jwtSecret string, jwtExpiry time.Duration) AuthService {
	return &auth{
		userStorage: userStorage,
		ledger:      ledger,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
	}
}

func (a *auth) Register(ctx context.Context, user *entity.User) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		return appError.Internal("internal server error")
	}
	user.PasswordHash = string(passwordHash)
	user.Password = ""

	return a.userStorage.AddUser(ctx, user)
}

func (a *auth) Login(ctx context.Context, email, password string) (string, uuid.UUID, error) {
	user, err := a.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return "", uuid.Nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", uuid.Nil, appError.Unauthorized("Invalid credentials")
	}

	// On-chain hash self-comparison, kept from the original system.
	// The password check above already decided authentication; this
	// call can only fail on transport errors, which still abort the
	// login. Dead logic as far as auth goes.
	if err := a.ledger.MatchPasswords(ctx, user.PasswordHash, user.PasswordHash); err != nil {
		return "", uuid.Nil, err
	}

	token, err := newToken(user.ID, user.Role, a.jwtSecret, a.jwtExpiry)
	if err != nil {
		return "", uuid.Nil, appError.Internal("internal server error")
	}

	return token, user.ID, nil
}

func (a *auth) Authenticate(tokenString string) (*Claims, error) {
	return parseToken(tokenString, a.jwtSecret)
}
