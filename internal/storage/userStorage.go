package storage

import (
	"context"
	"errors"
	"fmt"

	"docverify/internal/models/entity"
	"docverify/internal/storage/postgres"
	"docverify/pkg/appError"

	"github.com/jackc/pgx/v5"
)

type users struct {
	pool postgres.DBPool
}

type UserStorage interface {
	AddUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

func NewUserStorage(pool postgres.DBPool) UserStorage {
	return &users{
		pool: pool,
	}
}

func (u *users) AddUser(ctx context.Context, user *entity.User) error {
	query := `insert into users(first_name, last_name, srn, mobile_number, email, password, role)
				values($1, $2, $3, $4, $5, $6, $7)
				returning id`

	err := u.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.SRN,
		user.MobileNumber,
		user.Email,
		user.PasswordHash,
		entity.RoleStudent,
	).Scan(&user.ID)
	if err != nil {
		// a unique email violation reaches the caller with its
		// original text, same as any other insert failure
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (u *users) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `select id, first_name, last_name, srn, mobile_number, email, password, role
				from users
				where email = $1`
	var user entity.User
	err := u.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.SRN,
		&user.MobileNumber,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appError.NotFound("User not found")
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}
