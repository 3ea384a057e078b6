package user

import (
	"context"
	"database/sql"
	"errors"

	"localwear-be/internal/db"
	"localwear-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const userColumns = `id, name, email, password_hash, google_id, role, address, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.GoogleID,
		&u.Role, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
	)

	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, google_id, role, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.GoogleID, u.Role, u.Address,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			log.Warn("email already registered", zap.String("email", u.Email))
			return nil, ErrEmailExists
		}
		if db.IsUniqueViolation(err, "users_google_id_key") {
			log.Warn("google id already linked", zap.String("email", u.Email))
			return nil, ErrGoogleIDExists
		}
		log.Error("failed to insert user", zap.String("email", u.Email), zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "FindByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.findOne(ctx, "FindByGoogleID", `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

func (r *repository) findOne(ctx context.Context, method, query string, arg any) (*User, error) {
	u, err := scanUser(db.Conn(ctx, r.db).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to load user",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}
