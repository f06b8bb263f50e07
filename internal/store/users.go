package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ToNga156/FinalProject/internal/auth"
	"github.com/ToNga156/FinalProject/internal/models"
)

const userColumns = `id, COALESCE(username, ''), COALESCE(password, ''), COALESCE(role, 'user'),
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), COALESCE(avatar, '')`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Email, &u.Phone, &u.Address, &u.Avatar); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers an account. An empty role means models.RoleUser.
func (s *Store) CreateUser(ctx context.Context, username, password string, role models.Role) (int, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return 0, ErrInvalidRole
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`, username, hashed, role)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Authenticate returns the user when the credentials match, nil otherwise.
// A row still holding a plaintext password is rehashed on its first
// successful login.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}

	ok, rehash, err := auth.CheckPassword(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if rehash {
		if hashed, err := auth.HashPassword(password); err == nil {
			if _, err := s.DB.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, hashed, user.ID); err != nil {
				slog.Warn("Failed to upgrade legacy password", "user_id", user.ID, "error", err)
			} else {
				user.Password = hashed
			}
		}
	}
	return user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("get user by username", err)
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("get user", err)
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, readErr("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *Store) SetRole(ctx context.Context, userID int, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if _, err := s.DB.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, userID); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// DeleteUser removes the account and its cart. Orders are kept.
func (s *Store) DeleteUser(ctx context.Context, userID int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE userId = ?`, userID); err != nil && !isMissingTable(err) {
			return fmt.Errorf("failed to clear cart of user %d: %w", userID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
			return fmt.Errorf("failed to delete user %d: %w", userID, err)
		}
		return nil
	})
}

// UpdateProfile writes only the fields set in upd. A new password is hashed
// before it is stored.
func (s *Store) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) error {
	if upd.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("username", upd.Username)
	if upd.Password != nil {
		hashed, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return err
		}
		add("password", &hashed)
	}
	add("email", upd.Email)
	add("phone", upd.Phone)
	add("address", upd.Address)
	add("avatar", upd.Avatar)

	args = append(args, userID)
	_, err := s.DB.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
