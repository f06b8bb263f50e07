package store

import (
	"database/sql"
	"errors"

	"github.com/ToNga156/FinalProject/internal/auth"
	"github.com/ToNga156/FinalProject/internal/models"
)

func (s *StoreSuite) TestAuthenticateSeededAdmin() {
	u, err := s.store.Authenticate(s.ctx, "admin", "123456")
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.Equal(models.RoleAdmin, u.Role)
	s.True(u.IsAdmin())

	u, err = s.store.Authenticate(s.ctx, "admin", "wrong")
	s.Require().NoError(err)
	s.Nil(u)

	u, err = s.store.Authenticate(s.ctx, "nobody", "123456")
	s.Require().NoError(err)
	s.Nil(u)
}

func (s *StoreSuite) TestCreateUser() {
	id := s.newUser("linh")
	u, err := s.store.GetUserByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.Equal("linh", u.Username)
	s.Equal(models.RoleUser, u.Role)
	s.NotEqual("secret1", u.Password)
	s.True(auth.IsHashed(u.Password))

	_, err = s.store.CreateUser(s.ctx, "linh", "other123", "")
	s.True(errors.Is(err, ErrUsernameTaken))

	_, err = s.store.CreateUser(s.ctx, "quang", "secret1", "owner")
	s.True(errors.Is(err, ErrInvalidRole))

	defaulted, err := s.store.CreateUser(s.ctx, "quang", "secret1", "")
	s.Require().NoError(err)
	u, err = s.store.GetUserByID(s.ctx, defaulted)
	s.Require().NoError(err)
	s.Equal(models.RoleUser, u.Role)
}

func (s *StoreSuite) TestUpdateProfileWritesOnlySetFields() {
	id := s.newUser("mai")
	s.Require().NoError(s.store.UpdateProfile(s.ctx, id, models.ProfileUpdate{
		Email:   ptr("mai@example.com"),
		Phone:   ptr("0987654321"),
		Address: ptr("45 Le Loi, Da Nang"),
	}))
	s.Require().NoError(s.store.UpdateProfile(s.ctx, id, models.ProfileUpdate{Avatar: ptr("mai.png")}))
	s.Require().NoError(s.store.UpdateProfile(s.ctx, id, models.ProfileUpdate{}))

	u, err := s.store.GetUserByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("mai", u.Username)
	s.Equal("mai@example.com", u.Email)
	s.Equal("0987654321", u.Phone)
	s.Equal("45 Le Loi, Da Nang", u.Address)
	s.Equal("mai.png", u.Avatar)

	got, err := s.store.Authenticate(s.ctx, "mai", "secret1")
	s.Require().NoError(err)
	s.NotNil(got)
}

func (s *StoreSuite) TestUpdateProfileChangesCredentials() {
	id := s.newUser("duc")
	s.Require().NoError(s.store.UpdateProfile(s.ctx, id, models.ProfileUpdate{
		Username: ptr("duc2"),
		Password: ptr("newpass1"),
	}))

	u, err := s.store.Authenticate(s.ctx, "duc2", "newpass1")
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.True(auth.IsHashed(u.Password))

	u, err = s.store.Authenticate(s.ctx, "duc2", "secret1")
	s.Require().NoError(err)
	s.Nil(u)

	err = s.store.UpdateProfile(s.ctx, id, models.ProfileUpdate{Username: ptr("admin")})
	s.True(errors.Is(err, ErrUsernameTaken))
}

func (s *StoreSuite) TestRolesAndDeletion() {
	id := s.newUser("vy")
	s.Require().NoError(s.store.SetRole(s.ctx, id, models.RoleAdmin))
	s.True(errors.Is(s.store.SetRole(s.ctx, id, "root"), ErrInvalidRole))

	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("admin", users[0].Username)
	s.Equal(models.RoleAdmin, users[1].Role)

	s.Require().NoError(s.store.AddToCart(s.ctx, id, 6, 1))
	s.Require().NoError(s.store.DeleteUser(s.ctx, id))

	u, err := s.store.GetUserByID(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(u)
	s.Equal(0, countRows(s.T(), s.store, "cart"))
}

func (s *StoreSuite) TestAuthenticateRejectsMissingPassword() {
	_, err := s.store.DB.ExecContext(s.ctx, `INSERT INTO users (username, password, role) VALUES ('ghost', NULL, 'admin')`)
	s.Require().NoError(err)

	u, err := s.store.Authenticate(s.ctx, "ghost", "")
	s.Require().NoError(err)
	s.Nil(u)

	// The row is left as it was, not upgraded to a hash of "".
	var password sql.NullString
	s.Require().NoError(s.store.DB.QueryRowContext(s.ctx, `SELECT password FROM users WHERE username = 'ghost'`).Scan(&password))
	s.False(password.Valid)
}
