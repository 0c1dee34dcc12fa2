package repository

import (
	"context"
	"testing"

	"container_loading/internal/app/ds"
	"container_loading/internal/app/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUserDefaultsToViewer(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE login = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	user, err := repo.RegisterUser(context.Background(), ds.User{Login: "planner", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 3, user.UserID)
	assert.Equal(t, ds.RoleViewer, user.Role)
	assert.Empty(t, user.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUserIssuesToken(t *testing.T) {
	repo, mock := newMockRepository(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE login = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "login", "password", "role"}).
			AddRow(3, "admin", string(hash), ds.RoleAdmin))

	token, err := repo.LoginUser(context.Background(), "admin", "secret")
	require.NoError(t, err)

	claims, err := utils.ParseJWT([]byte("test-key"), token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, ds.RoleAdmin, claims.Role)
	assert.True(t, repo.SessionActive(context.Background(), 3, token))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo, mock := newMockRepository(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "login", "password", "role"}).
			AddRow(3, "admin", string(hash), ds.RoleAdmin))

	_, err = repo.LoginUser(context.Background(), "admin", "guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
