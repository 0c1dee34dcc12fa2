package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned by LoginUser for an unknown login or a wrong password.
var ErrInvalidCredentials = errors.New("invalid login or password")

func sessionKey(userID int) string {
	return "jwt:" + strconv.Itoa(userID)
}

// GetUserByLogin returns nil, nil when no such user exists.
func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	user := &ds.User{}
	err := r.db.WithContext(ctx).Where("login = ?", login).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get user", err)
	}
	return user, nil
}

// RegisterUser creates a viewer unless a role is given. The password is hashed by ds.User.BeforeCreate.
func (r *Repository) RegisterUser(ctx context.Context, user ds.User) (ds.User, error) {
	if user.Login == "" {
		return ds.User{}, &apperr.ValidationError{Field: "login", Reason: "is required"}
	}
	if user.Password == "" {
		return ds.User{}, &apperr.ValidationError{Field: "password", Reason: "is required"}
	}
	exist, err := r.GetUserByLogin(ctx, user.Login)
	if err != nil {
		return ds.User{}, err
	}
	if exist != nil {
		return ds.User{}, &apperr.ValidationError{Field: "login", Reason: "already exists"}
	}
	if user.Role == "" {
		user.Role = ds.RoleViewer
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return ds.User{}, mapError("create user", err)
	}
	user.Password = ""
	return user, nil
}

// LoginUser checks credentials, issues a JWT and stores it as the user's active session.
func (r *Repository) LoginUser(ctx context.Context, login, password string) (string, error) {
	user, err := r.GetUserByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateJWT([]byte(r.opts.JWTKey), r.opts.JWTTTL, user.UserID, user.Role)
	if err != nil {
		return "", fmt.Errorf("jwt sign error: %w", err)
	}

	if r.redis != nil {
		if err := r.redis.Set(ctx, sessionKey(user.UserID), token, r.opts.JWTTTL).Err(); err != nil {
			return "", apperr.Persistence("save session", err)
		}
	}
	logrus.Infof("user %s logged in", login)
	return token, nil
}

// LogoutUser drops the stored session of userID.
func (r *Repository) LogoutUser(ctx context.Context, userID int) error {
	if r.redis == nil {
		return nil
	}
	return apperr.Persistence("delete session", r.redis.Del(ctx, sessionKey(userID)).Err())
}

// SessionActive reports whether token is the stored session of userID.
// Without redis every validly signed token is accepted.
func (r *Repository) SessionActive(ctx context.Context, userID int, token string) bool {
	if r.redis == nil {
		return true
	}
	stored, err := r.redis.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("session lookup for user %d: %v", userID, err)
		}
		return false
	}
	return stored == token
}
