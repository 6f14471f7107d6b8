package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groweasy/internal/domain/user"
	"groweasy/internal/logger"
	"groweasy/internal/pkg/jwt"
	ucauth "groweasy/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

// Tokens is an access/refresh pair issued together.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, Tokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	log     *zap.Logger
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, log *zap.Logger) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc, log: logger.Named(log, "auth")}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, Tokens, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	u.log.Info("user registered", zap.String(logger.FieldUserID, usr.ID.String()))
	return usr, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}
	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (Tokens, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
