package services

import (
	"announcement-board/app/server/jwt"
	"announcement-board/app/server/models"
	"context"
	"errors"
	"fmt"
)

type Auth struct {
	creds *Credentials
	jwt   *jwt.JWT
}

func NewAuth(creds *Credentials, j *jwt.JWT) *Auth {
	return &Auth{
		creds: creds,
		jwt:   j,
	}
}

// Login 校验用户名密码并签发令牌，用户不存在与密码错误返回同一个错误
func (s *Auth) Login(ctx context.Context, username string, password string) (string, *models.User, error) {
	user, err := s.creds.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.creds.burn(password)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	match, err := s.creds.VerifyPassword(user, password)
	if err != nil {
		return "", nil, err
	}
	if !match {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}
