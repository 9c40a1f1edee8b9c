package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krm/catalog-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// JWTService issues HS256 bearer tokens carrying the principal's name and role.
type JWTService struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewJWTService(secret string, tokenTTL time.Duration) *JWTService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), tokenTTL: tokenTTL, now: time.Now}
}

func (s *JWTService) Issue(p domain.Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":  p.Username,
		"role": string(p.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates signature and expiry and returns the principal the token
// was issued to. The returned principal carries no secret hash.
func (s *JWTService) Parse(token string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	roleName, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleName)
	if sub == "" || !ok {
		return domain.Principal{}, errors.Join(domain.ErrUnauthenticated, errors.New("token missing identity claims"))
	}
	return domain.Principal{Username: sub, Role: role}, nil
}
