package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "stored-image-server"

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrMalformedHeader   = errors.New("authorization header must be Bearer <token>")
	ErrInvalidToken      = errors.New("invalid token")
)

// LoginClaims 登录凭证的载荷，只携带用户 ID。
type LoginClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenSigner 使用进程级只读密钥签发与校验 HS256 凭证。
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner ttl <= 0 时签发的凭证不过期。
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenSigner) Issue(userID uint) (string, error) {
	now := s.now()
	claims := LoginClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   tokenIssuer,
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse 校验裸 token 字符串。
func (s *TokenSigner) Parse(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*LoginClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify 解析 Authorization 头，格式必须为 "Bearer <token>"。
func (s *TokenSigner) Verify(header string) (*LoginClaims, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, ErrMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return nil, ErrMalformedHeader
	}
	return s.Parse(strings.TrimSpace(parts[1]))
}
