package service

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "remplr/pkg/errors"
)

// RoleFlags обязан явно указать каждый, кто выпускает токен.
type RoleFlags struct {
	IsAdmin        bool
	IsNutritionist bool
	IsClient       bool
}

// TokenSubject - вход GenerateToken. Roles == nil - ошибка вызывающего.
type TokenSubject struct {
	Username string
	Roles    *RoleFlags
}

// Claims - проверенная личность, привязанная к запросу. Создаётся только
// в ValidateToken.
type Claims struct {
	Username       string `json:"username"`
	IsAdmin        bool   `json:"isAdmin"`
	IsNutritionist bool   `json:"isNutritionist"`
	IsClient       bool   `json:"isClient"`
	jwt.RegisteredClaims
}

func (c *Claims) Roles() RoleFlags {
	return RoleFlags{IsAdmin: c.IsAdmin, IsNutritionist: c.IsNutritionist, IsClient: c.IsClient}
}

func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

type JWTService interface {
	GenerateToken(subject TokenSubject) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type jwtService struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, tokenTTL time.Duration) (JWTService, error) {
	if secretKey == "" {
		return nil, apperrors.NewContractViolation("jwt secret key is empty")
	}
	return &jwtService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}, nil
}

func (s *jwtService) GenerateToken(subject TokenSubject) (string, error) {
	if subject.Username == "" {
		return "", apperrors.NewContractViolation("GenerateToken passed a subject without username")
	}
	if subject.Roles == nil {
		return "", apperrors.NewContractViolation("GenerateToken passed user %q without isAdmin, isNutritionist and isClient flags", subject.Username)
	}

	now := s.now()
	claims := &Claims{
		Username:       subject.Username,
		IsAdmin:        subject.Roles.IsAdmin,
		IsNutritionist: subject.Roles.IsNutritionist,
		IsClient:       subject.Roles.IsClient,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.NewAuthenticationError(apperrors.AuthExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, apperrors.NewAuthenticationError(apperrors.AuthSignatureInvalid, err)
		default:
			return nil, apperrors.NewAuthenticationError(apperrors.AuthMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewAuthenticationError(apperrors.AuthMalformed, nil)
	}
	if claims.Username == "" {
		return nil, apperrors.NewAuthenticationError(apperrors.AuthMalformed, errors.New("token has no username"))
	}

	return claims, nil
}
