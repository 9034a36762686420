package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.TokenIssuer = (*JWT)(nil)

const (
	typeAccess = "access"

	// RefreshTokenBytes is the entropy of an opaque refresh token.
	RefreshTokenBytes = 64
)

// Claims are the claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Active        bool      `json:"active"`
	Roles         []string  `json:"roles"`
	TokenType     string    `json:"typ"`
}

// Options configures the JWT issuer.
type Options struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// JWT issues HS256 access tokens and opaque refresh tokens.
type JWT struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

// NewJWT creates a new JWT issuer.
func NewJWT(opts Options, logger *logger.Logger) *JWT {
	return &JWT{
		secret:   []byte(opts.Secret),
		issuer:   opts.Issuer,
		audience: opts.Audience,
		ttl:      opts.TTL,
		logger:   logger,
		now:      time.Now,
	}
}

// IssueAccessToken signs an access token for the account and returns it with its expiry.
func (j *JWT) IssueAccessToken(account model.Account) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)

	var fullName string
	if account.FullName != nil {
		fullName = *account.FullName
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		UserID:        account.ID,
		Username:      account.Username,
		Email:         account.Email,
		FullName:      fullName,
		EmailVerified: account.EmailVerified,
		Active:        account.Active,
		Roles:         account.Roles,
		TokenType:     typeAccess,
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// IssueRefreshToken returns 64 random bytes encoded with standard base64.
func (j *JWT) IssueRefreshToken() (string, error) {
	buf := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// VerifyAccessToken checks signature, algorithm, issuer, audience and expiry.
// Failures are logged and reported as false.
func (j *JWT) VerifyAccessToken(tokenString string) (model.Principal, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		j.logger.Warn("Token issuer: access token rejected", "error", err)
		return model.Principal{}, false
	}
	if !token.Valid {
		j.logger.Warn("Token issuer: access token is invalid")
		return model.Principal{}, false
	}
	if claims.TokenType != typeAccess {
		j.logger.Warn("Token issuer: token type mismatch", "typ", claims.TokenType)
		return model.Principal{}, false
	}

	return model.Principal{
		AccountID:     claims.UserID,
		Username:      claims.Username,
		Email:         claims.Email,
		FullName:      claims.FullName,
		EmailVerified: claims.EmailVerified,
		Active:        claims.Active,
		Roles:         claims.Roles,
		AuthType:      model.AuthTypeBearer,
	}, true
}

// IsWellFormedRefreshToken reports whether value decodes to exactly RefreshTokenBytes bytes.
func (j *JWT) IsWellFormedRefreshToken(value string) bool {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return false
	}
	return len(raw) == RefreshTokenBytes
}
