package model

import "time"

// TokenIssuer mints and verifies access tokens and mints opaque refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(account Account) (token string, expiresAt time.Time, err error)
	IssueRefreshToken() (string, error)
	VerifyAccessToken(token string) (Principal, bool)
	IsWellFormedRefreshToken(value string) bool
}

// TokenPair is the result of a successful registration, login or refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         Profile   `json:"user"`
}
