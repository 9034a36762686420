package model

// Hasher produces and checks one-way digests of secrets.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}
