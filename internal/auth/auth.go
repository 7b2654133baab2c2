package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator validates the bearer tokens issued by the external auth
// provider. Token issuance and refresh live outside this service.
type Authenticator interface {
	GenerateToken(userID string, role string) (string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
}
