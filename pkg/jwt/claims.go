package jwt

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin may call the cache and run log endpoints
const RoleAdmin = "admin"

// Claims represents JWT custom claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
