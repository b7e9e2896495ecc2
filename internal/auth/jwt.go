package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims é o formato do token emitido pelo serviço de login (fora deste backend).
type Claims struct {
	UserID      string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func (c *Claims) HasPermission(perm string) bool {
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// GenerateToken assina um token HS256 com validade ttl. Usado por ferramentas
// internas e pelos testes; este backend não expõe endpoint de login.
func GenerateToken(secret string, userID, name string, permissions []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      userID,
		Name:        name,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
