package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad del actor.
// IsAdmin viaja en el token para que el middleware decida sin consultar la DB;
// los casos de uso vuelven a aplicar las reglas de admin del libro.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Generate genera un token JWT firmado (HS256) con sub=userID, name e is_admin.
func Generate(secret, userID, name string, isAdmin bool, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Name:    name,
		IsAdmin: isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, name e isAdmin.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae sub.
func Parse(secret, tokenString string) (userID, name string, isAdmin bool, err error) {
	if secret == "" {
		return "", "", false, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", false, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", false, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return "", "", false, fmt.Errorf("token sin sub")
	}
	return claims.Subject, claims.Name, claims.IsAdmin, nil
}
