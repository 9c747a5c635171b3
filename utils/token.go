package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"bootcamper/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", ""))
}

// SignToken issues the session token for a user id. Expiry comes from
// JWT_EXPIRE in hours.
func SignToken(userID string) (string, error) {
	expire := time.Duration(config.GetEnvInt("JWT_EXPIRE", 24)) * time.Hour

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies signature and expiry and returns the subject user id.
func ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	return claims.Subject, nil
}

// SetTokenCookie delivers the session token as a http-only cookie alongside
// the JSON body. Secure is only set outside development.
func SetTokenCookie(c *gin.Context, token string) {
	days := config.GetEnvInt("COOKIE_EXPIRE_DAYS", 1)
	secure := config.GetEnv("APP_ENV", "development") == "production"
	c.SetCookie("token", token, days*24*60*60, "/", "", secure, true)
}

func ClearTokenCookie(c *gin.Context) {
	secure := config.GetEnv("APP_ENV", "development") == "production"
	c.SetCookie("token", "none", -1, "/", "", secure, true)
}

// NewResetToken returns the plain reset token sent to the user and the
// sha256 digest stored in their record. Only the digest ever touches the
// database.
func NewResetToken() (plain string, hashed string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
