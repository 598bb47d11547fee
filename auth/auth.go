// Package auth ist die Grenzschicht für Sessions: JWT-Ausgabe und
// -Prüfung plus Passwort-Hashing. Der Kern interessiert sich nur für den
// aufgelösten Benutzer im Request-Kontext.
package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sciflow/config"
	"sciflow/models"
)

const contextUserKey = "auth.user"

// HashPassword hasht ein Klartext-Passwort mit bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword prüft ein Klartext-Passwort gegen den gespeicherten Hash.
func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// GenerateToken stellt ein Bearer-Token für den Benutzer aus.
func GenerateToken(cfg *config.Config, userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseToken validiert das Token und gibt die Benutzer-ID zurück.
func parseToken(cfg *config.Config, tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, errors.New("missing subject claim")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Middleware löst den Bearer-Token zum Benutzer auf und legt ihn in den
// Kontext. Mit required=false laufen Requests ohne (oder mit ungültigem)
// Token einfach anonym weiter; der Listing-Pfad braucht das für die
// personalisierten Statistiken eingeloggter Betrachter.
func Middleware(cfg *config.Config, db *gorm.DB, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
				return
			}
			c.Next()
			return
		}

		userID, err := parseToken(cfg, tokenString)
		if err == nil {
			var user models.User
			if dbErr := db.First(&user, userID).Error; dbErr == nil {
				c.Set(contextUserKey, &user)
				c.Next()
				return
			}
		}

		if required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}
		c.Next()
	}
}

// CurrentUser liest den aufgelösten Benutzer aus dem Kontext; nil wenn der
// Request anonym ist.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
