package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sciflow/config"
	"sciflow/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.True(t, VerifyPassword("s3cret", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))
}

func TestTokenRoundtrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateToken(cfg, 42)
	require.NoError(t, err)

	userID, err := parseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(testConfig(), 42)
	require.NoError(t, err)

	other := &config.Config{JWTSecret: "other-secret", TokenTTL: time.Hour}
	_, err = parseToken(other, token)
	assert.Error(t, err)
}

func TestTokenExpiryRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: -time.Minute}
	token, err := GenerateToken(cfg, 42)
	require.NoError(t, err)

	_, err = parseToken(cfg, token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	db := newTestDB(t)

	user := models.User{Email: "alice@example.com", HashedPassword: "x", FullName: "Alice"}
	require.NoError(t, db.Create(&user).Error)
	token, err := GenerateToken(cfg, user.ID)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/required", Middleware(cfg, db, true), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	router.GET("/optional", Middleware(cfg, db, false), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	})

	do := func(path, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("/required", "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, do("/required", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/required", "Bearer invalid").Code)

	// Optionale Auth: ungültige oder fehlende Tokens laufen anonym weiter.
	assert.Equal(t, http.StatusOK, do("/optional", "").Code)
	assert.Equal(t, http.StatusOK, do("/optional", "Bearer invalid").Code)
	assert.Equal(t, http.StatusOK, do("/optional", "Bearer "+token).Code)
}

func TestMiddlewareUnknownUserRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	db := newTestDB(t)

	// Gültiges Token, aber der Benutzer existiert nicht (mehr).
	token, err := GenerateToken(cfg, 999)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/required", Middleware(cfg, db, true), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
