package handler_test

import (
	"net/http"
	"testing"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r, db := setupTest(t)

	body := register(t, r, "alice", "")
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["refreshToken"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "member", user["role"])
	assert.NotContains(t, user, "password")

	// stored credential is a hash, never the plaintext
	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, util.CheckPassword("secret123", stored.PasswordHash))
}

func TestRegisterMissingFields(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["fields"])
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "carol", "")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Carol Again",
		"username": "carol",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username or email already exists", decode(t, w)["message"])
}

func TestLogin(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "dave", "")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "dave",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["refreshToken"])
	user := body["user"].(map[string]interface{})
	assert.NotNil(t, user["lastLogin"])
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupTest(t)
	register(t, r, "erin", "")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "erin",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid credentials", body["message"])
	assert.NotContains(t, body, "accessToken")
}

func TestLoginUnknownUser(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginDeactivated(t *testing.T) {
	r, db := setupTest(t)
	register(t, r, "frank", "")
	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "frank").
		Update("is_active", false).Error)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "frank",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRefresh(t *testing.T) {
	r, _ := setupTest(t)
	body := register(t, r, "grace", "")
	refreshToken := body["refreshToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["accessToken"])
}

func TestRefreshSuperseded(t *testing.T) {
	r, _ := setupTest(t)
	body := register(t, r, "heidi", "")
	oldRefresh := body["refreshToken"].(string)

	// a new login overwrites the stored refresh token
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "heidi",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refreshToken": oldRefresh,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshGarbage(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refreshToken": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsRefreshToken(t *testing.T) {
	r, db := setupTest(t)
	body := register(t, r, "ivan", "")
	token := body["accessToken"].(string)
	refreshToken := body["refreshToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.Where("username = ?", "ivan").First(&user).Error)
	assert.Empty(t, user.RefreshToken)

	// the cleared refresh token no longer works
	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "tester", user["username"])
}

func TestUpdatePassword(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/auth/password", token, gin.H{
		"currentPassword": "secret123",
		"newPassword":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// old password is gone, new one works
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "tester",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "tester",
		"password": "brand-new-pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	r, _ := setupTest(t)
	token := authToken(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/auth/password", token, gin.H{
		"currentPassword": "not-my-password",
		"newPassword":     "brand-new-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Current password is incorrect", decode(t, w)["message"])
}
