package service

import (
	"testing"

	"dronedesk"
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupTestUser(t *testing.T, email string) {
	dronedesk.DB.Unscoped().Where("email = ?", email).Delete(&models.User{})
}

func TestUser_Register(t *testing.T) {
	setupTestDB(t)

	service := NewUserService()
	email := uniqueEmail()
	defer cleanupTestUser(t, email)

	auth, err := service.Register(request.RegisterDTO{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Avery",
		LastName:  "Admin",
		Role:      "admin",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, auth.Token)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, email, auth.User.Email)
	assert.Equal(t, models.RoleAdmin, auth.User.Role)
}

func TestUser_Register_UnknownRoleDefaultsToClient(t *testing.T) {
	setupTestDB(t)

	service := NewUserService()
	email := uniqueEmail()
	defer cleanupTestUser(t, email)

	auth, err := service.Register(request.RegisterDTO{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Casey",
		LastName:  "Customer",
		Role:      "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, auth.User.Role)
}

func TestUser_Login(t *testing.T) {
	setupTestDB(t)

	service := NewUserService()
	email := uniqueEmail()
	defer cleanupTestUser(t, email)

	_, err := service.Register(request.RegisterDTO{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Avery",
		LastName:  "Admin",
	})
	require.NoError(t, err)

	auth, err := service.Login(request.LoginDTO{Email: email, Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)

	_, err = service.Login(request.LoginDTO{Email: email, Password: "wrong"})
	require.Error(t, err)
}

func TestUser_RefreshToken(t *testing.T) {
	setupTestDB(t)

	service := NewUserService()
	email := uniqueEmail()
	defer cleanupTestUser(t, email)

	auth, err := service.Register(request.RegisterDTO{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Avery",
		LastName:  "Admin",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(auth.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)

	_, err = service.RefreshToken("not-a-token")
	require.Error(t, err)
}
