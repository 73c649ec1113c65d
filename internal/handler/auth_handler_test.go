package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/planner-api/internal/dto"
	"github.com/nvalente/planner-api/internal/middleware"
	"github.com/nvalente/planner-api/internal/models"
)

func TestAuthHandlerSignupThenLogin(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.auth)

	c, w := jsonRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Email:    "amina@example.com",
		Password: "secret",
		Courses:  []string{"Math", "Physics"},
	})
	handler.Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var signup dto.AuthResponse
	decodeData(t, w, &signup)
	assert.NotEmpty(t, signup.AccessToken)
	assert.Equal(t, []string{"Math", "Physics", "Course 3"}, signup.Student.Courses)

	c, w = jsonRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "amina@example.com",
		Password: "secret",
	})
	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlerSecondSignupConflicts(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.auth)

	c, w := jsonRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Email:    "amina@example.com",
		Password: "secret",
	})
	handler.Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = jsonRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Email:    "other@example.com",
		Password: "secret",
	})
	handler.Signup(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.auth)

	c, w := jsonRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Email:    "amina@example.com",
		Password: "secret",
	})
	handler.Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = jsonRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "amina@example.com",
		Password: "wrong",
	})
	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMeWithoutClaims(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.auth)

	c, w := jsonRequest(t, http.MethodGet, "/auth/me", nil)
	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMeWithClaims(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.auth)

	c, w := jsonRequest(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Email:    "amina@example.com",
		Password: "secret",
	})
	handler.Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = jsonRequest(t, http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "amina@example.com"})
	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.StudentResponse
	decodeData(t, w, &me)
	assert.Equal(t, "amina@example.com", me.Email)
}
