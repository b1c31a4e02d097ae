package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := env.do(http.MethodPost, "/admin-login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, "")
	requireStatus(t, rec, http.StatusOK)
	return env.mailer.lastCode(t)
}

func TestAdminLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	code := login(t, env)
	require.Len(t, code, 6)

	rec := env.do(http.MethodPost, "/verify-admin-login", map[string]string{
		"email": testAdminEmail,
		"code":  code,
	}, "")
	requireStatus(t, rec, http.StatusOK)
	resp := decode[loginResponse](t, rec)
	assert.Equal(t, testAdminEmail, resp.Admin.Email)
	require.NotEmpty(t, resp.Token)

	// The issued token opens the admin routes.
	rec = env.do(http.MethodGet, "/admin-credentials", nil, resp.Token)
	requireStatus(t, rec, http.StatusOK)
	creds := decode[map[string]any](t, rec)
	assert.Equal(t, testAdminEmail, creds["email"])
	assert.Equal(t, true, creds["emailPasswordSet"])
	assert.NotContains(t, creds, "password")
	assert.NotContains(t, creds, "emailPassword")

	// The code is single use.
	rec = env.do(http.MethodPost, "/verify-admin-login", map[string]string{
		"email": testAdminEmail,
		"code":  code,
	}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "No verification code found. Please request a new code.", decode[ErrorResponse](t, rec).Error)
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/admin-login", map[string]string{
		"email":    "a@b.com",
		"password": "whatever",
	}, "")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Invalid email or password", decode[ErrorResponse](t, rec).Error)
}

func TestVerifyAdminLoginExpired(t *testing.T) {
	env := newTestEnv(t)
	code := login(t, env)

	env.clock.Advance(5*time.Minute + time.Second)
	rec := env.do(http.MethodPost, "/verify-admin-login", map[string]string{
		"email": testAdminEmail,
		"code":  code,
	}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Verification code has expired. Please request a new code.", decode[ErrorResponse](t, rec).Error)
}

func TestVerifyAdminLoginWrongCode(t *testing.T) {
	env := newTestEnv(t)
	code := login(t, env)

	wrong := "111111"
	if code == wrong {
		wrong = "222222"
	}
	rec := env.do(http.MethodPost, "/verify-admin-login", map[string]string{
		"email": testAdminEmail,
		"code":  wrong,
	}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Invalid verification code", decode[ErrorResponse](t, rec).Error)

	// The pending code survives a wrong guess.
	rec = env.do(http.MethodPost, "/verify-admin-login", map[string]string{
		"email": testAdminEmail,
		"code":  code,
	}, "")
	requireStatus(t, rec, http.StatusOK)
}

func TestAdminEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/admin-email", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, testAdminEmail, decode[adminSummary](t, rec).Email)
}

func TestAdminCredentialsRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/admin-credentials", nil, "")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Missing access token", decode[ErrorResponse](t, rec).Error)
}

func TestUpdateAdminCredentialsFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken()
	ctx := context.Background()
	require.NoError(t, env.db.AdminDetailsRepo().Add(ctx, &models.AdminDetails{
		Address: "1 Main St", Email: testAdminEmail, Phone: "555",
	}))

	// Whatever email the body names, the code goes to the stored admin address.
	rec := env.do(http.MethodPost, "/send-update-verification", map[string]string{"email": "attacker@example.com"}, token)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, []string{testAdminEmail}, env.mailer.sent[len(env.mailer.sent)-1].To)
	code := env.mailer.lastCode(t)

	rec = env.do(http.MethodPost, "/update-admin-credentials", map[string]string{
		"email":            testAdminEmail,
		"verificationCode": code,
		"newEmail":         "new@example.com",
		"newEmailPassword": "new-app-password",
		"newPassword":      "new password",
	}, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Admin credentials updated successfully", decode[messageResponse](t, rec).Message)

	rec = env.do(http.MethodGet, "/admin-email", nil, "")
	assert.Equal(t, "new@example.com", decode[adminSummary](t, rec).Email)

	rec = env.do(http.MethodGet, "/admin-details", nil, "")
	assert.Equal(t, "new@example.com", decode[models.AdminDetails](t, rec).Email)

	creds, err := env.db.AdminCredentialsRepo().First(ctx)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(creds.PasswordHash, "new password"))
}

func TestUpdateAdminCredentialsBadCodeChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken()
	ctx := context.Background()
	require.NoError(t, env.db.AdminDetailsRepo().Add(ctx, &models.AdminDetails{
		Address: "1 Main St", Email: testAdminEmail, Phone: "555",
	}))

	rec := env.do(http.MethodPost, "/send-update-verification", nil, token)
	requireStatus(t, rec, http.StatusOK)
	code := env.mailer.lastCode(t)
	wrong := "111111"
	if code == wrong {
		wrong = "222222"
	}

	body := map[string]string{
		"email":            testAdminEmail,
		"verificationCode": wrong,
		"newEmail":         "new@example.com",
		"newEmailPassword": "x",
		"newPassword":      "y",
	}
	rec = env.do(http.MethodPost, "/update-admin-credentials", body, token)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Invalid verification code", decode[ErrorResponse](t, rec).Error)

	env.clock.Advance(6 * time.Minute)
	body["verificationCode"] = code
	rec = env.do(http.MethodPost, "/update-admin-credentials", body, token)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Verification code has expired. Please request a new code.", decode[ErrorResponse](t, rec).Error)

	creds, err := env.db.AdminCredentialsRepo().First(ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, creds.Email)
	assert.True(t, auth.CheckPassword(creds.PasswordHash, testAdminPassword))

	details, err := env.db.AdminDetailsRepo().First(ctx)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, details.Email)
}
