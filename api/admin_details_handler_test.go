package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDetailsInsertWhenEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/admin-details", nil, "")
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Admin details not found", decode[ErrorResponse](t, rec).Error)

	rec = env.do(http.MethodPut, "/admin-details", map[string]string{
		"address": "X",
		"email":   "y@z",
		"phone":   "1",
	}, env.adminToken())
	requireStatus(t, rec, http.StatusOK)
	stored := decode[models.AdminDetails](t, rec)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.Equal(t, "X", stored.Address)
	assert.Equal(t, "y@z", stored.Email)
	assert.Equal(t, "1", stored.Phone)

	rec = env.do(http.MethodGet, "/admin-details", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, stored, decode[models.AdminDetails](t, rec))
}

func TestAdminDetailsUpdateInPlace(t *testing.T) {
	env := newTestEnv(t)
	existing := &models.AdminDetails{Address: "Old", Email: "old@example.com", Phone: "0"}
	require.NoError(t, env.db.AdminDetailsRepo().Add(context.Background(), existing))

	rec := env.do(http.MethodPut, "/admin-details", map[string]string{
		"address": "New",
		"email":   "new@example.com",
		"phone":   "2",
	}, env.adminToken())
	requireStatus(t, rec, http.StatusOK)
	stored := decode[models.AdminDetails](t, rec)
	assert.Equal(t, existing.ID, stored.ID)
	assert.Equal(t, "New", stored.Address)
}

func TestAdminDetailsValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/admin-details", map[string]string{"address": "X", "email": "y@z"}, env.adminToken())
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "phone", decode[ErrorResponse](t, rec).Field)

	rec = env.do(http.MethodPut, "/admin-details", map[string]string{"address": "X", "email": "y@z", "phone": "1"}, "")
	requireStatus(t, rec, http.StatusUnauthorized)
}
