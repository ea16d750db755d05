package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
)

func TestUploadsRequireAuthentication(t *testing.T) {
	config.LoadConfig()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "submission.pdf"), []byte("report"), 0o644))

	app := fiber.New()
	app.Use("/uploads", JWTMiddleware)
	app.Static("/uploads", dir)

	req := httptest.NewRequest(http.MethodGet, "/uploads/submission.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := GenerateJWT(1, "Stu", "stu", "USER", "stu@example.com")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/uploads/submission.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
