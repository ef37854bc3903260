package v1_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/sivajik34/aifastcommerce/internal/api/v1"
	"github.com/sivajik34/aifastcommerce/internal/auth"
)

// ---------------------------------------------------------------------------
// POST /auth/login
// ---------------------------------------------------------------------------

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(username, password string) (string, error) {
				assert.Equal(t, "admin", username)
				assert.Equal(t, "secretpw1", password)
				return "access-tok", nil
			},
		}

		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "admin",
			"password": "secretpw1",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "access-tok", body.AccessToken)
	})

	t.Run("invalid_credentials", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(_, _ string) (string, error) {
				return "", fmt.Errorf("auth.Service.Login: %w", auth.ErrInvalidCredentials)
			},
		}

		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "admin",
			"password": "wrong-pw",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("token_issuance_failure", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(_, _ string) (string, error) {
				return "", errors.New("auth.IssueAccessToken: signing failed")
			},
		}

		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "admin",
			"password": "secretpw1",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
