package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sivajik34/aifastcommerce/internal/auth"
)

type LoginInput struct {
	Body struct {
		Username string `json:"username" minLength:"1" maxLength:"255" doc:"Operator username"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with operator credentials",
		Tags:        []string{"Auth"},
	}, func(_ context.Context, input *LoginInput) (*LoginOutput, error) {
		token, err := authSvc.Login(input.Body.Username, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid username or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = token
		return out, nil
	})
}
