package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

type userPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *userPayload `json:"user"`
}

func (c Client) Login(ctx context.Context, form domain.LoginForm) (ports.LoginResult, error) {
	status, data, err := c.do(ctx, http.MethodPost, LoginPath, "", form)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if !successful(status) {
		return ports.LoginResult{}, fmt.Errorf("login: %w", failure(status, data))
	}

	var payload loginResponse
	if err := json.Unmarshal(unwrapData(data), &payload); err != nil {
		return ports.LoginResult{}, fmt.Errorf("login: decode response: %w", err)
	}
	if strings.TrimSpace(payload.Token) == "" {
		return ports.LoginResult{}, errors.New("login: response missing token")
	}

	result := ports.LoginResult{Token: payload.Token}
	if payload.User != nil {
		result.User = &domain.Profile{DisplayName: payload.User.FullName, Email: payload.User.Email}
	}
	return result, nil
}

func (c Client) Register(ctx context.Context, form domain.RegisterForm) (domain.Profile, error) {
	status, data, err := c.do(ctx, http.MethodPost, RegisterPath, "", form)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("register: %w", err)
	}
	if !successful(status) {
		return domain.Profile{}, fmt.Errorf("register: %w", failure(status, data))
	}

	profile := domain.Profile{DisplayName: form.FullName, Email: form.Email}
	raw := unwrapData(data)
	if isNullJSON(raw) {
		return profile, nil
	}

	var user userPayload
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.Profile{}, fmt.Errorf("register: decode response: %w", err)
	}
	if user.FullName != "" {
		profile.DisplayName = user.FullName
	}
	if user.Email != "" {
		profile.Email = user.Email
	}
	return profile, nil
}
