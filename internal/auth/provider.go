package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/pkg/errors"
)

// Коды ошибок внешнего SSO API.
const (
	ssoCodeTokenInvalid      = 10
	ssoCodeTokenExpired      = 11
	ssoCodeTokenNotFound     = 20
	ssoCodeInsufficientScope = 33
	ssoCodeUserDeactivated   = 100
)

const defaultSSOTimeout = 5 * time.Second

// TokenInfo результат успешной проверки токена в SSO.
type TokenInfo struct {
	ExternalUserID uint
	Scope          string
}

// TokenVerifier проверяет access token во внешнем SSO.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*TokenInfo, error)
}

// SSOProvider клиент SSO API. Вся авторизация делегирована наружу,
// локально пользователи только отображаются на внутренние id.
type SSOProvider struct {
	baseURL string
	client  *http.Client
}

func NewSSOProvider(baseURL string) *SSOProvider {
	return &SSOProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultSSOTimeout},
	}
}

type ssoResponse struct {
	Success *struct {
		User *struct {
			ID uint `json:"id"`
		} `json:"user"`
		UserID uint   `json:"user_id"`
		Scope  string `json:"scope"`
	} `json:"success"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// VerifyToken дергает GET <baseURL>/tokens/check и переводит коды ошибок
// SSO в ошибки приложения. Сетевые сбои и невалидные ответы считаются
// недоступностью внешнего сервиса.
func (p *SSOProvider) VerifyToken(ctx context.Context, token string) (*TokenInfo, error) {
	endpoint := fmt.Sprintf("%s/tokens/check?%s", p.baseURL, url.Values{
		"access_token":   {token},
		"required_scope": {string(RequiredScope)},
	}.Encode())

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "sso: build request")
	}

	resp, doErr := p.client.Do(req)
	if doErr != nil {
		return nil, apperrs.Upstream("Failed to check your authorization token!")
	}
	defer resp.Body.Close()

	var body ssoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrs.Upstream("Failed to check your authorization token!")
	}

	if body.Error != nil {
		return nil, mapSSOError(body.Error.Code)
	}
	if body.Success == nil {
		return nil, apperrs.Upstream("Failed to check your authorization token!")
	}

	externalID := body.Success.UserID
	if externalID == 0 && body.Success.User != nil {
		externalID = body.Success.User.ID
	}
	if externalID == 0 {
		return nil, apperrs.Upstream("Failed to check your authorization token!")
	}

	return &TokenInfo{
		ExternalUserID: externalID,
		Scope:          body.Success.Scope,
	}, nil
}

func mapSSOError(code int) error {
	switch code {
	case ssoCodeTokenInvalid, ssoCodeTokenNotFound:
		return apperrs.AuthInvalid("Auth token is invalid!")
	case ssoCodeTokenExpired:
		return apperrs.AuthExpired("Auth token is expired!")
	case ssoCodeInsufficientScope:
		return apperrs.AuthInsufficient("Auth token does not have required scope!")
	case ssoCodeUserDeactivated:
		return apperrs.UserDeactivated("User is deactivated!")
	default:
		return apperrs.Upstream("Failed to check your authorization token!")
	}
}
