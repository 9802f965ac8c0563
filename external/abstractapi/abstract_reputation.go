package abstractapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://emailreputation.abstractapi.com/v1/"

// AbstractReputationValidator rejects disposable, role and low reputation
// addresses at registration.
type AbstractReputationValidator struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewAbstractReputationValidator(apiKey string) (*AbstractReputationValidator, error) {
	if apiKey == "" {
		return nil, errors.New("abstract api key not set")
	}

	return &AbstractReputationValidator{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: defaultBaseURL,
	}, nil
}

type reputationResponse struct {
	EmailReputation string `json:"email_reputation"` // LOW, MEDIUM, HIGH
	IsDisposable    bool   `json:"is_disposable_email"`
	IsRoleEmail     bool   `json:"is_role_email"`
}

func (v *AbstractReputationValidator) Validate(
	ctx context.Context,
	email string,
) error {
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return errors.Wrap(err, "parse reputation url")
	}
	q := u.Query()
	q.Set("api_key", v.apiKey)
	q.Set("email", email)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "email reputation request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("email reputation service error: %s", resp.Status)
	}

	var out reputationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errors.Wrap(err, "decode reputation response")
	}

	switch {
	case out.IsDisposable:
		return model.Invalid("disposable email is not allowed")
	case out.IsRoleEmail:
		return model.Invalid("role-based email is not allowed")
	case out.EmailReputation == "LOW":
		return model.Invalid("email reputation is too low")
	}
	return nil
}
