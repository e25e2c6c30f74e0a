package telephony

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
	"github.com/veloxline/reception_backend/internal/middleware"
)

const (
	apiVersion = "2010-04-01"

	// searchPageSize caps how many candidates one inventory search returns.
	// The first result in provider order is always taken, so a small page is
	// enough.
	searchPageSize = 5
)

// Config carries the provider credentials and client behaviour knobs.
type Config struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	Timeout    time.Duration

	// CallbackBaseURL, when set, overrides the customer's site identifier as
	// the host for provider-side voice callbacks.
	CallbackBaseURL string
}

// Client wraps the telephony provider's REST API. One instance is shared
// process-wide; calls hold no mutable session state.
type Client struct {
	http            *resty.Client
	accountSID      string
	callbackBaseURL string
}

// NewClient builds a provisioning client against the provider API.
func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetTimeout(cfg.Timeout)

	return &Client{
		http:            httpClient,
		accountSID:      cfg.AccountSID,
		callbackBaseURL: cfg.CallbackBaseURL,
	}
}

// Ensure Client implements the provisioner port
var _ portsprov.TelephonyProvisioner = (*Client)(nil)

type subaccountResource struct {
	SID       string `json:"sid"`
	AuthToken string `json:"auth_token"`
	Status    string `json:"status"`
}

type availableNumbersPage struct {
	AvailablePhoneNumbers []struct {
		PhoneNumber  string `json:"phone_number"`
		FriendlyName string `json:"friendly_name"`
	} `json:"available_phone_numbers"`
}

type incomingNumberResource struct {
	SID         string `json:"sid"`
	PhoneNumber string `json:"phone_number"`
}

// CreateSubaccount creates an isolated provider-side scope named after the
// customer's display name.
func (c *Client) CreateSubaccount(ctx context.Context, friendlyName string) (*domain.Subaccount, error) {
	var sub subaccountResource
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"FriendlyName": friendlyName}).
		SetResult(&sub).
		Post(fmt.Sprintf("/%s/Accounts.json", apiVersion))
	if err != nil {
		return nil, fmt.Errorf("%w: create subaccount: %v", apperrors.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: create subaccount returned %d: %s", apperrors.ErrProviderUnavailable, resp.StatusCode(), resp.String())
	}

	return &domain.Subaccount{SID: sub.SID, AuthToken: sub.AuthToken}, nil
}

// ProvisionNumber searches for a local US number in the target locality,
// falling back to a nationwide search when the locality has no inventory, and
// purchases the first result under the given subaccount.
func (c *Client) ProvisionNumber(ctx context.Context, sub *domain.Subaccount, siteIdentifier, locality string) (*domain.ProvisionedNumber, error) {
	number, err := c.searchNumber(ctx, locality)
	if err != nil {
		return nil, err
	}
	if number == "" {
		// Nationwide fallback, issued exactly once.
		number, err = c.searchNumber(ctx, "")
		if err != nil {
			return nil, err
		}
	}
	if number == "" {
		return nil, apperrors.ErrNoInventory
	}

	return c.purchaseNumber(ctx, sub, siteIdentifier, number)
}

func (c *Client) searchNumber(ctx context.Context, locality string) (string, error) {
	params := map[string]string{"PageSize": strconv.Itoa(searchPageSize)}
	if locality != "" {
		params["AreaCode"] = locality
	}

	var page availableNumbersPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&page).
		Get(fmt.Sprintf("/%s/Accounts/%s/AvailablePhoneNumbers/US/Local.json", apiVersion, c.accountSID))
	if err != nil {
		return "", fmt.Errorf("%w: number search: %v", apperrors.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: number search returned %d: %s", apperrors.ErrProviderUnavailable, resp.StatusCode(), resp.String())
	}

	if len(page.AvailablePhoneNumbers) == 0 {
		return "", nil
	}
	// First result in provider-returned order; no scoring among matches.
	return page.AvailablePhoneNumbers[0].PhoneNumber, nil
}

func (c *Client) purchaseNumber(ctx context.Context, sub *domain.Subaccount, siteIdentifier, number string) (*domain.ProvisionedNumber, error) {
	callbackBase := c.callbackBaseURL
	if callbackBase == "" {
		callbackBase = siteIdentifier
	}

	var purchased incomingNumberResource
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(sub.SID, sub.AuthToken).
		SetFormData(map[string]string{
			"PhoneNumber": number,
			"VoiceUrl":    callbackBase + "/voice/incoming",
			"SmsUrl":      callbackBase + "/sms/incoming",
		}).
		SetResult(&purchased).
		Post(fmt.Sprintf("/%s/Accounts/%s/IncomingPhoneNumbers.json", apiVersion, sub.SID))
	if err != nil {
		return nil, fmt.Errorf("%w: number purchase: %v", apperrors.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: number purchase returned %d: %s", apperrors.ErrProviderUnavailable, resp.StatusCode(), resp.String())
	}

	return &domain.ProvisionedNumber{Number: purchased.PhoneNumber, SID: purchased.SID}, nil
}

// CloseSubaccount deactivates a subaccount. Callers treat this as
// best-effort cleanup; the returned error is logged, never propagated.
func (c *Client) CloseSubaccount(ctx context.Context, subaccountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"Status": "closed"}).
		Post(fmt.Sprintf("/%s/Accounts/%s.json", apiVersion, subaccountID))
	if err != nil {
		return fmt.Errorf("close subaccount %s: %w", subaccountID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("close subaccount %s returned %d: %s", subaccountID, resp.StatusCode(), resp.String())
	}

	logger.Info("Telephony subaccount closed", slog.String("subaccount_id", subaccountID))
	return nil
}
