package telephony

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		AccountSID: "AC000",
		AuthToken:  "master-secret",
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestCreateSubaccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC000", user)
		assert.Equal(t, "master-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Test Biz", r.PostForm.Get("FriendlyName"))

		writeJSON(t, w, map[string]string{
			"sid":        "SA123",
			"auth_token": "sub-secret",
			"status":     "active",
		})
	})

	sub, err := client.CreateSubaccount(context.Background(), "Test Biz")

	require.NoError(t, err)
	assert.Equal(t, "SA123", sub.SID)
	assert.Equal(t, "sub-secret", sub.AuthToken)
}

func TestCreateSubaccount_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"upstream down"}`, http.StatusBadGateway)
	})

	_, err := client.CreateSubaccount(context.Background(), "Test Biz")

	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestProvisionNumber_LocalityMatch(t *testing.T) {
	sub := &domain.Subaccount{SID: "SA123", AuthToken: "sub-secret"}
	var searches []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2010-04-01/Accounts/AC000/AvailablePhoneNumbers/US/Local.json":
			searches = append(searches, r.URL.Query().Get("AreaCode"))
			assert.Equal(t, "5", r.URL.Query().Get("PageSize"))
			writeJSON(t, w, map[string]any{
				"available_phone_numbers": []map[string]string{
					{"phone_number": "+13055550111"},
					{"phone_number": "+13055550222"},
				},
			})
		case "/2010-04-01/Accounts/SA123/IncomingPhoneNumbers.json":
			// Purchases run under the subaccount's own credentials
			user, pass, _ := r.BasicAuth()
			assert.Equal(t, "SA123", user)
			assert.Equal(t, "sub-secret", pass)

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "+13055550111", r.PostForm.Get("PhoneNumber"))
			assert.Equal(t, "https://test.biz/voice/incoming", r.PostForm.Get("VoiceUrl"))
			assert.Equal(t, "https://test.biz/sms/incoming", r.PostForm.Get("SmsUrl"))

			writeJSON(t, w, map[string]string{
				"sid":          "PN1",
				"phone_number": "+13055550111",
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	number, err := client.ProvisionNumber(context.Background(), sub, "https://test.biz", "305")

	require.NoError(t, err)
	// First search result wins; no nationwide fallback needed
	assert.Equal(t, "+13055550111", number.Number)
	assert.Equal(t, "PN1", number.SID)
	assert.Equal(t, []string{"305"}, searches)
}

func TestProvisionNumber_NationwideFallback(t *testing.T) {
	sub := &domain.Subaccount{SID: "SA123", AuthToken: "sub-secret"}
	var searches []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2010-04-01/Accounts/AC000/AvailablePhoneNumbers/US/Local.json":
			area := r.URL.Query().Get("AreaCode")
			searches = append(searches, area)
			if area != "" {
				// Requested locality is exhausted
				writeJSON(t, w, map[string]any{"available_phone_numbers": []any{}})
				return
			}
			writeJSON(t, w, map[string]any{
				"available_phone_numbers": []map[string]string{
					{"phone_number": "+19175550333"},
				},
			})
		case "/2010-04-01/Accounts/SA123/IncomingPhoneNumbers.json":
			writeJSON(t, w, map[string]string{
				"sid":          "PN2",
				"phone_number": "+19175550333",
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	number, err := client.ProvisionNumber(context.Background(), sub, "https://test.biz", "305")

	require.NoError(t, err)
	assert.Equal(t, "+19175550333", number.Number)
	// Exactly one locality search and one unrestricted fallback
	assert.Equal(t, []string{"305", ""}, searches)
}

func TestProvisionNumber_NoInventoryAnywhere(t *testing.T) {
	sub := &domain.Subaccount{SID: "SA123", AuthToken: "sub-secret"}
	searchCount := 0

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		searchCount++
		writeJSON(t, w, map[string]any{"available_phone_numbers": []any{}})
	})

	_, err := client.ProvisionNumber(context.Background(), sub, "https://test.biz", "305")

	assert.ErrorIs(t, err, apperrors.ErrNoInventory)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Equal(t, 2, searchCount)
}

func TestCloseSubaccount(t *testing.T) {
	closed := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		closed++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/SA123.json", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "closed", r.PostForm.Get("Status"))

		writeJSON(t, w, map[string]string{"sid": "SA123", "status": "closed"})
	})

	err := client.CloseSubaccount(context.Background(), "SA123")

	assert.NoError(t, err)
	assert.Equal(t, 1, closed)
}

func TestCloseSubaccount_Error(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	})

	err := client.CloseSubaccount(context.Background(), "SA404")

	assert.Error(t, err)
}
