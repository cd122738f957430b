package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expenseshare/internal/client/api"
	"github.com/dmitrijs2005/expenseshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expenseshare/internal/client/services"
	"github.com/dmitrijs2005/expenseshare/internal/client/tokenstore"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/config"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/otp"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/users"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

const testCode = "2468"

func newTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	if mutate != nil {
		mutate(cfg)
	}

	log := logging.NewDiscardLogger()
	codes := otp.NewStore(cfg.OTPLength, cfg.OTPValidity, cfg.OTPMaxAttempts,
		otp.WithGenerator(func(int) (string, error) { return testCode, nil }))
	us := users.NewService(users.NewMemoryRepository(), codes, cfg, log)

	srv := httptest.NewServer(NewServer(cfg.Address, cfg.BasePath, us, log).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestSendOTP(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := post(t, srv.URL+"/api/auth/send-otp", `{"phone":"+919876543210"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "token")

	resp, body = post(t, srv.URL+"/api/auth/send-otp", `{"phone":"98765"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid phone number", body["message"])

	resp, _ = post(t, srv.URL+"/api/auth/send-otp", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyOTP(t *testing.T) {
	srv := newTestServer(t, nil)

	post(t, srv.URL+"/api/auth/send-otp", `{"phone":"+919876543210"}`)

	resp, body := post(t, srv.URL+"/api/auth/verify-otp", `{"phone":"+919876543210","code":"0000"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid OTP", body["message"])

	resp, body = post(t, srv.URL+"/api/auth/verify-otp", `{"phone":"+919876543210","code":"`+testCode+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "+919876543210", user["phoneNumber"])
}

func TestFamilyMembersRequiresToken(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/family/members")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/family/members", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/auth/send-otp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/auth/verify-otp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/family/members", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "method check comes before the token check")
}

// The client's auth and group services against this backend.
func TestClientContract(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()
	log := logging.NewDiscardLogger()

	store := tokenstore.New(metadata.NewMemoryRepository(), log)
	client := api.New(srv.URL+"/api", api.WithTokenSource(store), api.WithTimeout(5*time.Second))
	authSvc := services.NewAuthService(client, store, "+91", log)
	groups := services.NewGroupService(client)

	unauthorized := 0
	client.SetUnauthorizedHandler(func(context.Context) { unauthorized++ })

	_, err := groups.FamilyMembers(ctx)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 1, unauthorized)

	resp, err := authSvc.RequestCode(ctx, "9876543210")
	require.NoError(t, err)
	assert.False(t, resp.HasToken())

	_, err = authSvc.VerifyCode(ctx, "9876543210", "1111")
	assert.Equal(t, "Invalid OTP", api.Message(err, ""))
	_, ok := store.Token(ctx)
	assert.False(t, ok)

	resp, err = authSvc.VerifyCode(ctx, "9876543210", testCode)
	require.NoError(t, err)
	require.True(t, resp.HasToken())

	tok, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, resp.Token, tok)
	p, err := store.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.Settings)
	assert.Equal(t, "en", p.Settings.Language)

	members, err := groups.FamilyMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
	assert.Equal(t, 1, unauthorized)
}

func TestClientContract_TokenOnSend(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.IssueTokenOnSend = true })
	ctx := context.Background()
	log := logging.NewDiscardLogger()

	store := tokenstore.New(metadata.NewMemoryRepository(), log)
	client := api.New(srv.URL+"/api", api.WithTokenSource(store))
	authSvc := services.NewAuthService(client, store, "+91", log)

	resp, err := authSvc.RequestCode(ctx, "9876543210")
	require.NoError(t, err)
	require.True(t, resp.HasToken())

	tok, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, resp.Token, tok)
}
