//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/krank/internal/auth"
	"github.com/2beens/krank/internal/misc"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doLogin(ctx context.Context, t *testing.T) string {
	t.Helper()

	loginReqJson, err := json.Marshal(auth.Credentials{
		Username: testUsername,
		Password: testPassword,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/a/login", bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var loginResp misc.LoginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}

// get does an authenticated GET (empty token means none) and returns status and body.
func (s *IntegrationTestSuite) get(ctx context.Context, t *testing.T, path, token string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// tokenTransport adds the session token to every request of the MCP client.
type tokenTransport struct {
	token string
	next  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", "test-agent")
	return t.next.RoundTrip(req)
}
