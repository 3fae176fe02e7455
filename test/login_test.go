//go:build integration

package test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token := s.doLogin(ctx, s.T())

	status, _ := s.get(ctx, s.T(), "/stats/e1rm?movementFamily=Deadlift", token)
	s.Equal(http.StatusOK, status)

	req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/a/logout", nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.NoError(s.T(), resp.Body.Close())
	s.Equal(http.StatusOK, resp.StatusCode)

	// the token is gone now
	status, _ = s.get(ctx, s.T(), "/stats/e1rm?movementFamily=Deadlift", token)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, creds := range []url.Values{
		{"username": {testUsername}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {testPassword}},
	} {
		req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/a/login", strings.NewReader(creds.Encode()))
		require.NoError(s.T(), err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		require.NoError(s.T(), err)
		require.NoError(s.T(), resp.Body.Close())
		assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode, creds.Get("username"))
	}
}
