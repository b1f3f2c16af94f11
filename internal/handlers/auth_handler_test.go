package handlers

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicAuth(email, password string) map[string]string {
	credentials := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	return map[string]string{"Authorization": "Basic " + credentials}
}

func TestLogin_ValidCredentials(t *testing.T) {
	r, tokens := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	w := do(r, http.MethodPost, "/api/auth", nil, basicAuth("test1@email.com", "prova1"))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	tokenString, _ := data["token"].(string)
	require.NotEmpty(t, tokenString)

	claims, err := tokens.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write"}, claims.Permissions)
	require.NotNil(t, claims.Account.ID)
	assert.Equal(t, int64(1), *claims.Account.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	w := do(r, http.MethodPost, "/api/auth", nil, basicAuth("aaa@aaa.it", "bbb"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", errorMessage(t, w))
}

func TestLogin_AnonymousGetsReadOnlyToken(t *testing.T) {
	r, tokens := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	// No Authorization header at all.
	w := do(r, http.MethodPost, "/api/auth", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	claims, err := tokens.Verify(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, []string{"read"}, claims.Permissions)
	assert.Nil(t, claims.Account.ID)
}

func TestLogin_NonBasicSchemeFallsToAnonymous(t *testing.T) {
	r, tokens := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	w := do(r, http.MethodPost, "/api/auth", nil, map[string]string{"Authorization": "Bearer aaa"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	claims, err := tokens.Verify(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, []string{"read"}, claims.Permissions)
}

func TestLogin_ConsecutiveLoginsGetDistinctTokens(t *testing.T) {
	r, _ := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	first := do(r, http.MethodPost, "/api/auth", nil, basicAuth("test1@email.com", "prova1"))
	second := do(r, http.MethodPost, "/api/auth", nil, basicAuth("test1@email.com", "prova1"))
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	tokenA := decodeBody(t, first)["data"].(map[string]any)["token"].(string)
	tokenB := decodeBody(t, second)["data"].(map[string]any)["token"].(string)
	assert.NotEqual(t, tokenA, tokenB)
}

func TestLogin_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t, seededAccounts(), &stubInvestmentRepo{})

	w := do(r, http.MethodGet, "/api/auth", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed.", errorMessage(t, w))
}
