package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/models"
	"investments-api/internal/query"
	"investments-api/internal/services"
	"investments-api/pkg"
	middleware "investments-api/pkg/middlewares"
)

// stubAccountRepo serves the seeded test account without a database.
type stubAccountRepo struct {
	accounts []*models.Account
}

func (s *stubAccountRepo) FindByCredentials(_ context.Context, email, digest string) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email && a.PasswordDigest == digest {
			return a, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (s *stubAccountRepo) FindByID(_ context.Context, id int64) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (s *stubAccountRepo) Create(_ context.Context, account models.Account) (int64, error) {
	next := int64(len(s.accounts) + 1)
	account.ID = next
	s.accounts = append(s.accounts, &account)
	return next, nil
}

// stubInvestmentRepo keeps records in memory and supports the subset of
// filtering the tests exercise.
type stubInvestmentRepo struct {
	mu      sync.Mutex
	records []models.Investment
	nextID  int64
}

func (s *stubInvestmentRepo) Create(_ context.Context, investment models.Investment) (models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	investment.ID = s.nextID
	s.records = append(s.records, investment)
	return investment, nil
}

func (s *stubInvestmentRepo) matches(inv models.Investment, filter query.InvestmentFilter) bool {
	if filter.ID.Exact != nil && inv.ID != *filter.ID.Exact {
		return false
	}
	if filter.Amount.Exact != nil && inv.Amount != *filter.Amount.Exact {
		return false
	}
	if filter.CreatedAt.Gt != nil && (inv.CreatedAt == nil || !inv.CreatedAt.After(*filter.CreatedAt.Gt)) {
		return false
	}
	if filter.CreatedAt.Lt != nil && (inv.CreatedAt == nil || !inv.CreatedAt.Before(*filter.CreatedAt.Lt)) {
		return false
	}
	return true
}

func (s *stubInvestmentRepo) filtered(filter query.InvestmentFilter) []models.Investment {
	var out []models.Investment
	for _, inv := range s.records {
		if s.matches(inv, filter) {
			out = append(out, inv)
		}
	}
	return out
}

func (s *stubInvestmentRepo) FindMany(_ context.Context, filter query.InvestmentFilter, opts query.Options) ([]models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.filtered(filter)
	if opts.SortBy == "created_at" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].CreatedAt, out[j].CreatedAt
			if a == nil || b == nil {
				return b == nil
			}
			if opts.SortOrder == query.SortAsc {
				return a.Before(*b)
			}
			return a.After(*b)
		})
	}

	start := (opts.Page - 1) * opts.Offset
	if start >= len(out) {
		return nil, nil
	}
	end := start + opts.Offset
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *stubInvestmentRepo) Count(_ context.Context, filter query.InvestmentFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filtered(filter)), nil
}

func (s *stubInvestmentRepo) FindAllByCreatedAt(_ context.Context, rng query.TimeFilter) ([]models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered(query.InvestmentFilter{CreatedAt: rng}), nil
}

func (s *stubInvestmentRepo) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// newTestRouter builds the full engine with in-memory collaborators, mirroring
// the wiring in internal/app.
func newTestRouter(t *testing.T, accounts *stubAccountRepo, investments *stubInvestmentRepo) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	tokens := auth.NewTokenService(logger, "test-secret")
	credentials := auth.NewCredentialVerifier(logger, accounts)
	mw := auth.NewMiddleware(logger, credentials, tokens, accounts, auth.NewMemoryRevocationList())
	limiter := pkg.NewDistributedLimiter(nil, "global:login_rate", 0, 0, time.Minute, logger)

	authService := services.NewAuthService(logger, tokens)
	investmentService := services.NewInvestmentService(logger, investments)
	statsService := services.NewStatsService(logger, investments)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		pkg.WriteError(c, logger, pkg.NewMethodNotAllowedError())
	})

	api := r.Group("/api")
	api.Use(middleware.TraceID())

	NewAuthHandler(logger, authService, limiter).RegisterRoutes(api, mw)
	NewInvestmentHandler(logger, investmentService, statsService).RegisterRoutes(api, mw)

	return r, tokens
}

func seededAccounts() *stubAccountRepo {
	return &stubAccountRepo{accounts: []*models.Account{
		{ID: 1, Email: "test1@email.com", PasswordDigest: auth.DigestPassword("prova1")},
	}}
}

func do(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// freshToken issues a write-capable token directly from the token service.
func freshToken(t *testing.T, tokens *auth.TokenService, account *models.Account) string {
	t.Helper()
	token, err := tokens.Issue(account)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected classified error body, got %v", body)
	msg, _ := errObj["message"].(string)
	return msg
}
