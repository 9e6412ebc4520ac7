package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subtrack/src/config"
	"subtrack/src/util"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, cfg config.Config) (pgxmock.PgxPoolIface, http.Handler) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}
	return mock, NewRouter(mock, cfg, zap.NewNop())
}

func TestHealth(t *testing.T) {
	_, r := newTestRouter(t, config.Config{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	mock, r := newTestRouter(t, config.Config{JWTSecret: "s3cret"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := util.IssueToken("s3cret", "dashboard", time.Hour)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadOnlyBlocksWrites(t *testing.T) {
	mock, r := newTestRouter(t, config.Config{ReadOnly: true})

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Netflix","amount":649,"start_date":"2024-01-12"}`)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/subscriptions", body))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/subscriptions/1", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
