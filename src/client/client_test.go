package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"subtrack/src/models"

	"github.com/stretchr/testify/require"
)

func TestMetricsKeepsCategoryOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/metrics", r.URL.Path)
		w.Write([]byte(`{"total_monthly":967.92,"total_annual":11615.0,"total_subscriptions":4,"categories":{"Entertainment":768,"Shopping":124.92,"Cloud":75}}`))
	}))
	defer srv.Close()

	m, err := New(srv.URL).Metrics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 967.92, m.TotalMonthly)
	require.Equal(t, 4, m.TotalSubscriptions)
	require.Equal(t, models.CategoryBreakdown{
		{Name: "Entertainment", Amount: 768},
		{Name: "Shopping", Amount: 124.92},
		{Name: "Cloud", Amount: 75},
	}, m.Categories)
}

func TestLoadFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/subscriptions":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		case "/api/renewals":
			w.Write([]byte(`<html>`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Subscriptions(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Code)

	_, err = c.Renewals(context.Background())
	require.Error(t, err)

	srv.Close()
	_, err = c.Metrics(context.Background())
	require.Error(t, err)
}

func TestCreateSubscriptionBody(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"message":"Subscription added successfully"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, WithToken("tok")).CreateSubscription(context.Background(), models.CreateSubscriptionRequest{
		Name: "Netflix", Amount: 649, BillingCycle: "monthly", Category: "Entertainment", StartDate: "2024-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.ID)
	require.Equal(t,
		`{"name":"Netflix","amount":649,"billing_cycle":"monthly","category":"Entertainment","customCategory":"","start_date":"2024-01-01"}`,
		string(got))
}

func TestCreateSubscriptionIgnoresStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).CreateSubscription(context.Background(), models.CreateSubscriptionRequest{})
	require.NoError(t, err)
	require.Equal(t, "Missing required fields", resp.Error)
}

func TestCreateSubscriptionAcceptsAnyJSON(t *testing.T) {
	for _, body := range []string{`"ok"`, `[]`, `{"id":"abc","message":"saved"}`, `{"error":{"code":42}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		resp, err := New(srv.URL).CreateSubscription(context.Background(), models.CreateSubscriptionRequest{})
		srv.Close()
		require.NoError(t, err, body)
		require.NotNil(t, resp, body)
		require.Empty(t, resp.Error, body)
	}
}

func TestCreateSubscriptionRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateSubscription(context.Background(), models.CreateSubscriptionRequest{})
	require.Error(t, err)
}

func TestDeleteSubscriptionAnyStatus(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteSubscription(context.Background(), 42))
	require.Equal(t, "/api/subscriptions/42", path)
}

func TestFileNavigator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/export", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="subscription_insights.xlsx"`)
		w.Write([]byte("PK-workbook"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var saved string
	nav := &FileNavigator{Client: New(srv.URL), Dir: dir, Saved: func(p string) { saved = p }}
	require.NoError(t, nav.Navigate(context.Background(), "/api/export"))

	require.Equal(t, filepath.Join(dir, "subscription_insights.xlsx"), saved)
	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	require.Equal(t, "PK-workbook", string(b))
}

func TestAttachmentName(t *testing.T) {
	require.Equal(t, "a.xlsx", attachmentName(`attachment; filename="a.xlsx"`))
	require.Equal(t, "evil.xlsx", attachmentName(`attachment; filename="../../evil.xlsx"`))
	require.Empty(t, attachmentName(""))
	require.Empty(t, attachmentName(`attachment`))
}
