package vt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/guardian/pkg/tool/vt"
	"github.com/secmon-lab/guardian/pkg/utils/test"
)

func TestVT_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/domains/example.com")
		gt.Equal(t, r.Header.Get("x-apikey"), "test-key")
		_, _ = w.Write([]byte(`{"data":{"attributes":{
			"reputation": -3,
			"last_analysis_stats": {"harmless": 60, "malicious": 2},
			"categories": {"Forcepoint ThreatSeeker": "phishing"},
			"last_analysis_date": 1700000000,
			"whois": "ignored"
		}}}`))
	}))
	defer srv.Close()

	action := vt.New("test-key", srv.URL)
	resp, err := action.Lookup(context.Background(), "example.com")
	gt.NoError(t, err).Required()

	gt.Value(t, resp["reputation"]).Equal(-3)
	stats, ok := resp["last_analysis_stats"].(map[string]int)
	gt.True(t, ok)
	gt.Equal(t, stats["malicious"], 2)
	gt.Value(t, resp["last_analysis_date"]).Equal("2023-11-14T22:13:20Z")
	_, hasWhois := resp["whois"]
	gt.False(t, hasWhois)
}

func TestVT_UnknownDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NotFoundError"}}`))
	}))
	defer srv.Close()

	resp, err := vt.New("test-key", srv.URL).Lookup(context.Background(), "unknown.example")
	gt.NoError(t, err)
	gt.Nil(t, resp)
}

func TestVT_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := vt.New("test-key", srv.URL).Lookup(context.Background(), "example.com")
	gt.Error(t, err)
}

func TestVT_NoKey(t *testing.T) {
	action := vt.New("", "")
	gt.False(t, action.Enabled())
	_, err := action.Lookup(context.Background(), "example.com")
	gt.Error(t, err)
}

func TestVT_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	action := vt.New("test-key", srv.URL)
	action.SetHTTPClient(&http.Client{Timeout: 50 * time.Millisecond})
	_, err := action.Lookup(context.Background(), "example.com")
	gt.Error(t, err)
}

func TestVT_Live(t *testing.T) {
	vars := test.NewEnvVars(t, "TEST_VT_API_KEY")
	resp, err := vt.New(vars.Get("TEST_VT_API_KEY"), "").Lookup(context.Background(), "google.com")
	gt.NoError(t, err)
	gt.NotNil(t, resp)
}
