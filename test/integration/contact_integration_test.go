package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-be/internal/bootstrap"
	"portfolio-be/internal/config"
	"portfolio-be/internal/pkg/logger"
	"portfolio-be/internal/server"
	"portfolio-be/pkg/contact"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeMailgun records every message the relay hands to the provider API.
type fakeMailgun struct {
	mu    sync.Mutex
	sent  []map[string][]string
	fails bool
}

func (f *fakeMailgun) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/messages") {
		http.NotFound(w, r)
		return
	}
	if f.fails {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid private key"}`)
		return
	}
	_ = r.ParseMultipartForm(1 << 20)

	f.mu.Lock()
	f.sent = append(f.sent, r.Form)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"id":"<it@mg.example.com>","message":"Queued. Thank you."}`)
}

func testConfig(apiBase string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			CorsAllowedOrigins: "*",
		},
		Mail: config.MailConfig{
			Provider:       "mailgun",
			MailgunAPIKey:  "key-it",
			MailgunDomain:  "mg.example.com",
			MailgunAPIBase: apiBase,
			ToEmail:        "owner@example.com",
		},
		Site:     config.SiteConfig{URL: "https://example.dev"},
		Throttle: config.ThrottleConfig{Limit: 2, Window: time.Minute},
	}
}

type harness struct {
	client *contact.Client
	logs   *observer.ObservedLogs
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	container := bootstrap.NewContainerWithOptions(cfg, bootstrap.Options{Logger: logger.NewWithCore(core)})
	t.Cleanup(container.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, container.ConsumerService.Consume(ctx))

	srv := httptest.NewServer(adaptor.FiberApp(server.New(cfg, container).GetApp()))
	t.Cleanup(srv.Close)

	return &harness{
		client: contact.NewClient(srv.URL+"/api/contact", contact.WithTimeout(5*time.Second)),
		logs:   logs,
	}
}

func fill(form *contact.Form) {
	form.SetField(contact.FieldName, "Jane Doe")
	form.SetField(contact.FieldEmail, "jane@x.com")
	form.SetField(contact.FieldSubject, "Project Inquiry")
	form.SetField(contact.FieldMessage, "Let's build something great together.")
}

func TestContactSubmissionDelivered(t *testing.T) {
	mg := &fakeMailgun{}
	provider := httptest.NewServer(mg)
	defer provider.Close()

	h := newHarness(t, testConfig(provider.URL+"/v3"))

	form := contact.NewForm(h.client, contact.WithFormID("1"))
	fill(form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Equal(t, contact.Status{Kind: contact.StatusSuccess, Message: contact.MessageSuccess}, form.Status())
	assert.Equal(t, contact.Input{ID: "1"}, form.Fields())

	require.Len(t, mg.sent, 1)
	assert.Equal(t, []string{"Portfolio Contact: Project Inquiry"}, mg.sent[0]["subject"])
	assert.Equal(t, []string{"owner@example.com"}, mg.sent[0]["to"])

	assert.Eventually(t, func() bool {
		return h.logs.FilterMessage("CONTACT_SUBMITTED").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestContactSubmissionThrottled(t *testing.T) {
	provider := httptest.NewServer(&fakeMailgun{})
	defer provider.Close()

	h := newHarness(t, testConfig(provider.URL+"/v3"))
	in := contact.Input{
		ID:      "1",
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Project Inquiry",
		Message: "Let's build something great together.",
	}

	for i := 0; i < 2; i++ {
		require.True(t, h.client.Submit(context.Background(), in).OK())
	}

	res := h.client.Submit(context.Background(), in)
	assert.Equal(t, contact.ReasonNetworkOrUnknown, res.Reason)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "Too many requests", res.ServerError)
}

func TestContactSubmissionProviderRejects(t *testing.T) {
	provider := httptest.NewServer(&fakeMailgun{fails: true})
	defer provider.Close()

	h := newHarness(t, testConfig(provider.URL+"/v3"))

	form := contact.NewForm(h.client, contact.WithFormID("1"))
	fill(form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, contact.ReasonNetworkOrUnknown, res.Reason)
	assert.Equal(t, "Failed to send email", res.ServerError)
	assert.Equal(t, contact.StatusError, form.Status().Kind)
	assert.Equal(t, "Jane Doe", form.Fields().Name)

	assert.Eventually(t, func() bool {
		return h.logs.FilterMessage("CONTACT_FAILED").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestContactSubmissionWithoutCredentials(t *testing.T) {
	cfg := testConfig("")
	cfg.Mail.MailgunAPIKey = ""

	h := newHarness(t, cfg)

	form := contact.NewForm(h.client, contact.WithFormID("1"))
	fill(form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, contact.ReasonServiceUnavailable, res.Reason)
	assert.Equal(t, contact.MessageSendFailed, form.Status().Message)

	// presence flags are logged, never the values
	entries := h.logs.FilterMessage("Missing mail configuration").All()
	require.NotEmpty(t, entries)
	details, ok := entries[0].ContextMap()["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, details["has_mailgun_api_key"])
	assert.Equal(t, true, details["has_mailgun_domain"])
	assert.NotContains(t, details, "mailgun_domain")
}

func TestSiteRoutesServed(t *testing.T) {
	cfg := testConfig("")
	container := bootstrap.NewContainerWithOptions(cfg, bootstrap.Options{Logger: logger.NewNopLogger()})
	defer container.Close()
	app := server.New(cfg, container).GetApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/robots.txt", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(raw), "Disallow: /")
}
