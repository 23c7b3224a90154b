package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/abrezinsky/luckydraw/internal/auth"
	"github.com/abrezinsky/luckydraw/internal/models"
	"github.com/abrezinsky/luckydraw/internal/services"
)

type mockDrawService struct {
	categories []models.CategoryCount
	status     *services.Status
	outcome    *services.DrawOutcome
	winner     *models.Winner
	preview    []byte
	history    []models.DrawRecord
	summary    map[string]int
	cleared    bool
	err        error

	selected    string
	drawCalls   int
	previewSize uint
	historySize int
}

func (m *mockDrawService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return m.categories, m.err
}

func (m *mockDrawService) Select(ctx context.Context, category string) error {
	if m.err != nil {
		return m.err
	}
	m.selected = category
	return nil
}

func (m *mockDrawService) Draw(ctx context.Context) (*services.DrawOutcome, error) {
	m.drawCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.outcome, nil
}

func (m *mockDrawService) LastWinner(ctx context.Context) (*models.Winner, error) {
	return m.winner, m.err
}

func (m *mockDrawService) Preview(ctx context.Context, maxDimension uint) ([]byte, error) {
	m.previewSize = maxDimension
	return m.preview, m.err
}

func (m *mockDrawService) History(ctx context.Context, limit int) ([]models.DrawRecord, error) {
	m.historySize = limit
	return m.history, m.err
}

func (m *mockDrawService) HistoryEntry(ctx context.Context, id string) (*models.DrawRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.history {
		if m.history[i].ID == id {
			return &m.history[i], nil
		}
	}
	return nil, services.ErrDrawNotFound
}

func (m *mockDrawService) HistorySummary(ctx context.Context) (map[string]int, error) {
	return m.summary, m.err
}

func (m *mockDrawService) ClearHistory(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = true
	return nil
}

func (m *mockDrawService) Status(ctx context.Context) (*services.Status, error) {
	if m.status == nil {
		return &services.Status{}, m.err
	}
	return m.status, m.err
}

type mockSettingsService struct {
	baseURL string
	qr      []byte
	err     error
}

func (m *mockSettingsService) GetBaseURL(ctx context.Context) (string, error) {
	return m.baseURL, m.err
}

func (m *mockSettingsService) SetBaseURL(ctx context.Context, url string) error {
	if m.err != nil {
		return m.err
	}
	m.baseURL = url
	return nil
}

func (m *mockSettingsService) OperatorQR(ctx context.Context) ([]byte, error) {
	return m.qr, m.err
}

var testTemplates = fstest.MapFS{
	"operator.html": {Data: []byte(`<h1>{{.Title}}</h1>`)},
	"login.html":    {Data: []byte(`<form>{{.Title}}{{if .Error}}<p>{{.Error}}</p>{{end}}</form>`)},
}

func setupTestHandlers(t *testing.T) (*Handlers, *mockDrawService, *mockSettingsService) {
	t.Helper()
	draws := &mockDrawService{}
	settings := &mockSettingsService{}
	h, err := New(draws, settings, testTemplates, http.NotFoundHandler(), auth.New("test-password"), nil, NoopHTTPLogger{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return h, draws, settings
}

// sessionCookie logs in through the handler and returns the session cookie
func sessionCookie(t *testing.T, h *Handlers) *http.Cookie {
	t.Helper()
	token, ok := h.Auth.Login("test-password")
	if !ok {
		t.Fatal("login with test password failed")
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func doRequest(t *testing.T, h *Handlers, req *http.Request, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	if authed {
		req.AddCookie(sessionCookie(t, h))
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}
