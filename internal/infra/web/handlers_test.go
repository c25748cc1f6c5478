package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-smm-storefront/internal/application"
	"telegram-smm-storefront/internal/config"
	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/infra/i18n"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/usecase"
)

// ---- mocks ----

type mockOrderUC struct {
	orders map[string]*model.Order
}

var _ usecase.OrderUseCase = (*mockOrderUC)(nil)

func newMockOrderUC() *mockOrderUC {
	return &mockOrderUC{orders: map[string]*model.Order{}}
}

func (m *mockOrderUC) Submit(_ context.Context, tgID int64, draft model.OrderDraft) (string, error) {
	o, err := model.NewOrder(tgID, draft)
	if err != nil {
		return "", err
	}
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *mockOrderUC) Get(_ context.Context, id string) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderUC) ListByUser(_ context.Context, tgID int64, _ int) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range m.orders {
		if o.TelegramID == tgID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderUC) ListRecent(_ context.Context, _ int) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderUC) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type mockCatalogUC struct {
	pkgs map[string]*model.ServicePackage
}

var _ usecase.CatalogUseCase = (*mockCatalogUC)(nil)

func newMockCatalogUC() *mockCatalogUC {
	return &mockCatalogUC{pkgs: map[string]*model.ServicePackage{}}
}

func (m *mockCatalogUC) Platforms(_ context.Context) []string { return model.Platforms() }

func (m *mockCatalogUC) ListByPlatform(_ context.Context, platform string) ([]*model.ServicePackage, error) {
	var out []*model.ServicePackage
	for _, p := range m.pkgs {
		if p.Platform == platform && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogUC) ListActive(_ context.Context) ([]*model.ServicePackage, error) {
	var out []*model.ServicePackage
	for _, p := range m.pkgs {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogUC) Get(_ context.Context, id string) (*model.ServicePackage, error) {
	p, ok := m.pkgs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockCatalogUC) Save(_ context.Context, pkg *model.ServicePackage) error {
	m.pkgs[pkg.ID] = pkg
	return nil
}

func (m *mockCatalogUC) Delete(_ context.Context, id string) error {
	if _, ok := m.pkgs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.pkgs, id)
	return nil
}

type captureBot struct {
	sent []adapter.SendMessageParams
}

var _ adapter.TelegramBotAdapter = (*captureBot)(nil)

func (c *captureBot) SendMessage(_ context.Context, params adapter.SendMessageParams) error {
	c.sent = append(c.sent, params)
	return nil
}

type mockUserUC struct{ count int }

var _ usecase.UserUseCase = (*mockUserUC)(nil)

func (m *mockUserUC) RegisterOrFetch(_ context.Context, tgID int64, username string) (*model.User, error) {
	return model.NewUser("", tgID, username)
}

func (m *mockUserUC) GetByTelegramID(_ context.Context, _ int64) (*model.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserUC) Count(_ context.Context) (int, error) { return m.count, nil }

// ---- helpers ----

func newTestServer(t *testing.T) (*Server, *mockOrderUC, *mockCatalogUC, *captureBot) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	orderUC := newMockOrderUC()
	catalogUC := newMockCatalogUC()
	bot := &captureBot{}
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		t.Fatalf("load translator: %v", err)
	}
	auth := NewAuthManager("test-secret", "admin", "hunter2", false, time.Minute)
	cfg := &config.WebConfig{Port: 0}
	srv := NewServer(cfg, auth, orderUC, catalogUC, &mockUserUC{count: 3}, bot, application.NewPresenter(tr), &logger)
	return srv, orderUC, catalogUC, bot
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	body := bytes.NewBufferString(`{"username":"admin","password":"hunter2"}`)
	resp, err := http.Post(ts.URL+"/api/v1/login", "application/json", body)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out["token"] == "" {
		t.Fatalf("empty token")
	}
	return out["token"]
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// ---- tests ----

func TestAuth(t *testing.T) {
	srv, _, _, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	t.Run("bad credentials rejected", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"wrong"}`)
		resp, err := http.Post(ts.URL+"/api/v1/login", "application/json", body)
		if err != nil {
			t.Fatalf("login request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("protected route needs token", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/orders/", "", "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("minted token grants access", func(t *testing.T) {
		token := login(t, ts)
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/orders/", token, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/orders/", "not.a.jwt", "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
	})
}

func TestOrderEndpoints(t *testing.T) {
	srv, orderUC, _, bot := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := login(t, ts)

	id, err := orderUC.Submit(context.Background(), 42, model.OrderDraft{
		Platform: "instagram", PackageName: "IG Followers 1K",
		Link: "https://instagram.com/x", Quantity: 500, Amount: 500,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	t.Run("get order", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/orders/"+id, token, "")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var got model.Order
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != id || got.Status != model.OrderStatusPending {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("get missing order is 404", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/orders/nope", token, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("patch status", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPatch, "/api/v1/orders/"+id, token, `{"status":"processing"}`)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", resp.StatusCode)
		}
		if orderUC.orders[id].Status != model.OrderStatusProcessing {
			t.Fatalf("status not applied: %s", orderUC.orders[id].Status)
		}
		if len(bot.sent) != 1 || bot.sent[0].ChatID != 42 {
			t.Fatalf("expected one status notification to chat 42, got %+v", bot.sent)
		}
	})

	t.Run("patch unknown status is 400", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodPatch, "/api/v1/orders/"+id, token, `{"status":"shipped"}`)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestPackageEndpoints(t *testing.T) {
	srv, _, catalogUC, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := login(t, ts)

	t.Run("create package", func(t *testing.T) {
		body := `{"name":"IG Followers 1K","service_id":"svc-42","platform":"instagram","rate":"₹1000 per 1000"}`
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/packages/", token, body)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		var pkg model.ServicePackage
		if err := json.NewDecoder(resp.Body).Decode(&pkg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if pkg.ID == "" || !pkg.Active {
			t.Fatalf("unexpected package: %+v", pkg)
		}
	})

	t.Run("create with unknown platform is 400", func(t *testing.T) {
		body := `{"name":"X","service_id":"svc-1","platform":"myspace","rate":"₹1 per 1"}`
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/packages/", token, body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("list filters by platform", func(t *testing.T) {
		pkg, _ := model.NewServicePackage("pkg-yt", "YT Views", "svc-7", "youtube", "₹90 per 1K")
		_ = catalogUC.Save(context.Background(), pkg)

		resp := doJSON(t, ts, http.MethodGet, "/api/v1/packages/?platform=youtube", token, "")
		defer resp.Body.Close()
		var out struct {
			Data []*model.ServicePackage `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.Data) != 1 || out.Data[0].ID != "pkg-yt" {
			t.Fatalf("unexpected list: %+v", out.Data)
		}
	})

	t.Run("delete missing package is 404", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodDelete, "/api/v1/packages/ghost", token, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestStatsEndpoint(t *testing.T) {
	srv, orderUC, _, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := login(t, ts)

	for i := 0; i < 2; i++ {
		_, err := orderUC.Submit(context.Background(), int64(100+i), model.OrderDraft{
			Platform: "instagram", Link: "https://instagram.com/x", Quantity: 100, Amount: 100,
		})
		if err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	resp := doJSON(t, ts, http.MethodGet, "/api/v1/stats", token, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		TotalUsers    int     `json:"total_users"`
		RecentOrders  int     `json:"recent_orders"`
		RecentRevenue float64 `json:"recent_revenue"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalUsers != 3 || out.RecentOrders != 2 || out.RecentRevenue != 200 {
		t.Fatalf("unexpected stats: %+v", out)
	}
}

func TestHealth(t *testing.T) {
	srv, _, _, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
