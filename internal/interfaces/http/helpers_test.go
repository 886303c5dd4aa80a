package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "stockmaster-test"
	testExpMin    = 60
)

type stubLLM struct {
	answer string
	err    error
}

func (s stubLLM) Name() string { return "stub" }

func (s stubLLM) StockInsights(context.Context, []dto.ReplenishmentSuggestion) (string, error) {
	return s.answer, s.err
}

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

func newTestAPI(t *testing.T, llm stubLLM) *testAPI {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)

	replenishment := inventory.NewReplenishmentUseCase(store.Products())
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log),
		ProductUC:       usecase.NewProductUseCase(store.Products(), tx, spreadsheet.NewProductCodec(), log),
		OperationUC:     inventory.NewOperationUseCase(tx, store.Operations(), store.Products(), log),
		MovementUC:      inventory.NewStockMovementUseCase(store.Movements()),
		ReplenishmentUC: replenishment,
		InsightsUC:      usecase.NewInsightsUseCase(llm, replenishment),
		Slips:           pdf.NewSlipGenerator("StockMaster"),
		Health:          apphttp.NewHealthHandler("memory", nil),
		JWTSecret:       testJWTSecret,
	})
	return &testAPI{app: app, store: store}
}

// userToken stores an active user with the given role and returns a bearer header for it.
func (a *testAPI) userToken(t *testing.T, role string) string {
	t.Helper()
	u := &entity.User{
		ID:       uuid.New().String(),
		FullName: role + " user",
		Email:    role + "-" + uuid.NewString()[:8] + "@stockmaster.io",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, a.store.Users().Create(context.Background(), u))
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (a *testAPI) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func productBody(name, sku string, stock, min int) map[string]any {
	return map[string]any{
		"name":     name,
		"sku":      sku,
		"category": "Electronics",
		"stock":    stock,
		"minStock": min,
		"price":    "19.99",
		"supplier": "TechGlobal",
	}
}
