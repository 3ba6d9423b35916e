package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/emi-service/internal/calculator"
	"github.com/Dan9191/emi-service/internal/config"
	"github.com/Dan9191/emi-service/internal/models"
	"github.com/Dan9191/emi-service/internal/repository"
	"github.com/Dan9191/emi-service/internal/service"
)

type stubMailer struct {
	to []string
}

func (m *stubMailer) SendEMISummary(to, _, _ string) error {
	m.to = append(m.to, to)
	return nil
}

type stubKeyRates struct {
	rate float64
	err  error
}

func (s stubKeyRates) GetKeyRate(context.Context) (float64, error) {
	return s.rate, s.err
}

func newTestServer(t *testing.T, keyRates service.KeyRateProvider) (http.Handler, *stubMailer) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: "jwt-secret", HMACSecret: "hmac-secret"}
	mailer := &stubMailer{}
	svc := service.NewService(
		repository.NewMemoryRepository(),
		repository.NewMemoryCache(),
		mailer,
		keyRates,
		calculator.DefaultLenderRates,
		log,
		cfg,
	)
	return NewRouter(NewHandler(svc, log), cfg), mailer
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const calcBody = `{"property_price":"5,000,000","down_payment":"2,000,000","annual_rate":"8.5","tenure_years":"20","interest_method":"reducing","prepayment_amount":"500000"}`

func calculate(t *testing.T, h http.Handler) models.Calculation {
	t.Helper()
	w := do(t, h, http.MethodPost, "/emi/calculate", calcBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var calc models.Calculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calc))
	return calc
}

func TestCalculate(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})

	calc := calculate(t, h)
	assert.NotEmpty(t, calc.ID)
	assert.InDelta(t, 26034.697, calc.EMI.MonthlyEMI, 0.01)
	require.NotNil(t, calc.Prepayment)
	assert.InDelta(t, 3834362.60, calc.Prepayment.InterestSaved, 1)
	assert.Len(t, calc.Offers, len(calculator.DefaultLenderRates))
}

func TestCalculateErrors(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed body", `{"property_price":`, http.StatusBadRequest},
		{"down payment exceeds price", `{"property_price":"100","down_payment":"200"}`, http.StatusUnprocessableEntity},
		{"zero rate", `{"property_price":"100000","annual_rate":"0"}`, http.StatusUnprocessableEntity},
		{"tenure out of range", `{"property_price":"100000","tenure_years":"45"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/emi/calculate", tt.body, "")
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCalculationLifecycle(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})
	calc := calculate(t, h)
	path := "/emi/calculations/" + calc.ID

	w := do(t, h, http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Calculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, calc.Signature, stored.Signature)

	w = do(t, h, http.MethodGet, path+"/summary", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "MORTGAGE EMI SUMMARY REPORT")

	w = do(t, h, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodGet, "/emi/calculations/unknown/summary", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLenders(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})

	w := do(t, h, http.MethodGet, "/lenders", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var lenders []models.LenderRate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lenders))
	assert.Equal(t, calculator.DefaultLenderRates, lenders)
}

func TestKeyRate(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})
	w := do(t, h, http.MethodGet, "/key-rate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key_rate":21.5}`, w.Body.String())

	h, _ = newTestServer(t, stubKeyRates{err: errors.New("timeout")})
	w = do(t, h, http.MethodGet, "/key-rate", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthAndEmail(t *testing.T) {
	h, mailer := newTestServer(t, stubKeyRates{rate: 21.5})
	creds := `{"username":"asha","email":"asha@example.com","password":"password123"}`

	w := do(t, h, http.MethodPost, "/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = do(t, h, http.MethodPost, "/register", creds, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(t, h, http.MethodPost, "/register", `{"email":"bad","password":"password123"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/login", `{"email":"asha@example.com","password":"nope-nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	calc := calculate(t, h)
	emailPath := "/emi/calculations/" + calc.ID + "/email"

	w = do(t, h, http.MethodPost, emailPath, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, mailer.to)

	w = do(t, h, http.MethodPost, emailPath, "", login.Token)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"asha@example.com"}, mailer.to)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t, stubKeyRates{rate: 21.5})
	w := do(t, h, http.MethodGet, "/emi/calculate", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
