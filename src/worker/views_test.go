package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/src/models"
	"tracker/src/services"
	"tracker/src/worker"
	"tracker/src/worker/controllers"
	"tracker/src/worker/handlers"
)

type fakePortfolioService struct {
	services.PortfolioServiceI
	result *services.RefreshResult
	err    error
	calls  int
}

func (f *fakePortfolioService) RefreshPrices(_ context.Context) (*services.RefreshResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakePortfolioService) Holdings(_ context.Context, _ models.AssetTransactionFilter) ([]models.Holding, error) {
	return nil, nil
}

func newTestServer(t *testing.T, portfolio *fakePortfolioService) (*httptest.Server, *controllers.Controller) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	controller := controllers.NewController(portfolio, logger)
	ts := httptest.NewServer(worker.NewServer(handlers.NewHandler(controller, logger)))
	t.Cleanup(ts.Close)
	return ts, controller
}

func TestRefreshPrices(t *testing.T) {
	portfolio := &fakePortfolioService{result: &services.RefreshResult{Resolved: 3, Unresolved: 1, Purged: 2}}
	ts, _ := newTestServer(t, portfolio)

	res, err := http.Post(ts.URL+"/api/prices/refresh", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body services.RefreshResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, services.RefreshResult{Resolved: 3, Unresolved: 1, Purged: 2}, body)
	assert.Equal(t, 1, portfolio.calls)
}

func TestRefreshPricesFailure(t *testing.T) {
	ts, _ := newTestServer(t, &fakePortfolioService{err: errors.New("db down")})

	res, err := http.Post(ts.URL+"/api/prices/refresh", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestSchedulePriceRefresh(t *testing.T) {
	_, controller := newTestServer(t, &fakePortfolioService{result: &services.RefreshResult{}})

	assert.Error(t, controller.SchedulePriceRefresh("every now and then"))

	require.NoError(t, controller.SchedulePriceRefresh("*/5 * * * *"))
	require.NoError(t, controller.SchedulePriceRefresh("0 * * * *"))
	controller.StopScheduler()
	controller.StopScheduler()
}

func TestHealthcheck(t *testing.T) {
	ts, controller := newTestServer(t, &fakePortfolioService{})

	var body struct {
		Status      string  `json:"status"`
		NextRefresh *string `json:"next_refresh"`
	}
	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, "alive", body.Status)
	assert.Nil(t, body.NextRefresh)

	require.NoError(t, controller.SchedulePriceRefresh("0 * * * *"))
	t.Cleanup(controller.StopScheduler)

	res, err = http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	require.NotNil(t, body.NextRefresh)
	next, err := time.Parse(time.RFC3339, *body.NextRefresh)
	require.NoError(t, err)
	assert.True(t, next.After(time.Now().Add(-time.Second)))
}
