package dispatch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirwalterjones/sessionremind/internal/dispatch"
	handler "github.com/sirwalterjones/sessionremind/internal/handler/dispatch"
	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository/memory"
	"github.com/sirwalterjones/sessionremind/internal/worker"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
	"github.com/sirwalterjones/sessionremind/pkg/metrics"
)

type okSender struct{}

func (okSender) Send(context.Context, string, string) error { return nil }

type noUsage struct{}

func (noUsage) Increment(context.Context, string) error { return nil }

var testMetrics = metrics.NewMetrics("sessionremind", "dispatchhandlertest")

func newTrigger(t *testing.T, store *memory.MessageStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gate, err := dispatch.NewGate("UTC", 0)
	require.NoError(t, err)

	lgr := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	cycle := dispatch.NewCycle(store, gate, okSender{}, noUsage{}, lgr)
	d := worker.NewDispatcher(cycle, nil, worker.DispatcherConfig{PollInterval: time.Minute}, lgr, testMetrics)

	r := gin.New()
	handler.NewHandler(d).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestRunCycleReturnsSummary(t *testing.T) {
	store := memory.NewMessageStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &model.Message{
		RecipientName:  "Sarah Jones",
		RecipientPhone: "6788978571",
		Body:           "hi",
		DueAt:          time.Now().Add(-time.Second),
		Kind:           model.KindOneDayReminder,
		Status:         model.MessageStatusScheduled,
	}))

	r := newTrigger(t, store)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/run", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dispatch.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.ProcessedCount)
	assert.Equal(t, 1, resp.Data.SentCount)
}

func TestRunCycleEmptyStoreStill200(t *testing.T) {
	r := newTrigger(t, memory.NewMessageStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/run", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dispatch.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.ProcessedCount)
	assert.Equal(t, 0, resp.Data.DueTotal)
}
