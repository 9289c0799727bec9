package handlers_test

import (
	"net/http"
	"testing"

	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

type upgraderFunc func(w http.ResponseWriter, r *http.Request)

func (f upgraderFunc) ServeWs(w http.ResponseWriter, r *http.Request) { f(w, r) }

func TestRealtimeHandler_DelegatesToHub(t *testing.T) {
	called := false
	hub := upgraderFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusForbidden)
	})

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/ws", handlers.NewRealtimeHandler(hub).Connect)

	recorder := httpSuite.MakeRequest(http.MethodGet, "/ws", nil)

	assert.True(t, called)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
