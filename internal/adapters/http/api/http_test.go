package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/timeline/internal/adapters/http/api"
	"github.com/okian/timeline/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

type mockStatus struct {
	status map[string]interface{}
}

func (m *mockStatus) GetStatus() map[string]interface{} {
	return m.status
}

func newMux(provider api.StatusProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(provider).Register(context.Background(), mux)
	return mux
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given an API server", t, func() {
		mux := newMux(&mockStatus{})

		Convey("When GET /healthz is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it reports ok as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When POST /healthz is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(rec.Body.String(), ShouldContainSubstring, "method_not_allowed")
			})
		})
	})
}

func TestStatusEndpoint(t *testing.T) {
	Convey("Given an API server with a running session", t, func() {
		provider := &mockStatus{status: map[string]interface{}{
			"session_id": "abc",
			"state":      "scrobble_selected",
			"events":     3,
		}}
		mux := newMux(provider)

		Convey("When GET /status is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			Convey("Then the provider status is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["session_id"], ShouldEqual, "abc")
				So(body["state"], ShouldEqual, "scrobble_selected")
				So(body["events"], ShouldEqual, 3)
			})
		})

		Convey("When DELETE /status is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/status", nil))

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})

	Convey("Given an API server without a session", t, func() {
		mux := newMux(nil)

		Convey("When GET /status is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

			Convey("Then it is unavailable", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(rec.Body.String(), ShouldContainSubstring, "no_session")
			})
		})
	})
}

func TestMetricsEndpoint(t *testing.T) {
	Convey("Given an API server that has served a request", t, func() {
		mux := newMux(&mockStatus{})
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		metrics.RecordRedraw("draw", 1.5, 10)

		Convey("When GET /metrics is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			body := rec.Body.String()

			Convey("Then explorer and HTTP metrics are exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "timeline_explorer_redraws_total")
				So(body, ShouldContainSubstring, `timeline_explorer_http_requests_total{endpoint="healthz",method="GET",status="200"}`)
			})

			Convey("Then Go runtime metrics are not exposed", func() {
				So(strings.Contains(body, "go_goroutines"), ShouldBeFalse)
			})
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler wrapped by the metrics middleware", t, func() {
		handler := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}, "teapot")

		Convey("When it is called", func() {
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

			Convey("Then the response passes through unchanged", func() {
				So(rec.Code, ShouldEqual, http.StatusTeapot)
				So(rec.Body.String(), ShouldEqual, "short and stout")
			})
		})
	})
}
