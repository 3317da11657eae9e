package restmux

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/urfave/negroni"
)

var (
	specRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restmux_spec_renders_total",
		Help: "Swagger document renders by outcome.",
	}, []string{"outcome"})

	specRenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "restmux_spec_render_seconds",
		Help: "Time spent assembling the Swagger document.",
	})
)

// Handler serves the api's Swagger document as JSON. The document is
// rebuilt from the live registrations on every request; assembly errors
// surface as a 500.
func Handler(a *Api) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		specs, err := a.Schema()
		specRenderDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			specRenders.WithLabelValues("error").Inc()
			slog.Error("could not assemble specs", "err", err)
			http.Error(w, "could not assemble specs", http.StatusInternalServerError)
			return
		}
		specRenders.WithLabelValues("ok").Inc()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(specs); err != nil {
			slog.Error("could not write specs", "err", err)
		}
	})
}

// Register mounts every resource handler plus the swagger.json endpoint on
// the router. URL rules keep their converter patterns on the mux side so
// the router only matches what the document describes.
func (a *Api) Register(r *mux.Router) {
	base := strings.TrimSuffix(a.BasePath, "/")
	for _, ns := range a.namespaces {
		for _, entry := range ns.resources {
			for _, url := range entry.urls {
				rule := base + muxRule(url)
				for _, verb := range entry.resource.Methods() {
					m := entry.resource.Method(verb)
					if m == nil || m.Handler == nil {
						continue
					}
					r.HandleFunc(rule, m.Handler).Methods(strings.ToUpper(verb))
				}
			}
		}
	}
	r.Handle(base+"/swagger.json", Handler(a)).Methods(http.MethodGet)
}

// LogMiddleware logs one line per request with its status and a request id.
func LogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		id := uuid.NewString()
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"id", id,
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
		)
	})
}
