package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	Verifier  *JWTVerifier
	Websocket http.Handler
	Users     UserService
	Gatherer  prometheus.Gatherer
	Logger    logrus.FieldLogger
}

// NewRouter mounts the hub endpoint, admin API and operational endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Handle("/hub", cfg.Verifier.Authenticate(cfg.Websocket)).Methods(http.MethodGet)

	users := &usersHandler{users: cfg.Users, logger: cfg.Logger}
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(cfg.Verifier.Authenticate, func(next http.Handler) http.Handler {
		return RequireRole(RoleAdmin, next)
	})
	admin.HandleFunc("/users", users.search).Methods(http.MethodGet)
	admin.HandleFunc("/users", users.ban).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return otelhttp.NewHandler(r, "http.server")
}
