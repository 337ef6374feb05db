package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aksps/billwise-backend/api/responses"
	"github.com/aksps/billwise-backend/pkg/config"
	pkgerrors "github.com/aksps/billwise-backend/pkg/errors"
	"github.com/aksps/billwise-backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BillWise-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every backing dependency answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BillWise-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				status[name] = "down"
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable").WithDetails(status))
				return
			}
			status[name] = "up"
		}
		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
