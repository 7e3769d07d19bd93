package app

import (
	"net/http"

	"github.com/Behramm10/Cine-Flow/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthCheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Environment: app.config.Env,
			Version:     version,
		},
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
