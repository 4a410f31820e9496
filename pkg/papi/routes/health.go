package routes

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quatton/portfolio/pkg/papi/services"
)

type HealthOutput struct {
	Status int
	Body   struct {
		Status string            `json:"status" example:"ok" doc:"Health status"`
		Checks map[string]string `json:"checks,omitempty" doc:"Per-dependency result"`
	}
}

func RegisterHealth(api huma.API, checks map[string]services.Check) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Description: "Returns ok when the service and its dependencies are reachable",
		Tags:        []string{TagHealth.String()},
	}, func(ctx context.Context, input *struct{}) (*HealthOutput, error) {
		resp := &HealthOutput{Status: http.StatusOK}
		resp.Body.Status = "ok"

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if resp.Body.Checks == nil {
				resp.Body.Checks = map[string]string{}
			}
			cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := checks[name](cctx)
			cancel()
			if err != nil {
				resp.Status = http.StatusServiceUnavailable
				resp.Body.Status = "degraded"
				resp.Body.Checks[name] = err.Error()
				continue
			}
			resp.Body.Checks[name] = "ok"
		}
		return resp, nil
	})
}
