package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/quatton/portfolio/pkg/papi/services"
)

// RegisterAPI installs every route. svcs may be nil when only the OpenAPI
// document is needed.
func RegisterAPI(api huma.API, svcs *services.Services) {
	if svcs == nil {
		RegisterHealth(api, nil)
		RegisterStrike(api, nil, nil)
		return
	}

	if svcs.IAM != nil {
		api.UseMiddleware(svcs.IAM.Middleware())
	}
	RegisterHealth(api, svcs.Checks)
	RegisterStrike(api, svcs.IAM, svcs.Engine)
}
