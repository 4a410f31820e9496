package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quatton/portfolio/pkg/papi/schemas"
	"github.com/quatton/portfolio/pkg/papi/services/iam"
	"github.com/quatton/portfolio/pkg/perr"
	"github.com/quatton/portfolio/pkg/streak"
)

type StrikeOutput struct {
	Body schemas.StrikeRecord
}

type StrikeActionInput struct {
	Body schemas.StrikeActionRequest
}

type RenameStrikeInput struct {
	Body schemas.RenameStrikeRequest
}

type LeaderboardInput struct {
	By string `query:"by" default:"current" doc:"Rank by current or max streak"`
}

type LeaderboardOutput struct {
	Body struct {
		By      string                     `json:"by" example:"current" doc:"Counter the board is ranked by"`
		Entries []schemas.LeaderboardEntry `json:"entries" doc:"Ranked players"`
	}
}

type LevelsOutput struct {
	Body struct {
		Levels []schemas.Level `json:"levels" doc:"Level table in ascending order"`
	}
}

func RegisterStrike(api huma.API, svc *iam.IAMService, engine *streak.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "get-strike",
		Method:      http.MethodGet,
		Path:        "/strike",
		Summary:     "Get my strike",
		Description: "Returns the caller's streak, creating it on first access",
		Tags:        []string{TagStrike.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*StrikeOutput, error) {
		id, err := svc.Identity(ctx)
		if err != nil {
			return nil, httpError(err)
		}
		rec, err := engine.Fetch(ctx, id)
		if err != nil {
			return nil, httpError(err)
		}
		return &StrikeOutput{Body: schemas.NewStrikeRecord(rec, engine.Now())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "apply-strike-action",
		Method:      http.MethodPost,
		Path:        "/strike",
		Summary:     "Apply a strike action",
		Description: "upgrade extends the streak once per day, restore brings back the best streak (3 per month), reset clears everything",
		Tags:        []string{TagStrike.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *StrikeActionInput) (*StrikeOutput, error) {
		id, err := svc.Identity(ctx)
		if err != nil {
			return nil, httpError(err)
		}
		action, err := streak.ParseAction(input.Body.Action)
		if err != nil {
			return nil, httpError(err)
		}
		rec, err := engine.Apply(ctx, id, action)
		if err != nil {
			return nil, httpError(err)
		}
		return &StrikeOutput{Body: schemas.NewStrikeRecord(rec, engine.Now())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rename-strike",
		Method:      http.MethodPatch,
		Path:        "/strike",
		Summary:     "Rename my strike",
		Tags:        []string{TagStrike.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *RenameStrikeInput) (*StrikeOutput, error) {
		id, err := svc.Identity(ctx)
		if err != nil {
			return nil, httpError(err)
		}
		rec, err := engine.Rename(ctx, id, input.Body.StrikeName)
		if err != nil {
			return nil, httpError(err)
		}
		return &StrikeOutput{Body: schemas.NewStrikeRecord(rec, engine.Now())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-strike-leaderboard",
		Method:      http.MethodGet,
		Path:        "/strike/leaderboard",
		Summary:     "Leaderboard",
		Description: "All players ranked by the chosen counter, ties broken by email",
		Tags:        []string{TagStrike.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *LeaderboardInput) (*LeaderboardOutput, error) {
		id, err := svc.Identity(ctx)
		if err != nil {
			return nil, httpError(err)
		}
		board, err := streak.ParseBoard(input.By)
		if err != nil {
			return nil, httpError(err)
		}
		entries, err := engine.Leaderboard(ctx, id, board)
		if err != nil {
			return nil, httpError(err)
		}
		resp := &LeaderboardOutput{}
		resp.Body.By = string(board)
		resp.Body.Entries = schemas.NewLeaderboardEntries(entries)
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-strike-levels",
		Method:      http.MethodGet,
		Path:        "/strike/levels",
		Summary:     "Level table",
		Tags:        []string{TagStrike.String()},
	}, func(ctx context.Context, input *struct{}) (*LevelsOutput, error) {
		resp := &LevelsOutput{}
		for _, l := range streak.Levels() {
			resp.Body.Levels = append(resp.Body.Levels, schemas.NewLevel(l))
		}
		return resp, nil
	})
}

// httpError maps coded errors to problem responses. Store failures are
// already logged by the engine and surface as a generic 500.
func httpError(err error) error {
	switch perr.CodeOf(err) {
	case perr.CodeUnauthorized:
		return huma.Error401Unauthorized(err.Error())
	case perr.CodeValidation, perr.CodeBusinessRule:
		return huma.Error400BadRequest(err.Error())
	}
	return huma.Error500InternalServerError("internal server error")
}
