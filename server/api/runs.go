package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/fixgo/internal/fixid"
	"github.com/dekarrin/fixgo/server/dao"
	"github.com/dekarrin/fixgo/server/result"
)

// SubmitRunRequest is the body of a POST /runs request: one fix task's
// token stream and environment, given inline rather than as file paths
// since the caller may not have filesystem access to the server.
type SubmitRunRequest struct {
	Lang     string `json:"lang"`
	MaxLen   int    `json:"max_len"`
	MaxNewID int    `json:"max_new_id"`
	Tokens   string `json:"tokens"`
	Env      string `json:"env"`
}

// RunModel is the client-facing view of a dao.Run.
type RunModel struct {
	ID          string   `json:"id"`
	Lang        string   `json:"lang"`
	MaxLen      int      `json:"max_len"`
	FoundLength int      `json:"found_length"`
	Originals   []string `json:"originals,omitempty"`
	Outputs     []string `json:"outputs,omitempty"`
	Submitted   string   `json:"submitted"`
	Err         string   `json:"error,omitempty"`
}

func toRunModel(r dao.Run) RunModel {
	return RunModel{
		ID:          r.ID.String(),
		Lang:        r.Lang,
		MaxLen:      r.MaxLen,
		FoundLength: r.FoundLength,
		Originals:   r.Originals,
		Outputs:     r.Outputs,
		Submitted:   r.Submitted.UTC().Format(time.RFC3339),
		Err:         r.Err,
	}
}

// HTTPPostRun returns a HandlerFunc that runs a fix task and persists its
// outcome.
func (api API) HTTPPostRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epPostRun)
}

func (api API) epPostRun(req *http.Request) result.Result {
	var in SubmitRunRequest
	if err := parseJSON(req, &in); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if in.Lang != "c" && in.Lang != "mj" {
		return result.BadRequest("lang must be 'c' or 'mj'", "bad lang %q", in.Lang)
	}
	if in.MaxLen < 0 {
		return result.BadRequest("max_len must not be negative", "bad max_len %d", in.MaxLen)
	}

	run, err := api.Exec.Run(in.Lang, in.Tokens, in.Env, in.MaxLen, in.MaxNewID)
	if err != nil {
		return result.InternalServerError("run failed: %v", err)
	}

	created, err := api.Runs.Create(req.Context(), run)
	if err != nil {
		return result.InternalServerError("could not persist run: %v", err)
	}
	return result.Created(toRunModel(created), "run %s submitted (lang %s, found length %d)", created.ID, created.Lang, created.FoundLength)
}

// HTTPGetRun returns a HandlerFunc that fetches one run by its "id" URL
// param.
func (api API) HTTPGetRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetRun)
}

func (api API) epGetRun(req *http.Request) result.Result {
	idStr := chi.URLParam(req, "id")
	id, err := fixid.Parse(idStr)
	if err != nil {
		return result.NotFound("bad run id %q", idStr)
	}

	run, err := api.Runs.GetByID(req.Context(), id)
	if err != nil {
		if err == dao.ErrNotFound {
			return result.NotFound("run %s not found", idStr)
		}
		return result.InternalServerError("could not load run %s: %v", idStr, err)
	}
	return result.OK(toRunModel(run), "fetched run %s", id)
}

// HTTPListRuns returns a HandlerFunc that lists every stored run, newest
// first.
func (api API) HTTPListRuns() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epListRuns)
}

func (api API) epListRuns(req *http.Request) result.Result {
	all, err := api.Runs.List(req.Context())
	if err != nil {
		return result.InternalServerError("could not list runs: %v", err)
	}
	models := make([]RunModel, len(all))
	for i, r := range all {
		models[i] = toRunModel(r)
	}
	return result.OK(models, "listed %d runs", len(models))
}
