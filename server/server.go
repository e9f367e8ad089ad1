// Package server is fixgod's HTTP history service: it runs fix tasks
// submitted over /runs and persists their outcome for later querying, the
// counterpart of the teacher's TunaQuestServer stripped of its game/user
// domain down to that one concern.
package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/fixgo"
	"github.com/dekarrin/fixgo/internal/lang/clike"
	"github.com/dekarrin/fixgo/internal/lang/mjlike"
	"github.com/dekarrin/fixgo/server/api"
	"github.com/dekarrin/fixgo/server/dao"
)

// Config configures a Server.
type Config struct {
	// TokenSecret signs and verifies bearer tokens. Must be non-empty.
	TokenSecret []byte

	// DB selects and configures the run-history datastore.
	DB Database

	// UnauthDelay is how long an unauthenticated or failed request pauses
	// before responding, as an anti-flood measure.
	UnauthDelay time.Duration
}

// FillDefaults returns a copy of cfg with zero-valued fields replaced by
// usable defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg
	if len(newCfg.TokenSecret) == 0 {
		newCfg.TokenSecret = []byte("DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!")
	}
	if newCfg.DB.Type == "" {
		newCfg.DB = Database{Type: DatabaseInMemory}
	}
	if newCfg.UnauthDelay == 0 {
		newCfg.UnauthDelay = time.Second
	}
	return newCfg
}

// Server is fixgod's HTTP history service.
type Server struct {
	mux    *chi.Mux
	runs   dao.RunRepository
	secret []byte
}

// New builds a Server from cfg, connecting to its configured datastore.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()

	runs, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to run store: %w", err)
	}

	srv := &Server{
		mux:    chi.NewRouter(),
		runs:   runs,
		secret: cfg.TokenSecret,
	}

	a := api.API{
		Runs:        runs,
		Exec:        frontendRunner{},
		UnauthDelay: cfg.UnauthDelay,
	}

	srv.mux.Route(api.PathPrefix, func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return requireAuth(cfg.TokenSecret, cfg.UnauthDelay, next)
		})
		r.Post("/runs", a.HTTPPostRun())
		r.Get("/runs", a.HTTPListRuns())
		r.Get("/runs/{id}", a.HTTPGetRun())
	})

	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// ServeForever listens on addr and blocks, serving requests until the
// listener fails.
func (s *Server) ServeForever(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close releases the server's connection to its run store.
func (s *Server) Close() error {
	return s.runs.Close()
}

// IssueToken mints a bearer token a client can use against this server's
// configured secret, labeled with subject for audit purposes only.
func (s *Server) IssueToken(subject string, ttl time.Duration) (string, error) {
	return issueToken(s.secret, subject, ttl)
}

// frontendRunner adapts clike.Fix/mjlike.Fix to api.Runner, writing each
// submitted task's token stream and environment to a scratch directory
// since fixgo.FixTaskInfo names files rather than carrying content inline.
type frontendRunner struct{}

func (frontendRunner) Run(lang, tokens, env string, maxLen, maxNewID int) (dao.Run, error) {
	tmpDir, err := os.MkdirTemp("", "fixgod-run-")
	if err != nil {
		return dao.Run{}, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	inputPath := tmpDir + "/input.tok"
	envPath := tmpDir + "/env.txt"
	if err := os.WriteFile(inputPath, []byte(tokens), 0600); err != nil {
		return dao.Run{}, fmt.Errorf("write input: %w", err)
	}
	if err := os.WriteFile(envPath, []byte(env), 0600); err != nil {
		return dao.Run{}, fmt.Errorf("write env: %w", err)
	}

	task := fixgo.FixTaskInfo{InputName: inputPath, EnvName: envPath, MaxLen: maxLen, MaxNewID: maxNewID}

	var results []fixgo.FixResult
	switch lang {
	case "c":
		results = clike.Fix([]fixgo.FixTaskInfo{task})
	case "mj":
		results = mjlike.Fix([]fixgo.FixTaskInfo{task})
	default:
		return dao.Run{}, fmt.Errorf("unknown lang %q", lang)
	}

	r := results[0]
	run := dao.Run{Lang: lang, MaxLen: maxLen, Submitted: time.Now()}
	if r.Err != nil {
		run.FoundLength = -1
		run.Err = r.Err.Error()
		return run, nil
	}
	run.FoundLength = r.Result.FoundLength
	run.Originals = r.Result.Originals
	run.Outputs = r.Result.Outputs
	return run, nil
}
