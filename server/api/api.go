// Package api provides the HTTP handlers for fixgod's run-history API,
// mounted under PathPrefix by server.Server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/fixgo/server/dao"
	"github.com/dekarrin/fixgo/server/result"
	"github.com/dekarrin/fixgo/server/serr"
)

// PathPrefix is the prefix of every route in the API.
const PathPrefix = "/api/v1"

// Runner executes one fix task against lang's frontend and returns its
// outcome as a Run ready to persist. server.Server supplies the concrete
// implementation so this package never has to import a language frontend.
type Runner interface {
	Run(lang, tokens, env string, maxLen, maxNewID int) (dao.Run, error)
}

// API holds the dependencies every handler needs: a place to persist runs,
// something to execute them, and the timing/signing parameters shared with
// the auth middleware.
type API struct {
	Runs        dao.RunRepository
	Exec        Runner
	UnauthDelay time.Duration
}

// parseJSON decodes req's JSON body into v, which must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}
	return nil
}

// EndpointFunc is the handler shape every /runs endpoint is written as:
// given a request, produce the Result to send back.
type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(unauthDelay time.Duration, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		if r.Status == 0 {
			logHTTPResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(r.Status, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			newResp.WriteResponse(w)
			return
		}

		if r.IsErr {
			logHTTPResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHTTPResponse("INFO", req, r.Status, r.InternalMsg)
		}

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden || r.Status == http.StatusInternalServerError {
			time.Sleep(unauthDelay)
		}

		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		result.InternalServerError(
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).WriteResponse(w)
	}
}

func logHTTPResponse(level string, req *http.Request, respStatus int, msg string) {
	for len(level) < 5 {
		level += " "
	}
	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
