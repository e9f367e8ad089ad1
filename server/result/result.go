// Package result contains the response value used by every fixgod API
// handler, kept separate from the handlers themselves so the HTTP status,
// JSON body, and internal log message are always assembled together.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// OK returns a Result containing an HTTP-200.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	internalMsgFmt := "OK"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return Response(http.StatusOK, respObj, internalMsgFmt, msgArgs...)
}

// Created returns a Result containing an HTTP-201.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	internalMsgFmt := "created"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return Response(http.StatusCreated, respObj, internalMsgFmt, msgArgs...)
}

// BadRequest returns a Result containing an HTTP-400.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt := "bad request"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return Err(http.StatusBadRequest, userMsg, internalMsgFmt, msgArgs...)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	internalMsgFmt := "not found"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return Err(http.StatusNotFound, "The requested resource was not found", internalMsgFmt, msgArgs...)
}

// Unauthorized returns a Result containing an HTTP-401 along with the
// WWW-Authenticate header a bearer-token client expects.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt := "unauthorized"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return Err(http.StatusUnauthorized, userMsg, internalMsgFmt, msgArgs...).
		WithHeader("WWW-Authenticate", `Bearer realm="fixgod"`)
}

// MethodNotAllowed returns a Result containing an HTTP-405.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	internalMsgFmt := "method not allowed"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, internalMsgFmt, msgArgs...)
}

// InternalServerError returns a Result containing an HTTP-500.
func InternalServerError(internalMsg ...interface{}) Result {
	internalMsgFmt := "internal server error"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMsgFmt, msgArgs...)
}

// Response builds a successful Result. If status is http.StatusNoContent,
// respObj is ignored and may be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: msg,
		resp:        respObj,
	}
}

// Err builds a failing Result whose body is an ErrorResponse carrying
// userMsg.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Result is the return value of every API handler: the HTTP status and JSON
// body to send, plus an InternalMsg used only for logging.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	respJSONBytes []byte
}

func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = append([][2]string{}, r.hdrs...)
	cp.hdrs = append(cp.hdrs, [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals resp to JSON ahead of WriteResponse, so
// a marshal failure can be reported as its own error rather than panicking
// mid-write.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}
	if r.IsJSON && r.Status != http.StatusNoContent {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}
	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	w.WriteHeader(r.Status)
	if r.Status != http.StatusNoContent {
		w.Write(r.respJSONBytes)
	}
}
