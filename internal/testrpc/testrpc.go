// Package testrpc is a minimal fake JSON-RPC node for unit tests. It
// answers the handful of eth_* methods the SDK issues, with per-method
// handlers registered by the test.
package testrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RPCError is a JSON-RPC error object. Data carries the ABI-encoded revert
// output, matching how execution-client nodes report reverted calls.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Handler answers one JSON-RPC method. Returning a non-nil *RPCError makes
// the response an error response.
type Handler func(params []json.RawMessage) (interface{}, *RPCError)

type request struct {
	Version string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// response always carries an explicit result member on success; a handler
// returning nil yields "result": null, which is how nodes report a receipt
// that is not available yet.
type response struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// Server is a fake node backed by httptest.
type Server struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string]int
	srv      *httptest.Server
}

func New() *Server {
	s := &Server{
		handlers: make(map[string]Handler),
		calls:    make(map[string]int),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers the handler for a JSON-RPC method name.
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Calls reports how many times a method has been invoked.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// URL returns the endpoint to dial.
func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	h, ok := s.handlers[req.Method]
	s.calls[req.Method]++
	s.mu.Unlock()

	resp := response{Version: "2.0", ID: req.ID}
	if !ok {
		resp.Error = &RPCError{Code: -32601, Message: "method not found: " + req.Method}
	} else {
		result, rpcErr := h(req.Params)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
