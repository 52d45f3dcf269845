package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tofms-review/internal/config"
	"github.com/ironsheep/tofms-review/internal/imaging"
	"github.com/ironsheep/tofms-review/internal/roi"
	"github.com/ironsheep/tofms-review/internal/signal"
)

// Version is reported in the initialize handshake.
var Version = "dev"

// Server handles JSON-RPC communication with the review client.
type Server struct {
	cfg   *config.Config
	log   zerolog.Logger
	cache *imaging.ImageCache

	mu        sync.Mutex
	series    map[string]*signal.Series
	selectors map[string]*roi.Selector
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server using cfg for session defaults. A nil cfg means
// config.Default().
func New(cfg *config.Config, log zerolog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		cfg:       cfg,
		log:       log,
		cache:     imaging.NewImageCache(),
		series:    make(map[string]*signal.Series),
		selectors: make(map[string]*roi.Selector),
	}
}

// Run serves requests from stdin and writes responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r until EOF, answering on w
// in request order.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.log.Debug().Str("method", req.Method).Interface("id", req.ID).Msg("request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "tofms-review",
				"version": Version,
			},
		},
	}
}

// loadSeries parses path once and serves later calls from memory.
func (s *Server) loadSeries(path string) (*signal.Series, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ser, ok := s.series[path]; ok {
		return ser, nil
	}
	ser, err := signal.Load(path)
	if err != nil {
		return nil, err
	}
	s.series[path] = ser
	return ser, nil
}

// selector returns the capture state machine for an image, creating it on
// first use.
func (s *Server) selector(path string) *roi.Selector {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.selectors[path]
	if !ok {
		sel = roi.NewSelector()
		s.selectors[path] = sel
	}
	return sel
}

// resetSelector discards the capture for an image.
func (s *Server) resetSelector(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selectors, path)
}
