package server

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/inetis-oss/autocomplete/internal/logger"
	"github.com/inetis-oss/autocomplete/pkg/config"
	"github.com/inetis-oss/autocomplete/pkg/search"
)

// Server answers completion requests read from stdin over msgpack, one at a
// time, writing one response per request to stdout.
type Server struct {
	engine *search.Engine
	cfg    *config.Config
	log    *log.Logger

	decoder      *msgpack.Decoder
	writeMutex   sync.Mutex
	requestCount int64
}

// New creates a server bound to engine, shaping requests per cfg.Server.
func New(engine *search.Engine, cfg *config.Config) *Server {
	l := logger.Default("server")
	l.SetOutput(os.Stderr) // stdout carries only msgpack responses
	return &Server{
		engine:  engine,
		cfg:     cfg,
		log:     l,
		decoder: msgpack.NewDecoder(os.Stdin),
	}
}

// Start reads requests until stdin is closed (io.EOF). Any other error,
// whether from decoding a request or from encoding/writing a response, is
// logged and the loop goes on; a request that fails to decode gets no reply.
func (s *Server) Start() error {
	s.log.Debug("starting msgpack completion server")

	for {
		if err := s.processRequest(); err != nil {
			if err == io.EOF {
				s.log.Debug("client disconnected")
				return nil
			}
			s.log.Warnf("request error: %v", err)
		}
		s.requestCount++
	}
}

func (s *Server) processRequest() error {
	var request CompletionRequest
	s.log.Debug("waiting for request...")
	if err := s.decoder.Decode(&request); err != nil {
		return err
	}

	s.log.Debugf("received completion request: prefix=%q limit=%d", request.Prefix, request.Limit)

	if request.Prefix == "" {
		return s.sendError(request.ID, "empty prefix", 400)
	}
	if len(request.Prefix) > s.cfg.Server.MaxQueryLen {
		return s.sendError(request.ID, fmt.Sprintf("prefix too long (max: %d)", s.cfg.Server.MaxQueryLen), 400)
	}

	limit := request.Limit
	if limit <= 0 {
		limit = s.cfg.CLI.DefaultResults
	}
	if limit > s.cfg.Server.MaxResults {
		limit = s.cfg.Server.MaxResults
	}

	start := time.Now()
	words := s.engine.Autocomplete(request.Prefix, limit)
	elapsed := time.Since(start)

	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w, Rank: uint16(i + 1)}
	}

	return s.sendResponse(&CompletionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// sendResponse encodes into a buffer first so a partial write can never
// reach the client - stdout is shared with nothing else, but a torn frame
// would be unrecoverable either way.
func (s *Server) sendResponse(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(response); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(&CompletionError{ID: id, Error: message, Code: code})
}
