// Package cli provides an interactive shell and a fixed-query demo mode for
// exercising the autocomplete engine from a terminal.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inetis-oss/autocomplete/internal/logger"
	"github.com/inetis-oss/autocomplete/pkg/search"
)

// demoQueries reproduces the reference implementation's own smoke test: a
// handful of typo'd and clean queries against a city dictionary.
var demoQueries = []string{
	"nw yr",
	"Lis Agnel    ",
	"   hust",
	"slvenj g",
	"cpenh",
	"smarje",
	"fucking",
	"frugle",
}

// InputHandler drives a read-eval-print loop over an Engine.
type InputHandler struct {
	engine       *search.Engine
	log          *log.Logger
	maxQueryLen  int
	suggestLimit int
	requestCount int
}

// NewInputHandler builds a handler bound to engine.
func NewInputHandler(engine *search.Engine, maxQueryLen, limit int) *InputHandler {
	return &InputHandler{
		engine:       engine,
		log:          logger.Default("cli"),
		maxQueryLen:  maxQueryLen,
		suggestLimit: limit,
	}
}

// Start begins the interactive loop, prompting for one query per line until
// stdin is closed.
func (h *InputHandler) Start() error {
	h.log.Print("autocomplete CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a query and press Enter to see suggestions (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimRight(query, "\n")
		if strings.TrimSpace(query) == "" {
			continue
		}
		h.handleQuery(query)
	}
}

// RunDemo runs the fixed reference query list once and prints its results.
func (h *InputHandler) RunDemo() {
	for _, q := range demoQueries {
		fmt.Printf("%s\n========\n", q)
		for i, s := range h.engine.Autocomplete(q, h.suggestLimit) {
			fmt.Printf("%2d. %s\n", i+1, s)
		}
		fmt.Printf("========\n\n")
	}
}

func (h *InputHandler) handleQuery(query string) {
	h.requestCount++

	if len(query) > h.maxQueryLen {
		h.log.Errorf("query too long: %s", query)
		return
	}

	start := time.Now()
	suggestions := h.engine.Autocomplete(query, h.suggestLimit)
	elapsed := time.Since(start)

	h.log.Debugf("took %v for query %q", elapsed, query)

	if len(suggestions) == 0 {
		h.log.Warnf("no suggestions found for query: %q", query)
		return
	}

	h.log.Printf("found %d suggestions for query %q:", len(suggestions), query)
	for i, s := range suggestions {
		colored := fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
		h.log.Printf("%2d. %s", i+1, colored)
	}
}
