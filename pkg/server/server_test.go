package server

import (
	"testing"

	"github.com/inetis-oss/autocomplete/pkg/config"
	"github.com/inetis-oss/autocomplete/pkg/keyboard"
	"github.com/inetis-oss/autocomplete/pkg/search"
	"github.com/inetis-oss/autocomplete/pkg/trie"
)

func buildTestEngine(t *testing.T) *search.Engine {
	t.Helper()
	tr := trie.New()
	for word, weight := range map[string]float64{
		"houston": 2300,
		"dallas":  1300,
	} {
		if err := tr.Add(word, weight); err != nil {
			t.Fatalf("Add(%q): %v", word, err)
		}
	}
	if err := tr.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return search.New(tr, keyboard.NewDefault())
}

func TestNewServerHoldsEngineAndConfig(t *testing.T) {
	engine := buildTestEngine(t)
	cfg := config.DefaultConfig()

	srv := New(engine, cfg)
	if srv.engine != engine {
		t.Error("New did not store the engine")
	}
	if srv.cfg != cfg {
		t.Error("New did not store the config")
	}
}

func TestSendErrorEncodesWithoutPanicking(t *testing.T) {
	engine := buildTestEngine(t)
	srv := New(engine, config.DefaultConfig())

	if err := srv.sendError("req1", "bad request", 400); err != nil {
		t.Fatalf("sendError: %v", err)
	}
}

func TestSendResponseEncodesWithoutPanicking(t *testing.T) {
	engine := buildTestEngine(t)
	srv := New(engine, config.DefaultConfig())

	resp := &CompletionResponse{
		ID:          "req1",
		Suggestions: []CompletionSuggestion{{Word: "houston", Rank: 1}},
		Count:       1,
		TimeTaken:   42,
	}
	if err := srv.sendResponse(resp); err != nil {
		t.Fatalf("sendResponse: %v", err)
	}
}
