package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":      "chat-1",
		"players": float64(2),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no active game in this session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/ghost", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if err.Error() != "no active game in this session" {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func TestClient_apiCall_HTTPErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 500 response")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestClient_handleStart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/chat-42" {
			t.Errorf("Expected POST /api/sessions/chat-42, got %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.SessionInfo{ID: "chat-42", RulesName: "classic"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleStart(context.Background(),
		toolRequest("uno_start", map[string]interface{}{"session_id": "chat-42"}))
	if err != nil {
		t.Fatalf("handleStart failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "chat-42") || !strings.Contains(text, "classic") {
		t.Errorf("Expected session and rules in result, got: %s", text)
	}
}

func TestClient_handlePlay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/chat-1/play" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["card"] != "red +2" {
			t.Errorf("Expected card 'red +2', got %q", body["card"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(engine.PlayResult{
			Card:       engine.Card{Color: engine.Red, Rank: engine.DrawTwo},
			Color:      engine.Red,
			Victim:     "bob",
			VictimDrew: 2,
			Next:       "carol",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handlePlay(context.Background(), toolRequest("uno_play", map[string]interface{}{
		"session_id": "chat-1",
		"player":     "alice",
		"card":       "red +2",
	}))
	if err != nil {
		t.Fatalf("handlePlay failed: %v", err)
	}

	text := textContent(t, result)
	for _, want := range []string{"alice played red +2", "bob draws 2 cards", "carol is next"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_handlePlay_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "not your turn"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handlePlay(context.Background(), toolRequest("uno_play", map[string]interface{}{
		"session_id": "chat-1",
		"player":     "bob",
		"card":       "blue 9",
	}))
	if err != nil {
		t.Fatalf("handlePlay returned a transport error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("Expected a tool error result")
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(),
		toolRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := textContent(t, result)
	for _, want := range []string{"OBJECTIVE", "108 cards", "SPECIAL CARDS", "WINNING"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in instructions", want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	top := engine.Card{Color: engine.Green, Rank: "4"}

	t.Run("pending game", func(t *testing.T) {
		text := formatStatus(&service.StatusInfo{SessionID: "chat-1", Players: 1})
		if !strings.Contains(text, "waiting for players") {
			t.Errorf("Expected pending phrasing, got: %s", text)
		}
	})

	t.Run("running game", func(t *testing.T) {
		text := formatStatus(&service.StatusInfo{
			SessionID:     "chat-1",
			Players:       3,
			Started:       true,
			CurrentPlayer: "bob",
			CurrentColor:  engine.Green,
			TopCard:       &top,
		})
		for _, want := range []string{"green 4", "Current color: green", "bob's turn"} {
			if !strings.Contains(text, want) {
				t.Errorf("Expected %q in status, got: %s", want, text)
			}
		}
	})
}

func TestFormatPlayResult_VictoryAndWild(t *testing.T) {
	t.Run("victory", func(t *testing.T) {
		text := formatPlayResult("alice", &engine.PlayResult{
			Card:    engine.Card{Color: engine.Red, Rank: "5"},
			Color:   engine.Red,
			Victory: true,
		})
		if !strings.Contains(text, "alice wins the game!") {
			t.Errorf("Expected victory line, got: %s", text)
		}
	})

	t.Run("wild declares color", func(t *testing.T) {
		text := formatPlayResult("alice", &engine.PlayResult{
			Card:  engine.Card{Color: engine.Wild, Rank: engine.WildCard},
			Color: engine.Blue,
			Next:  "bob",
		})
		if !strings.Contains(text, "Color is now blue") {
			t.Errorf("Expected declared color line, got: %s", text)
		}
	})
}
