package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"VoxUNO",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`VoxUNO - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Classic UNO. Empty your hand first. Match the top card by color or rank;
wild cards always match but require declaring a color.

AVAILABLE TOOLS:
- uno_start: Create a new game in a chat session
- uno_join: Join the pending game as a player
- uno_begin: Deal hands and flip the first card
- uno_play: Play a card from your hand (e.g. "red 7", "wild4")
- uno_draw: Draw one card and pass the turn
- uno_hand: See your own hand
- uno_status: Whose turn, current color, top card
- uno_top: Win ranking for the chat
- uno_reset: Abandon the current game
- list_sessions: List all active sessions
- list_rules: List available rules presets
- game_instructions: Full rules reference

One session maps to one chat; use the chat ID as session_id everywhere.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionIDProp := map[string]interface{}{
		"type":        "string",
		"description": "Chat session ID",
	}
	playerProp := map[string]interface{}{
		"type":        "string",
		"description": "Player name",
	}

	// Session lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_start",
		Description: "Create a new UNO game in a chat session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleStart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_reset",
		Description: "Abandon the current game in a chat session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_join",
		Description: "Join the pending game in a chat session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"player":     playerProp,
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handleJoin)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_begin",
		Description: "Deal hands and flip the first card; the game starts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleBegin)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_play",
		Description: "Play a card from your hand",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"player":     playerProp,
				"card": map[string]interface{}{
					"type":        "string",
					"description": `Card to play, e.g. "red 7", "green +2", "blue skip", "wild", "wild4"`,
				},
				"declared_color": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"red", "green", "blue", "yellow"},
					"description": "Color to declare when playing a wild card",
				},
			},
			Required: []string{"session_id", "player", "card"},
		},
	}, c.handlePlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_draw",
		Description: "Draw one card from the deck and pass the turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"player":     playerProp,
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handleDraw)

	// Reads
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_hand",
		Description: "See your own hand. Other players' hands are never shown.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"player":     playerProp,
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handleHand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_status",
		Description: "Current turn, color to match, and top card",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "uno_top",
		Description: "Win ranking for the chat session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"n": map[string]interface{}{
					"type":        "integer",
					"description": "How many winners to show (default 10)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTopWinners)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rules",
		Description: "List available rules presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRules)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full rules reference",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.SessionInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("New game created in session %s (rules: %s).\nPlayers can join now; begin when everyone is in.", info.ID, info.RulesName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response map[string]string
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["message"]), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := "waiting for players"
		if s.Started {
			phase = "in progress"
		}
		fmt.Fprintf(&sb, "- %s: %d players, %s (rules: %s, last active %s)\n",
			s.ID, s.Players, phase, s.RulesName, s.LastActive.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleJoin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(string)

	var result service.JoinResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/players", sessionID),
		map[string]string{"player": player}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s joined session %s (%d players in).",
		result.Player, result.SessionID, result.Players)), nil
}

func (c *Client) handleBegin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result engine.BeginResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/begin", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Game on! First card: %s (color %s). %s goes first.",
		result.TopCard, result.Color, result.First)), nil
}

func (c *Client) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(string)
	card, _ := args["card"].(string)
	declared, _ := args["declared_color"].(string)

	body := map[string]string{"player": player, "card": card}
	if declared != "" {
		body["declared_color"] = declared
	}

	var result engine.PlayResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/play", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlayResult(player, &result)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(string)

	var result engine.DrawResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/draw", sessionID),
		map[string]string{"player": player}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := fmt.Sprintf("%s drew %s.", player, result.Card)
	if result.Reshuffled {
		msg += " The pile was reshuffled into a fresh deck."
	}
	msg += fmt.Sprintf(" %s is next.", result.Next)
	return mcp.NewToolResultText(msg), nil
}

func (c *Client) handleHand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(string)

	var response struct {
		Player string   `json:"player"`
		Hand   []string `json:"hand"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/hand?player=%s", sessionID, player), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s's hand (%d): %s",
		response.Player, len(response.Hand), strings.Join(response.Hand, ", "))), nil
}

func (c *Client) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var status service.StatusInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStatus(&status)), nil
}

func (c *Client) handleTopWinners(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/top", sessionID)
	if n, ok := args["n"].(float64); ok {
		path += fmt.Sprintf("?n=%d", int(n))
	}

	var response struct {
		SessionID string                `json:"session_id"`
		Winners   []service.WinnerEntry `json:"winners"`
	}
	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Winners) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No wins recorded in session %s yet.", sessionID)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Top winners in %s:\n", sessionID)
	for i, w := range response.Winners {
		fmt.Fprintf(&sb, "%d. %s - %d wins\n", i+1, w.Player, w.Wins)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleListRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var rules []service.RulesInfo
	err := c.apiCall("GET", "/api/rules", nil, &rules)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available rules presets:\n\n")
	for _, r := range rules {
		fmt.Fprintf(&sb, "- %s: hand size %d, min players %d. %s\n",
			r.Name, r.HandSize, r.MinPlayers, r.Description)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `VoxUNO - Complete Rules

OBJECTIVE:
Be the first player to empty your hand.

THE DECK (108 cards):
Per color (red, green, blue, yellow): one 0, two each of 1-9, two skips,
two reverses, two +2s. Plus four wild and four wild4 cards.

MATCHING:
A card is playable if its color matches the current color, its rank
matches the top card's rank, or it is a wild. After a wild you must
declare the color that play continues on.

SPECIAL CARDS:
- skip: the next player loses their turn
- reverse: play direction flips (with 2 players it acts as a skip)
- +2: the next player draws 2 cards and loses their turn
- wild: declare the color play continues on
- wild4: declare the color; the next player draws 4 and loses their turn

DRAWING:
If you cannot (or do not want to) play, draw one card; your turn ends.
When the deck runs out, the pile except its top card is reshuffled into
a fresh deck.

WINNING:
Playing your last card wins immediately and ends the game for the chat.
Wins are tallied per chat; check the ranking with uno_top.

COMMANDS:
uno_start -> uno_join (each player) -> uno_begin -> alternate uno_play /
uno_draw until someone wins. uno_hand and uno_status at any time.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatStatus(status *service.StatusInfo) string {
	if !status.Started {
		return fmt.Sprintf("Session %s: waiting for players (%d joined).", status.SessionID, status.Players)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Session %s: game in progress with %d players.\n", status.SessionID, status.Players)
	if status.TopCard != nil {
		fmt.Fprintf(&sb, "Top card: %s\n", status.TopCard)
	}
	fmt.Fprintf(&sb, "Current color: %s\n", status.CurrentColor)
	fmt.Fprintf(&sb, "It is %s's turn.", status.CurrentPlayer)
	return sb.String()
}

func formatPlayResult(player string, result *engine.PlayResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s played %s.", player, result.Card)
	if result.Card.Color == engine.Wild {
		fmt.Fprintf(&sb, " Color is now %s.", result.Color)
	}
	if result.Victim != "" {
		fmt.Fprintf(&sb, " %s draws %d cards and is skipped.", result.Victim, result.VictimDrew)
	}
	if result.Victory {
		fmt.Fprintf(&sb, "\n%s wins the game!", player)
		return sb.String()
	}
	fmt.Fprintf(&sb, " %s is next.", result.Next)
	return sb.String()
}
