// Command unoctl is a terminal client for the UNO game server. It drives
// the REST API: start a game in a chat session, join players, play and
// draw cards, and inspect status and win rankings.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"

	"github.com/TakatsuMeow/voxuno/game/engine"
	"github.com/TakatsuMeow/voxuno/game/service"
)

func main() {
	cmd := &cli.Command{
		Name:  "unoctl",
		Usage: "play UNO against a running game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "base URL of the game server",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("UNO_SERVER"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "start a new game in a chat session",
				ArgsUsage: "<session>",
				Action:    withSession(runStart),
			},
			{
				Name:      "join",
				Usage:     "join the pending game",
				ArgsUsage: "<session> <player>",
				Action:    withSessionPlayer(runJoin),
			},
			{
				Name:      "begin",
				Usage:     "deal hands and flip the first card",
				ArgsUsage: "<session>",
				Action:    withSession(runBegin),
			},
			{
				Name:      "play",
				Usage:     `play a card, e.g. unoctl play chat-1 alice "red 7"`,
				ArgsUsage: "<session> <player> <card>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "declare",
						Usage: "color to declare when playing a wild card",
					},
				},
				Action: runPlay,
			},
			{
				Name:      "draw",
				Usage:     "draw one card and pass the turn",
				ArgsUsage: "<session> <player>",
				Action:    withSessionPlayer(runDraw),
			},
			{
				Name:      "hand",
				Usage:     "show your hand",
				ArgsUsage: "<session> <player>",
				Action:    withSessionPlayer(runHand),
			},
			{
				Name:      "status",
				Usage:     "show whose turn it is, the current color, and the top card",
				ArgsUsage: "<session>",
				Action:    withSession(runStatus),
			},
			{
				Name:      "top",
				Usage:     "show the win ranking for a chat session",
				ArgsUsage: "<session>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "n", Usage: "how many winners to show", Value: 10},
				},
				Action: withSession(runTop),
			},
			{
				Name:      "reset",
				Usage:     "abandon the current game",
				ArgsUsage: "<session>",
				Action:    withSession(runReset),
			},
			{
				Name:   "sessions",
				Usage:  "list live sessions",
				Action: runSessions,
			},
			{
				Name:   "rules",
				Usage:  "list rules presets",
				Action: runRules,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// withSession wraps an action that needs exactly a session argument.
func withSession(run func(*apiClient, string, *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		session := cmd.Args().First()
		if session == "" {
			return fmt.Errorf("session ID is required")
		}
		return run(newAPIClient(cmd), session, cmd)
	}
}

// withSessionPlayer wraps an action that needs session and player arguments.
func withSessionPlayer(run func(*apiClient, string, string) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		session, player := cmd.Args().Get(0), cmd.Args().Get(1)
		if session == "" || player == "" {
			return fmt.Errorf("session ID and player name are required")
		}
		return run(newAPIClient(cmd), session, player)
	}
}

// Actions

func runStart(c *apiClient, session string, _ *cli.Command) error {
	var info service.SessionInfo
	if err := c.call("POST", "/api/sessions/"+session, nil, &info); err != nil {
		return err
	}
	pterm.Success.Printfln("New game in %s (rules: %s). Join players, then begin.", info.ID, info.RulesName)
	return nil
}

func runJoin(c *apiClient, session, player string) error {
	var result service.JoinResult
	body := map[string]string{"player": player}
	if err := c.call("POST", "/api/sessions/"+session+"/players", body, &result); err != nil {
		return err
	}
	pterm.Success.Printfln("%s joined %s (%d players in).", result.Player, result.SessionID, result.Players)
	return nil
}

func runBegin(c *apiClient, session string, _ *cli.Command) error {
	var result engine.BeginResult
	if err := c.call("POST", "/api/sessions/"+session+"/begin", nil, &result); err != nil {
		return err
	}
	pterm.Success.Printfln("Game on! First card: %s (color %s).", renderCard(result.TopCard), renderColor(result.Color))
	pterm.Info.Printfln("%s goes first.", result.First)
	return nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	session, player, card := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)
	if session == "" || player == "" || card == "" {
		return fmt.Errorf("session, player, and card are required")
	}

	body := map[string]string{"player": player, "card": card}
	if declare := cmd.String("declare"); declare != "" {
		body["declared_color"] = declare
	}

	c := newAPIClient(cmd)
	var result engine.PlayResult
	if err := c.call("POST", "/api/sessions/"+session+"/play", body, &result); err != nil {
		return err
	}

	pterm.Success.Printfln("%s played %s.", player, renderCard(result.Card))
	if result.Card.Color == engine.Wild {
		pterm.Info.Printfln("Color is now %s.", renderColor(result.Color))
	}
	if result.Victim != "" {
		pterm.Info.Printfln("%s draws %d cards and is skipped.", result.Victim, result.VictimDrew)
	}
	if result.Victory {
		pterm.DefaultBox.WithTitle("WINNER").Println(fmt.Sprintf("%s wins the game!", player))
		return nil
	}
	pterm.Info.Printfln("%s is next.", result.Next)
	return nil
}

func runDraw(c *apiClient, session, player string) error {
	var result engine.DrawResult
	body := map[string]string{"player": player}
	if err := c.call("POST", "/api/sessions/"+session+"/draw", body, &result); err != nil {
		return err
	}
	pterm.Success.Printfln("%s drew %s.", player, renderCard(result.Card))
	if result.Reshuffled {
		pterm.Info.Println("The pile was reshuffled into a fresh deck.")
	}
	pterm.Info.Printfln("%s is next.", result.Next)
	return nil
}

func runHand(c *apiClient, session, player string) error {
	var response struct {
		Player string        `json:"player"`
		Cards  []engine.Card `json:"cards"`
	}
	path := "/api/sessions/" + session + "/hand?player=" + url.QueryEscape(player)
	if err := c.call("GET", path, nil, &response); err != nil {
		return err
	}

	rendered := make([]string, len(response.Cards))
	for i, card := range response.Cards {
		rendered[i] = renderCard(card)
	}
	pterm.DefaultBox.
		WithTitle(fmt.Sprintf("%s (%d cards)", response.Player, len(response.Cards))).
		Println(joinCards(rendered))
	return nil
}

func runStatus(c *apiClient, session string, _ *cli.Command) error {
	var status service.StatusInfo
	if err := c.call("GET", "/api/sessions/"+session, nil, &status); err != nil {
		return err
	}

	if !status.Started {
		pterm.Info.Printfln("Session %s: waiting for players (%d joined).", status.SessionID, status.Players)
		return nil
	}

	data := [][]string{
		{"Session", status.SessionID},
		{"Players", fmt.Sprintf("%d", status.Players)},
		{"Turn", status.CurrentPlayer},
		{"Color", renderColor(status.CurrentColor)},
	}
	if status.TopCard != nil {
		data = append(data, []string{"Top card", renderCard(*status.TopCard)})
	}
	return pterm.DefaultTable.WithData(data).Render()
}

func runTop(c *apiClient, session string, cmd *cli.Command) error {
	var response struct {
		Winners []service.WinnerEntry `json:"winners"`
	}
	path := fmt.Sprintf("/api/sessions/%s/top?n=%d", session, cmd.Int("n"))
	if err := c.call("GET", path, nil, &response); err != nil {
		return err
	}

	if len(response.Winners) == 0 {
		pterm.Info.Printfln("No wins recorded in %s yet.", session)
		return nil
	}

	data := [][]string{{"#", "Player", "Wins"}}
	for i, w := range response.Winners {
		data = append(data, []string{fmt.Sprintf("%d", i+1), w.Player, fmt.Sprintf("%d", w.Wins)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runReset(c *apiClient, session string, _ *cli.Command) error {
	if err := c.call("DELETE", "/api/sessions/"+session, nil, nil); err != nil {
		return err
	}
	pterm.Success.Printfln("Session %s reset.", session)
	return nil
}

func runSessions(ctx context.Context, cmd *cli.Command) error {
	c := newAPIClient(cmd)
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.call("GET", "/api/sessions", nil, &response); err != nil {
		return err
	}

	if response.Count == 0 {
		pterm.Info.Println("No live sessions.")
		return nil
	}

	data := [][]string{{"Session", "Players", "Phase", "Rules", "Last active"}}
	for _, s := range response.Sessions {
		phase := "lobby"
		if s.Started {
			phase = "playing"
		}
		data = append(data, []string{
			s.ID,
			fmt.Sprintf("%d", s.Players),
			phase,
			s.RulesName,
			s.LastActive.Format("2006-01-02 15:04"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runRules(ctx context.Context, cmd *cli.Command) error {
	c := newAPIClient(cmd)
	var rules []service.RulesInfo
	if err := c.call("GET", "/api/rules", nil, &rules); err != nil {
		return err
	}

	data := [][]string{{"Preset", "Hand", "Min players", "Description"}}
	for _, r := range rules {
		data = append(data, []string{
			r.Name,
			fmt.Sprintf("%d", r.HandSize),
			fmt.Sprintf("%d", r.MinPlayers),
			r.Description,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// apiClient is a small HTTP client for the server's REST API.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(cmd *cli.Command) *apiClient {
	return &apiClient{
		baseURL: cmd.Root().String("server"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *apiClient) call(method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
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
		return fmt.Errorf("server error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}
