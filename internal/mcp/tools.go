package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(takeActionTool(), handleTakeAction)
	s.AddTool(chooseColorTool(), handleChooseColor)
	s.AddTool(sayUnoTool(), handleSayUno)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new UNO game against bot opponents. Returns the events up to the first "+
			"decision at your seat. Available opponents: "+strings.Join(bot.Names(), ", ")+"."),
		mcp.WithString("opponents", mcp.Required(), mcp.Description("Space-separated opponent strategy names (e.g. 'random hoarder')")),
		mcp.WithNumber("seat", mcp.Description("Your seat index, 0-based (default 0; seat 0 acts first)")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible game (default random)")),
		mcp.WithBoolean("stacking", mcp.Description("Allow answering a DrawTwo/WildDrawFour with another draw card")),
		mcp.WithBoolean("uno_penalty", mcp.Description("Penalize a missed UNO call with 4 cards")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Use this when the pending decision type is 'choose_action'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func chooseColorTool() mcp.Tool {
	return mcp.NewTool("choose_color",
		mcp.WithDescription("Pick the color for a wild card you just played. Use this when the pending decision type is 'choose_color'."),
		mcp.WithString("color", mcp.Required(), mcp.Description("One of: Red, Yellow, Green, Blue")),
	)
}

func sayUnoTool() mcp.Tool {
	return mcp.NewTool("say_uno",
		mcp.WithDescription("Answer whether you call UNO on reaching one card. Use this when the pending decision type is 'say_uno'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true to call UNO")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get accumulated events and the pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	opponents := strings.Fields(request.GetString("opponents", ""))
	if len(opponents) == 0 {
		return mcp.NewToolResultError("opponents must name at least one strategy"), nil
	}

	sess, err := NewGameSession(SessionOptions{
		Opponents:  opponents,
		Seat:       request.GetInt("seat", 0),
		Seed:       int64(request.GetInt("seed", 0)),
		Stacking:   request.GetBool("stacking", false),
		UnoPenalty: request.GetBool("uno_penalty", false),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp := sess.waitForPending()
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := pendingOfType(DecisionChooseAction)
	if res != nil {
		return res, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(sess.currentPending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(sess.currentPending.Actions)-1), nil
	}

	sess.strategy.responseCh <- ActionResponse{Index: index}
	return finishTurn(sess), nil
}

func handleChooseColor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := pendingOfType(DecisionChooseColor)
	if res != nil {
		return res, nil
	}

	color, ok := game.ParseColor(request.GetString("color", ""))
	if !ok {
		return mcp.NewToolResultError("color must be one of: Red, Yellow, Green, Blue"), nil
	}

	sess.strategy.responseCh <- ColorResponse{Color: color}
	return finishTurn(sess), nil
}

func handleSayUno(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := pendingOfType(DecisionSayUno)
	if res != nil {
		return res, nil
	}

	sess.strategy.responseCh <- UnoResponse{Answer: request.GetBool("answer", false)}
	return finishTurn(sess), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	resp := &ToolResponse{Events: sess.drainEvents()}
	if resp.Events == nil {
		resp.Events = []EventView{}
	}

	sess.mu.Lock()
	resp.GameOver = sess.gameOver
	resp.Result = sess.result
	if sess.outcome != nil {
		resp.Winner = sess.outcome.Winner
		resp.WinnerName = sess.outcome.WinnerName
	}
	sess.mu.Unlock()

	if pending := sess.currentPending; pending != nil && pending.Type != DecisionGameOver {
		resp.State = pending.State
		resp.Pending = &PendingView{
			Type:    pending.Type,
			Actions: pending.Actions,
			Prompt:  pending.Prompt,
		}
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingOfType checks that a game is running and waiting on the given
// decision type. A non-nil result is the error to return to the caller.
func pendingOfType(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, nil
}

// finishTurn waits for the next decision after a response was submitted.
func finishTurn(sess *GameSession) *mcp.CallToolResult {
	resp := sess.waitForPending()
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp))
}
