// Command arthneeti runs a single scripted playthrough of the Arth-Neeti
// game engine core against a local SQLite database — the smoke-test
// driver for the simulation kernel in internal/engine. It wires every
// collaborator (store, scenario selector, LLM advisor/report/scenario
// clients, entropy seed source) the way a real HTTP server would, then
// plays a demo user through the deck automatically, always taking the
// recommended choice, until the session ends. The HTTP/session-cookie
// surface itself is out of scope for this core; see internal/auth's doc
// comment.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/yuin/goldmark"

	"github.com/arthneeti/engine/internal/auth"
	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/engine"
	"github.com/arthneeti/engine/internal/entropy"
	"github.com/arthneeti/engine/internal/forecast"
	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/scenario"
	"github.com/arthneeti/engine/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading environment directly")
	}

	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := os.Getenv("ARTHNEETI_DB_PATH")
	if dbPath == "" {
		dbPath = "arthneeti.db"
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	slog.Info("store opened", "path", dbPath)

	entropyClient := entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY"))
	if entropyClient.Enabled() {
		slog.Info("entropy: using random.org")
	} else {
		slog.Info("entropy: no RANDOM_ORG_API_KEY set, falling back to crypto/rand")
	}
	root := rand.New(rand.NewSource(entropy.Seed(entropyClient)))

	llmClient := llm.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if llmClient.Enabled() {
		slog.Info("llm: model collaborators enabled")
	} else {
		slog.Info("llm: no ANTHROPIC_API_KEY set, using deterministic fallbacks")
	}

	advisor := llm.NewAdvisor(llmClient, rand.New(rand.NewSource(root.Int63())))
	reportGen := llm.NewReportGenerator(llmClient)
	scenarioGen := llm.NewScenarioGenerator(llmClient)
	selector := scenario.New(scenarioGen, rand.New(rand.NewSource(root.Int63())))
	forecastProvider := forecast.NewProvider(os.Getenv("ARTHNEETI_FORECAST_URL"))
	if forecastProvider.Enabled() {
		slog.Info("forecast: using external tech-sector model")
	} else {
		slog.Info("forecast: no ARTHNEETI_FORECAST_URL set, tech sector falls back to GBM")
	}

	cfg := config.Default()
	eng := engine.New(cfg, st, selector, advisor, reportGen, forecastProvider, root.Int63())

	resolver := auth.NewResolver()
	const demoToken = "demo-session-token"
	const demoUser = "demo-player"
	if err := resolver.Register(demoToken, demoUser); err != nil {
		return fmt.Errorf("register demo identity: %w", err)
	}
	userID, err := resolver.Resolve(demoToken)
	if err != nil {
		return fmt.Errorf("resolve demo identity: %w", err)
	}

	return playSession(ctx, eng, st, userID)
}

// playSession drives one full game from start_new_session to game-over,
// always taking the scenario's recommended choice — a scripted stand-in
// for the human decisions an HTTP frontend would otherwise collect.
func playSession(ctx context.Context, eng *engine.Engine, st *store.Store, userID string) error {
	result, err := eng.StartNewSession(ctx, userID)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	sessionID := result.Session.ID
	slog.Info("session started", "session_id", sessionID, "user_id", userID, "wealth", result.Session.Wealth)

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown requested, stopping playthrough", "session_id", sessionID)
			return nil
		default:
		}

		card, err := eng.GetNextCard(ctx, sessionID, userID)
		if err != nil {
			return fmt.Errorf("get next card: %w", err)
		}
		if card == nil {
			slog.Info("deck exhausted, ending playthrough")
			return nil
		}

		choice := scenario.BestChoice(card)
		if choice == nil {
			result, err = eng.SkipCard(ctx, sessionID, userID, card)
		} else {
			result, err = eng.SubmitChoice(ctx, sessionID, userID, card, choice.ID)
		}
		if err != nil {
			return fmt.Errorf("resolve card %q: %w", card.ID, err)
		}

		slog.Info("card resolved",
			"card", card.Title,
			"month", result.Session.CurrentMonth,
			"wealth", humanize.Comma(int64(result.Session.Wealth)),
			"happiness", result.Session.Happiness,
			"credit_score", result.Session.CreditScore,
		)
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		if result.Chatbot != nil {
			if err := handleChatbot(ctx, eng, sessionID, userID, result.Chatbot); err != nil {
				return err
			}
		}

		if result.GameOver {
			return finishSession(ctx, st, userID, result)
		}

		// Leave the scripted driver something to wait on between turns so
		// a ctrl-C lands between cards instead of only at process exit.
		time.Sleep(10 * time.Millisecond)
	}
}

// handleChatbot resolves a contextual-character trigger: Sundar's scam
// offer routes through ProcessScamChoice (the scripted driver always
// declines), every other character is just narrated since it carries no
// forced decision of its own.
func handleChatbot(ctx context.Context, eng *engine.Engine, sessionID, userID string, msg *model.CharacterMessage) error {
	fmt.Printf("\n[%s] %s\n", msg.Character, msg.Message)
	if !msg.IsScam {
		return nil
	}
	res, err := eng.ProcessScamChoice(ctx, sessionID, userID, false, msg.ScamLossAmount)
	if err != nil {
		return fmt.Errorf("process scam choice: %w", err)
	}
	fmt.Println(res.Message)
	return nil
}

// finishSession prints the closing report and the user's cross-game
// profile, rendering the Markdown report to confirm it's well-formed
// before handing it to whatever frontend would otherwise display it.
func finishSession(ctx context.Context, st *store.Store, userID string, result *model.Result) error {
	sess := result.Session
	slog.Info("game over",
		"reason", result.GameOverReason,
		"months_played", sess.CurrentMonth,
		"final_wealth", humanize.Comma(int64(sess.Wealth)),
		"final_happiness", sess.Happiness,
		"final_literacy", sess.FinancialLiteracy,
	)
	if result.FinalPersona != nil {
		fmt.Printf("\nPersona: %s — %s (score %d, net worth ₹%s)\n",
			result.FinalPersona.Persona, result.FinalPersona.Description,
			result.FinalPersona.FinalScore, humanize.Comma(int64(result.FinalPersona.NetWorth)))
	}

	if sess.FinalReport != "" {
		var rendered bytes.Buffer
		if err := goldmark.Convert([]byte(sess.FinalReport), &rendered); err != nil {
			slog.Warn("final report failed to render as markdown", "error", err)
		}
		fmt.Println("\n--- Final Report ---")
		fmt.Println(sess.FinalReport)
	}

	profile, err := st.LoadProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	slog.Info("player profile",
		"total_games", profile.TotalGames,
		"highest_wealth", humanize.Comma(int64(profile.HighestWealth)),
		"highest_literacy", profile.HighestLiteracy,
	)
	return nil
}
