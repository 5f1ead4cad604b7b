package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The wall-clock duration the test should run for.")
	tick := flag.Duration("tick", 16*time.Millisecond, "The simulated time advanced per tick.")
	games := flag.Int("games", 0, "Stop after this many finished games (0 = no limit).")
	budget := flag.Int("budget", 240, "Ticks the bot may spend steering one piece before hard dropping it.")
	flag.Parse()

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	log.Println("Starting blockfall stress test...")

	var store highscore.Store = highscore.NewMemoryStore()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		rs, err := highscore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisKey)
		cancel()
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Recording scores in memory only.", err)
		} else {
			defer rs.Close()
			store = rs
			log.Println("[REDIS] Connected successfully")
		}
	}

	report := &Report{
		Duration: *duration,
		Tick:     *tick,
		Seed:     cfg.Seed,
		Width:    cfg.Board.Width,
		Height:   cfg.Board.Height,
	}

	recorder := highscore.NewRecorder(store, cfg.PlayerName, time.Second, logger)
	board, err := tetris.NewBoard(cfg.Board,
		tetris.WithSeed(cfg.Seed),
		tetris.WithLogger(logger),
		tetris.WithListener(recorder),
		tetris.WithListener(tetris.ListenerFuncs{
			OnGameOver: func(finalScore int) { report.AddGame(finalScore) },
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
	bot := autoplay.New(autoplay.DefaultWeights, *budget)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	board.Start()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if board.State() != tetris.Running {
				if *games > 0 && len(report.Scores) >= *games {
					break Loop
				}
				board.Start()
			}
			board.Tick(*tick, bot.Poll(board))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Stats = board.Stats()
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if top, err := store.Top(context.Background(), 5); err == nil {
		report.Top = top
	} else {
		log.Printf("Failed to read high scores: %v", err)
	}

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
