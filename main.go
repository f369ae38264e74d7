package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/TheFastLane-X/Poker-Equity-Analyser/poker"
	"github.com/sirupsen/logrus"
)

const (
	defaultVersion = "1.0.0"
	defaultAPIPort = "8080"
	defaultTrials  = 10000
)

func main() {
	var (
		apiPort    = flag.String("api-port", defaultAPIPort, "HTTP API port")
		workers    = flag.Int("workers", 0, "Simulation worker goroutines (0 = default)")
		seed       = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		hand       = flag.String("hand", "", "One-shot mode: player hole cards, e.g. AsAh")
		board      = flag.String("board", "", "One-shot mode: community cards, e.g. KdQd2c")
		opponents  = flag.Int("opponents", 1, "One-shot mode: number of opponents")
		trials     = flag.Int("trials", defaultTrials, "One-shot mode: simulation trials")
		logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		version    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("Poker Equity Analyser v%s\n", defaultVersion)
		os.Exit(0)
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", *logLevel)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	sim := poker.NewSimulator(poker.SimulatorConfig{
		Workers: *workers,
		Seed:    *seed,
	})

	if *hand != "" {
		runOneShot(sim, *hand, *board, *opponents, *trials)
		return
	}

	apiAddr := fmt.Sprintf("localhost:%s", *apiPort)
	server := poker.NewAPIServer(apiAddr, sim)

	logrus.Info("===========================================")
	logrus.Info("  Poker Equity Analyser")
	logrus.Info("===========================================")
	logrus.Infof("Version:        %s", defaultVersion)
	logrus.Infof("API Address:    http://%s", apiAddr)
	logrus.Info("===========================================")
	logrus.Info("")
	logrus.Info("API Endpoints:")
	logrus.Infof("  Health:       GET  http://%s/api/health", apiAddr)
	logrus.Infof("  Evaluate:     POST http://%s/api/evaluate", apiAddr)
	logrus.Infof("  Equity:       POST http://%s/api/equity", apiAddr)
	logrus.Infof("  Range Equity: POST http://%s/api/range-equity", apiAddr)
	logrus.Infof("  Decision:     POST http://%s/api/decision", apiAddr)
	logrus.Info("===========================================")
	logrus.Info("")
	logrus.Info("Server starting... Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		if err := server.Run(); err != nil {
			logrus.Fatalf("API server error: %s", err)
		}
	}()

	<-sigChan
	logrus.Info("Shutdown signal received")
}

func runOneShot(sim *poker.Simulator, hand, board string, opponents, trials int) {
	player, err := parseConcatenated(hand)
	if err != nil {
		logrus.Fatalf("Invalid -hand: %s", err)
	}
	community, err := parseConcatenated(board)
	if err != nil {
		logrus.Fatalf("Invalid -board: %s", err)
	}

	eq, err := sim.EstimateEquity(player, community, opponents, trials)
	if err != nil {
		logrus.Fatalf("Simulation failed: %s", err)
	}

	logrus.WithFields(logrus.Fields{
		"hand":       hand,
		"board":      board,
		"opponents":  opponents,
		"trials":     trials,
		"win":        fmt.Sprintf("%.4f", eq.Win),
		"tie":        fmt.Sprintf("%.4f", eq.Tie),
		"loss":       fmt.Sprintf("%.4f", eq.Loss),
		"trials/sec": fmt.Sprintf("%.0f", eq.TrialsPerSecond),
	}).Info("Equity estimate")
}

func parseConcatenated(s string) ([]poker.Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string %q has odd length", s)
	}
	codes := make([]string, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		codes = append(codes, s[i:i+2])
	}
	return poker.ParseCards(codes)
}
