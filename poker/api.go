package poker

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type apiFunc func(w http.ResponseWriter, r *http.Request) error

func makeHTTPHandlerFunc(f apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			JSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
	}
}

func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// APIServer exposes the evaluator, the simulator and the strategy
// layer over JSON HTTP for non-Go callers.
type APIServer struct {
	listenAddr string
	sim        *Simulator
}

func NewAPIServer(listenAddr string, sim *Simulator) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		sim:        sim,
	}
}

func (s *APIServer) Run() error {
	r := s.Router()
	logrus.WithFields(logrus.Fields{
		"addr": s.listenAddr,
	}).Info("API Server starting...")
	return http.ListenAndServe(s.listenAddr, r)
}

func (s *APIServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/api/evaluate", makeHTTPHandlerFunc(s.handleEvaluate)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/equity", makeHTTPHandlerFunc(s.handleEquity)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/range-equity", makeHTTPHandlerFunc(s.handleRangeEquity)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/decision", makeHTTPHandlerFunc(s.handleDecision)).Methods("POST", "OPTIONS")

	r.HandleFunc("/api/health", makeHTTPHandlerFunc(s.handleHealth)).Methods("GET", "OPTIONS")

	return r
}

type EvaluateRequest struct {
	Cards []string `json:"cards"`
}

type EvaluateResponse struct {
	Category    string   `json:"category"`
	Tiebreakers []int    `json:"tiebreakers"`
	BestFive    []string `json:"best_five"`
	Display     []string `json:"display"`
}

type EquityRequest struct {
	PlayerCards    []string `json:"player_cards"`
	CommunityCards []string `json:"community_cards"`
	Opponents      int      `json:"opponents"`
	Trials         int      `json:"trials"`
}

type RangeEquityRequest struct {
	PlayerCards    []string `json:"player_cards"`
	CommunityCards []string `json:"community_cards"`
	OpponentRange  []string `json:"opponent_range"`
	TrialsPerHand  int      `json:"trials_per_hand"`
}

type DecisionRequest struct {
	PlayerCards    []string `json:"player_cards"`
	CommunityCards []string `json:"community_cards"`
	Pot            float64  `json:"pot"`
	Call           float64  `json:"call"`
	Opponents      int      `json:"opponents"`
	Trials         int      `json:"trials"`
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) error {
	return JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *APIServer) handleEvaluate(w http.ResponseWriter, r *http.Request) error {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	cards, err := ParseCards(req.Cards)
	if err != nil {
		return err
	}
	eval, err := Evaluate(cards)
	if err != nil {
		return err
	}
	best, err := BestFiveCards(cards)
	if err != nil {
		return err
	}

	bestCodes := make([]string, len(best))
	display := make([]string, len(best))
	for i, c := range best {
		bestCodes[i] = c.Code()
		display[i] = c.String()
	}
	return JSON(w, http.StatusOK, EvaluateResponse{
		Category:    eval.Category.String(),
		Tiebreakers: eval.Tiebreakers,
		BestFive:    bestCodes,
		Display:     display,
	})
}

func (s *APIServer) handleEquity(w http.ResponseWriter, r *http.Request) error {
	var req EquityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	player, err := ParseCards(req.PlayerCards)
	if err != nil {
		return err
	}
	community, err := ParseCards(req.CommunityCards)
	if err != nil {
		return err
	}
	eq, err := s.sim.EstimateEquity(player, community, req.Opponents, req.Trials)
	if err != nil {
		return err
	}
	return JSON(w, http.StatusOK, eq)
}

func (s *APIServer) handleRangeEquity(w http.ResponseWriter, r *http.Request) error {
	var req RangeEquityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	player, err := ParseCards(req.PlayerCards)
	if err != nil {
		return err
	}
	community, err := ParseCards(req.CommunityCards)
	if err != nil {
		return err
	}
	oppRange, err := ParseRange(req.OpponentRange)
	if err != nil {
		return err
	}
	eq, err := s.sim.EstimateRangeEquity(player, oppRange, community, req.TrialsPerHand)
	if err != nil {
		return err
	}
	return JSON(w, http.StatusOK, eq)
}

func (s *APIServer) handleDecision(w http.ResponseWriter, r *http.Request) error {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	player, err := ParseCards(req.PlayerCards)
	if err != nil {
		return err
	}
	community, err := ParseCards(req.CommunityCards)
	if err != nil {
		return err
	}
	decision, err := s.sim.Recommend(player, community, req.Pot, req.Call, req.Opponents, req.Trials)
	if err != nil {
		return err
	}
	return JSON(w, http.StatusOK, decision)
}
