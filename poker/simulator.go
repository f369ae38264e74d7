package poker

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultWorkers = 4

// SimulatorConfig controls parallelism and reproducibility. A zero
// Seed means a time-based seed; a zero Workers means defaultWorkers.
type SimulatorConfig struct {
	Workers int
	Seed    int64
}

// Simulator estimates hand equity by Monte Carlo completion of the
// unseen cards. It holds no per-run state: every trial owns a private
// deck and every worker a private rand stream, so one Simulator may
// serve concurrent callers.
type Simulator struct {
	SimulatorConfig
}

func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Simulator{SimulatorConfig: cfg}
}

// Equity is the aggregated outcome of a simulation run. Win, Tie and
// Loss are fractions of Trials and sum to 1 up to floating rounding,
// except for the zero-sample case where all three are 0.
type Equity struct {
	Win             float64       `json:"win"`
	Tie             float64       `json:"tie"`
	Loss            float64       `json:"loss"`
	Trials          int           `json:"trials"`
	Elapsed         time.Duration `json:"-"`
	Seconds         float64       `json:"time_seconds"`
	TrialsPerSecond float64       `json:"trials_per_second"`
}

type tally struct {
	wins, ties, losses int
}

// EstimateEquity runs `trials` independent completions of the board
// against `opponents` uniformly random hole-card hands and reports the
// win/tie/loss fractions for the player. The player wins a trial only
// by beating every opponent; any opponent beating the player makes the
// trial a loss, and a best-hand tie with no loss makes it a tie.
func (s *Simulator) EstimateEquity(playerCards, community []Card, opponents, trials int) (Equity, error) {
	if err := validateHoleAndBoard(playerCards, community); err != nil {
		return Equity{}, err
	}
	if opponents < 1 {
		return Equity{}, fmt.Errorf("opponent count must be >= 1, got %d", opponents)
	}
	if trials < 1 {
		return Equity{}, fmt.Errorf("trial count must be >= 1, got %d", trials)
	}

	known := append(append([]Card{}, playerCards...), community...)
	base := RemoveKnown(NewDeck(), known)
	if opponents*2+(5-len(community)) > len(base) {
		return Equity{}, fmt.Errorf("deck too small for %d opponents", opponents)
	}

	workers := s.Workers
	if trials < workers {
		workers = trials
	}
	perWorker := trials / workers
	remainder := trials % workers

	start := time.Now()
	results := make(chan tally, workers)
	for w := 0; w < workers; w++ {
		share := perWorker
		if w == 0 {
			share += remainder
		}
		go func(workerID, share int) {
			rng := rand.New(rand.NewSource(s.Seed + int64(workerID)))
			var local tally
			for i := 0; i < share; i++ {
				local.add(s.runTrial(rng, playerCards, community, base, opponents))
			}
			results <- local
		}(w, share)
	}

	var total tally
	for w := 0; w < workers; w++ {
		partial := <-results
		total.wins += partial.wins
		total.ties += partial.ties
		total.losses += partial.losses
	}

	eq := newEquity(total, trials, time.Since(start))
	logrus.WithFields(logrus.Fields{
		"trials":     trials,
		"opponents":  opponents,
		"win":        eq.Win,
		"tie":        eq.Tie,
		"loss":       eq.Loss,
		"trials/sec": eq.TrialsPerSecond,
	}).Debug("equity simulation complete")
	return eq, nil
}

// EstimateRangeEquity runs trialsPerHand board completions against
// each candidate opponent hand. Range entries sharing a card with the
// player's hand or the known community contribute no trials; if every
// entry conflicts the result is the all-zero Equity, never a division
// by zero.
func (s *Simulator) EstimateRangeEquity(playerCards []Card, opponentRange Range, community []Card, trialsPerHand int) (Equity, error) {
	if err := validateHoleAndBoard(playerCards, community); err != nil {
		return Equity{}, err
	}
	if trialsPerHand < 1 {
		return Equity{}, fmt.Errorf("trials per hand must be >= 1, got %d", trialsPerHand)
	}

	known := append(append([]Card{}, playerCards...), community...)
	knownSet := make(map[Card]struct{}, len(known))
	for _, c := range known {
		knownSet[c] = struct{}{}
	}

	rng := rand.New(rand.NewSource(s.Seed))
	start := time.Now()
	var total tally
	ran := 0
	skipped := 0

	for _, opp := range opponentRange {
		if opp[0] == opp[1] {
			return Equity{}, fmt.Errorf("range entry %s%s duplicates a card", opp[0].Code(), opp[1].Code())
		}
		if _, ok := knownSet[opp[0]]; ok {
			skipped++
			continue
		}
		if _, ok := knownSet[opp[1]]; ok {
			skipped++
			continue
		}

		base := RemoveKnown(NewDeck(), append(append([]Card{}, known...), opp[0], opp[1]))
		for i := 0; i < trialsPerHand; i++ {
			board := completeBoard(rng, base, community)
			playerEval := mustEvaluate(append(append([]Card{}, playerCards...), board...))
			oppEval := mustEvaluate(append([]Card{opp[0], opp[1]}, board...))
			switch Compare(playerEval, oppEval) {
			case 1:
				total.wins++
			case 0:
				total.ties++
			default:
				total.losses++
			}
			ran++
		}
	}

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"skipped": skipped,
			"range":   len(opponentRange),
		}).Debug("range entries conflicting with known cards skipped")
	}
	if ran == 0 {
		return Equity{}, nil
	}
	return newEquity(total, ran, time.Since(start)), nil
}

// runTrial completes one random deal and scores it for the player.
// The base deck already excludes the known cards; a private shuffled
// copy keeps trials independent of one another.
func (s *Simulator) runTrial(rng *rand.Rand, playerCards, community, base []Card, opponents int) int {
	deck := make([]Card, len(base))
	copy(deck, base)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	// Fixed-offset slicing after a uniform shuffle: opponents first,
	// then the board completion.
	dealt := 0
	oppHands := make([][]Card, opponents)
	for i := 0; i < opponents; i++ {
		oppHands[i] = deck[dealt : dealt+2]
		dealt += 2
	}
	needed := 5 - len(community)
	board := append(append([]Card{}, community...), deck[dealt:dealt+needed]...)

	playerEval := mustEvaluate(append(append([]Card{}, playerCards...), board...))

	tied := false
	for _, opp := range oppHands {
		oppEval := mustEvaluate(append(append([]Card{}, opp...), board...))
		switch Compare(playerEval, oppEval) {
		case -1:
			return trialLoss
		case 0:
			tied = true
		}
	}
	if tied {
		return trialTie
	}
	return trialWin
}

const (
	trialWin = iota
	trialTie
	trialLoss
)

func (t *tally) add(outcome int) {
	switch outcome {
	case trialWin:
		t.wins++
	case trialTie:
		t.ties++
	default:
		t.losses++
	}
}

func completeBoard(rng *rand.Rand, base, community []Card) []Card {
	deck := make([]Card, len(base))
	copy(deck, base)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	needed := 5 - len(community)
	return append(append([]Card{}, community...), deck[:needed]...)
}

func newEquity(t tally, trials int, elapsed time.Duration) Equity {
	eq := Equity{
		Win:     float64(t.wins) / float64(trials),
		Tie:     float64(t.ties) / float64(trials),
		Loss:    float64(t.losses) / float64(trials),
		Trials:  trials,
		Elapsed: elapsed,
		Seconds: elapsed.Seconds(),
	}
	if elapsed > 0 {
		eq.TrialsPerSecond = float64(trials) / elapsed.Seconds()
	}
	return eq
}

func validateHoleAndBoard(playerCards, community []Card) error {
	if len(playerCards) != 2 {
		return fmt.Errorf("player must hold exactly 2 cards, got %d", len(playerCards))
	}
	if len(community) > 5 {
		return fmt.Errorf("community takes at most 5 cards, got %d", len(community))
	}
	return nil
}

// mustEvaluate wraps Evaluate for deal sizes the simulator itself
// constructed; a failure here is a defect, not an input error.
func mustEvaluate(cards []Card) EvaluatedHand {
	eval, err := Evaluate(cards)
	if err != nil {
		panic(fmt.Sprintf("simulator built an unevaluable hand: %s", err))
	}
	return eval
}
