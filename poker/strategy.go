package poker

type Action byte

const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
)

func (a Action) String() string {
	switch a {
	case ActionFold:
		return "FOLD"
	case ActionCheck:
		return "CHECK"
	case ActionCall:
		return "CALL"
	default:
		return "INVALID"
	}
}

// PotOdds is the fraction of the final pot the caller pays: the
// minimum equity a call needs to break even.
func PotOdds(pot, call float64) float64 {
	if call == 0 {
		return 0
	}
	return call / (pot + call)
}

// ExpectedValue of calling: equity times the final pot, minus the lost
// call amount weighted by the losing probability.
func ExpectedValue(equity, pot, call float64) float64 {
	return equity*(pot+call) - (1-equity)*call
}

func BreakevenEquity(pot, call float64) float64 {
	return PotOdds(pot, call)
}

// Decision is the strategy layer's recommendation for a single spot.
type Decision struct {
	Action     Action  `json:"-"`
	ActionName string  `json:"action"`
	Equity     float64 `json:"equity"`
	PotOdds    float64 `json:"pot_odds"`
	EV         float64 `json:"ev"`
	Profitable bool    `json:"profitable"`
}

// Recommend simulates the spot and turns the equity into an action:
// check when there is nothing to call, call when the call has positive
// expected value, fold otherwise. Ties count as half equity.
func (s *Simulator) Recommend(playerCards, community []Card, pot, call float64, opponents, trials int) (Decision, error) {
	eq, err := s.EstimateEquity(playerCards, community, opponents, trials)
	if err != nil {
		return Decision{}, err
	}

	equity := eq.Win + eq.Tie/2
	ev := ExpectedValue(equity, pot, call)

	action := ActionFold
	if call == 0 {
		action = ActionCheck
	} else if ev > 0 {
		action = ActionCall
	}

	return Decision{
		Action:     action,
		ActionName: action.String(),
		Equity:     equity,
		PotOdds:    PotOdds(pot, call),
		EV:         ev,
		Profitable: ev > 0,
	}, nil
}
