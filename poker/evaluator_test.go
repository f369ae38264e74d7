package poker

import (
	"math/rand"
	"testing"

	libpoker "github.com/chehsunliu/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(t *testing.T, codes ...string) []Card {
	t.Helper()
	cs, err := ParseCards(codes)
	require.NoError(t, err)
	return cs
}

func mustEval(t *testing.T, codes ...string) EvaluatedHand {
	t.Helper()
	eval, err := Evaluate(cards(t, codes...))
	require.NoError(t, err)
	return eval
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name        string
		codes       []string
		category    HandCategory
		tiebreakers []int
	}{
		{
			name:        "high card",
			codes:       []string{"As", "Kh", "Qd", "Jc", "9s", "7h", "5d"},
			category:    HighCard,
			tiebreakers: []int{14, 13, 12, 11, 9},
		},
		{
			name:        "pair with top three kickers",
			codes:       []string{"As", "Ah", "Kd", "Qc", "Js", "9h", "7d"},
			category:    OnePair,
			tiebreakers: []int{14, 13, 12, 11},
		},
		{
			name:        "two pair keeps best kicker",
			codes:       []string{"As", "Ah", "Kd", "Kc", "Qs", "9h", "7d"},
			category:    TwoPair,
			tiebreakers: []int{14, 13, 12},
		},
		{
			name:        "three pairs demote the lowest",
			codes:       []string{"As", "Ah", "Kd", "Kc", "Qs", "Qh", "Jd"},
			category:    TwoPair,
			tiebreakers: []int{14, 13, 11},
		},
		{
			name:        "three of a kind",
			codes:       []string{"As", "Ah", "Ad", "Kc", "Qs", "9h", "7d"},
			category:    ThreeOfAKind,
			tiebreakers: []int{14, 13, 12},
		},
		{
			name:        "broadway straight",
			codes:       []string{"As", "Kh", "Qd", "Jc", "Ts", "7h", "5d"},
			category:    Straight,
			tiebreakers: []int{14},
		},
		{
			name:        "wheel counts the five as high",
			codes:       []string{"Ah", "2c", "3d", "4s", "5h"},
			category:    Straight,
			tiebreakers: []int{5},
		},
		{
			name:        "flush over an off-suit straight",
			codes:       []string{"2s", "4s", "6s", "8s", "Ts", "9h", "7d"},
			category:    Flush,
			tiebreakers: []int{10, 8, 6, 4, 2},
		},
		{
			name:        "full house",
			codes:       []string{"Ks", "Kh", "Kd", "2c", "2s"},
			category:    FullHouse,
			tiebreakers: []int{13, 2},
		},
		{
			name:        "full house from two triples keeps order",
			codes:       []string{"Ks", "Kh", "Kd", "2c", "2s", "2h", "7d"},
			category:    FullHouse,
			tiebreakers: []int{13, 2},
		},
		{
			name:        "four of a kind with best kicker",
			codes:       []string{"9s", "9h", "9d", "9c", "Ks", "Qh", "2d"},
			category:    FourOfAKind,
			tiebreakers: []int{9, 13},
		},
		{
			name:        "straight flush",
			codes:       []string{"9s", "8s", "7s", "6s", "5s", "Ah", "Ad"},
			category:    StraightFlush,
			tiebreakers: []int{9},
		},
		{
			name:        "royal flush",
			codes:       []string{"As", "Ks", "Qs", "Js", "Ts", "2h", "3d"},
			category:    RoyalFlush,
			tiebreakers: []int{14},
		},
		{
			name:        "steel wheel is a straight flush not royal",
			codes:       []string{"As", "2s", "3s", "4s", "5s", "Kh", "Kd"},
			category:    StraightFlush,
			tiebreakers: []int{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := mustEval(t, tt.codes...)
			assert.Equal(t, tt.category, eval.Category)
			assert.Equal(t, tt.tiebreakers, eval.Tiebreakers)
		})
	}
}

func TestEvaluateStraightMustShareFlushSuit(t *testing.T) {
	// A straight exists across all ranks and a flush exists, but the
	// flush suit itself holds no straight: the hand is only a flush.
	eval := mustEval(t, "9h", "8s", "7s", "6h", "5s", "3s", "2s")
	assert.Equal(t, Flush, eval.Category)
	assert.Equal(t, []int{8, 7, 5, 3, 2}, eval.Tiebreakers)
}

func TestEvaluateCardCountBounds(t *testing.T) {
	_, err := Evaluate(cards(t, "As", "Kh", "Qd", "Jc"))
	assert.Error(t, err)

	_, err = Evaluate(cards(t, "As", "Kh", "Qd", "Jc", "Ts", "9h", "8d", "7c"))
	assert.Error(t, err)
}

func TestCompareOrdering(t *testing.T) {
	wheel := mustEval(t, "Ah", "2c", "3d", "4s", "5h")
	tenHigh := mustEval(t, "6h", "7c", "8d", "9s", "Th")
	aceHigh := mustEval(t, "As", "Kh", "Qd", "Jc", "9s")
	royal := mustEval(t, "As", "Ks", "Qs", "Js", "Ts", "2h", "3d")
	nineHighSF := mustEval(t, "9s", "8s", "7s", "6s", "5s")

	assert.Equal(t, -1, Compare(wheel, tenHigh))
	assert.Equal(t, 1, Compare(wheel, aceHigh))
	assert.Equal(t, 1, Compare(royal, nineHighSF))
}

func TestCompareTieOnEqualHands(t *testing.T) {
	a := mustEval(t, "As", "Kh", "Qd", "Jc", "9s")
	b := mustEval(t, "Ad", "Ks", "Qh", "Jd", "9c")
	assert.Equal(t, 0, Compare(a, b))
	assert.Equal(t, 0, Compare(b, a))
}

func TestComparePrefixExhaustionIsTie(t *testing.T) {
	a := EvaluatedHand{FullHouse, []int{13, 2}}
	b := EvaluatedHand{FullHouse, []int{13, 2, 7}}
	assert.Equal(t, 0, Compare(a, b))
	assert.Equal(t, 0, Compare(b, a))
}

func TestCompareAntisymmetry(t *testing.T) {
	hands := []EvaluatedHand{
		mustEval(t, "As", "Kh", "Qd", "Jc", "9s"),
		mustEval(t, "As", "Ah", "Kd", "Qc", "Js"),
		mustEval(t, "Ah", "2c", "3d", "4s", "5h"),
		mustEval(t, "Ks", "Kh", "Kd", "2c", "2s"),
		mustEval(t, "9s", "8s", "7s", "6s", "5s"),
		mustEval(t, "As", "Ks", "Qs", "Js", "Ts"),
	}
	for i, a := range hands {
		for j, b := range hands {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "hands %d vs %d", i, j)
		}
	}
}

func TestCompareTransitivity(t *testing.T) {
	low := mustEval(t, "As", "Kh", "Qd", "Jc", "9s")
	mid := mustEval(t, "Ah", "2c", "3d", "4s", "5h")
	high := mustEval(t, "9s", "8s", "7s", "6s", "5s")

	require.Equal(t, 1, Compare(mid, low))
	require.Equal(t, 1, Compare(high, mid))
	assert.Equal(t, 1, Compare(high, low))
}

func TestBestFiveCardsRoundTrip(t *testing.T) {
	inputs := [][]string{
		{"As", "Kh", "Qd", "Jc", "9s", "7h", "5d"},
		{"As", "Ah", "Kd", "Qc", "Js", "9h", "7d"},
		{"As", "Ah", "Kd", "Kc", "Qs", "9h", "7d"},
		{"As", "Ah", "Ad", "Kc", "Qs", "9h", "7d"},
		{"As", "Kh", "Qd", "Jc", "Ts", "7h", "5d"},
		{"Ah", "2c", "3d", "4s", "5h", "9c", "Jd"},
		{"2s", "4s", "6s", "8s", "Ts", "9h", "7d"},
		{"Ks", "Kh", "Kd", "2c", "2s", "2h", "7d"},
		{"9s", "9h", "9d", "9c", "Ks", "Qh", "2d"},
		{"9s", "8s", "7s", "6s", "5s", "Ah", "Ad"},
		{"As", "Ks", "Qs", "Js", "Ts", "2h", "3d"},
	}

	for _, codes := range inputs {
		input := cards(t, codes...)
		original, err := Evaluate(input)
		require.NoError(t, err)

		best, err := BestFiveCards(input)
		require.NoError(t, err)
		require.Len(t, best, 5, "input %v", codes)

		again, err := Evaluate(best)
		require.NoError(t, err)
		assert.Equal(t, original.Category, again.Category, "input %v", codes)
		assert.Equal(t, original.Tiebreakers, again.Tiebreakers, "input %v", codes)
	}
}

func TestBestFiveCardsWheelSelection(t *testing.T) {
	best, err := BestFiveCards(cards(t, "Ah", "2c", "3d", "4s", "5h", "9c", "Jd"))
	require.NoError(t, err)

	got := map[Rank]bool{}
	for _, c := range best {
		got[c.Rank] = true
	}
	for _, want := range []Rank{Ace, Two, Three, Four, Five} {
		assert.True(t, got[want], "wheel should pick rank %d", want)
	}
}

func TestBestFiveCardsSubsetOfInput(t *testing.T) {
	input := cards(t, "As", "Ah", "Kd", "Kc", "Qs", "9h", "7d")
	best, err := BestFiveCards(input)
	require.NoError(t, err)

	inputSet := map[Card]struct{}{}
	for _, c := range input {
		inputSet[c] = struct{}{}
	}
	seen := map[Card]struct{}{}
	for _, c := range best {
		_, ok := inputSet[c]
		assert.True(t, ok, "card %s not in input", c)
		_, dup := seen[c]
		assert.False(t, dup, "card %s picked twice", c)
		seen[c] = struct{}{}
	}
}

// Winner agreement with the chehsunliu evaluator over random deals.
// The library scores lower-is-better, so its comparison is inverted.
func TestEvaluateAgreesWithLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 300; i++ {
		deck := ShuffledDeck(rng)
		board := deck[:5]
		hole1 := deck[5:7]
		hole2 := deck[7:9]

		eval1 := mustEval(t, codesOf(append(append([]Card{}, hole1...), board...))...)
		eval2 := mustEval(t, codesOf(append(append([]Card{}, hole2...), board...))...)
		ours := Compare(eval1, eval2)

		lib1 := libpoker.Evaluate(toLibCards(append(append([]Card{}, hole1...), board...)))
		lib2 := libpoker.Evaluate(toLibCards(append(append([]Card{}, hole2...), board...)))
		theirs := 0
		if lib1 < lib2 {
			theirs = 1
		} else if lib1 > lib2 {
			theirs = -1
		}

		assert.Equal(t, theirs, ours,
			"deal %d: hole1 %v hole2 %v board %v", i, hole1, hole2, board)
	}
}

func codesOf(cs []Card) []string {
	codes := make([]string, len(cs))
	for i, c := range cs {
		codes[i] = c.Code()
	}
	return codes
}

func toLibCards(cs []Card) []libpoker.Card {
	lib := make([]libpoker.Card, len(cs))
	for i, c := range cs {
		lib[i] = libpoker.NewCard(c.Code())
	}
	return lib
}
