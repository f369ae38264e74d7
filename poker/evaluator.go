package poker

import (
	"fmt"
	"sort"
)

// HandCategory orders poker hands from weakest to strongest. The
// category alone decides a comparison; tiebreakers only matter inside
// one category.
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (h HandCategory) String() string {
	switch h {
	case HighCard:
		return "HIGH-CARD"
	case OnePair:
		return "PAIR"
	case TwoPair:
		return "TWO-PAIR"
	case ThreeOfAKind:
		return "THREE-OF-A-KIND"
	case Straight:
		return "STRAIGHT"
	case Flush:
		return "FLUSH"
	case FullHouse:
		return "FULL-HOUSE"
	case FourOfAKind:
		return "FOUR-OF-A-KIND"
	case StraightFlush:
		return "STRAIGHT-FLUSH"
	case RoyalFlush:
		return "ROYAL-FLUSH"
	default:
		return "INVALID"
	}
}

// EvaluatedHand is a category plus its tiebreaker ranks, most
// significant first. The tiebreaker shape is category-specific: a full
// house carries [triple, pair], a flush its top five ranks, and so on.
type EvaluatedHand struct {
	Category    HandCategory
	Tiebreakers []int
}

func (e EvaluatedHand) String() string {
	return fmt.Sprintf("%s %v", e.Category, e.Tiebreakers)
}

// Evaluate classifies the best 5-card hand inside 5 to 7 distinct
// cards. Card uniqueness is the caller's responsibility.
func Evaluate(cards []Card) (EvaluatedHand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return EvaluatedHand{}, fmt.Errorf("evaluate requires 5 to 7 cards, got %d", len(cards))
	}

	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	flush := flushRanks(cards)
	straightHi := straightHigh(ranks)
	fours, triples, pairs, kickers := rankGroups(cards)

	// Royal flush: the broadway straight must live entirely in the
	// flush suit, not merely exist across all suits.
	if flush != nil && straightHi == 14 && containsAll(flush, []int{10, 11, 12, 13, 14}) {
		return EvaluatedHand{RoyalFlush, []int{14}}, nil
	}

	// Straight flush: a straight over all ranks may borrow off-suit
	// cards, so the straight is re-detected over the flush suit alone.
	if flush != nil && straightHi != 0 {
		if hi := straightHigh(flush); hi != 0 {
			return EvaluatedHand{StraightFlush, []int{hi}}, nil
		}
	}

	if len(fours) > 0 {
		return EvaluatedHand{FourOfAKind, append([]int{fours[0]}, take(kickers, 1)...)}, nil
	}

	if len(triples) > 0 && len(pairs) > 0 {
		return EvaluatedHand{FullHouse, []int{triples[0], pairs[0]}}, nil
	}
	if len(triples) >= 2 {
		// Two triples in 7 cards: the lower triple plays as the pair.
		return EvaluatedHand{FullHouse, []int{triples[0], triples[1]}}, nil
	}

	if flush != nil {
		top := make([]int, 5)
		copy(top, flush)
		return EvaluatedHand{Flush, top}, nil
	}

	if straightHi != 0 {
		return EvaluatedHand{Straight, []int{straightHi}}, nil
	}

	if len(triples) > 0 {
		return EvaluatedHand{ThreeOfAKind, append([]int{triples[0]}, take(kickers, 2)...)}, nil
	}

	if len(pairs) >= 2 {
		return EvaluatedHand{TwoPair, append([]int{pairs[0], pairs[1]}, take(kickers, 1)...)}, nil
	}

	if len(pairs) == 1 {
		return EvaluatedHand{OnePair, append([]int{pairs[0]}, take(kickers, 3)...)}, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return EvaluatedHand{HighCard, ranks[:5]}, nil
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on a tie.
// Category decides first; equal categories compare tiebreakers left to
// right, and exhausting both sequences is a tie.
func Compare(a, b EvaluatedHand) int {
	if a.Category > b.Category {
		return 1
	}
	if a.Category < b.Category {
		return -1
	}
	n := len(a.Tiebreakers)
	if len(b.Tiebreakers) < n {
		n = len(b.Tiebreakers)
	}
	for i := 0; i < n; i++ {
		if a.Tiebreakers[i] > b.Tiebreakers[i] {
			return 1
		}
		if a.Tiebreakers[i] < b.Tiebreakers[i] {
			return -1
		}
	}
	return 0
}

// flushRanks returns every rank of the flush suit sorted descending,
// or nil when no suit has 5 or more cards. With at most 7 cards only
// one suit can qualify.
func flushRanks(cards []Card) []int {
	suitCounts := make(map[Suit]int)
	for _, c := range cards {
		suitCounts[c.Suit]++
	}
	for suit, count := range suitCounts {
		if count >= 5 {
			ranks := []int{}
			for _, c := range cards {
				if c.Suit == suit {
					ranks = append(ranks, int(c.Rank))
				}
			}
			sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
			return ranks
		}
	}
	return nil
}

// straightHigh returns the highest rank of a 5-long run among the
// distinct ranks, 5 for the wheel (A-2-3-4-5), or 0 when there is no
// straight.
func straightHigh(ranks []int) int {
	unique := dedupeDescending(ranks)
	if len(unique) < 5 {
		return 0
	}
	for i := 0; i+4 < len(unique); i++ {
		if unique[i]-unique[i+4] == 4 {
			return unique[i]
		}
	}
	if containsAll(unique, []int{14, 2, 3, 4, 5}) {
		return 5
	}
	return 0
}

// rankGroups partitions the ranks by multiplicity: quads, triples,
// pairs and singles (kickers), each sorted descending.
func rankGroups(cards []Card) (fours, triples, pairs, kickers []int) {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[int(c.Rank)]++
	}
	for rank, count := range counts {
		switch count {
		case 4:
			fours = append(fours, rank)
		case 3:
			triples = append(triples, rank)
		case 2:
			pairs = append(pairs, rank)
		default:
			kickers = append(kickers, rank)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(fours)))
	sort.Sort(sort.Reverse(sort.IntSlice(triples)))
	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
	return fours, triples, pairs, kickers
}

// take bounds a kicker slice: hands such as quads beside a triple have
// no exactly-once rank, so fewer kickers than the usual shape exist.
func take(xs []int, n int) []int {
	if len(xs) < n {
		n = len(xs)
	}
	return xs[:n]
}

func dedupeDescending(ranks []int) []int {
	seen := make(map[int]struct{}, len(ranks))
	unique := []int{}
	for _, r := range ranks {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			unique = append(unique, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))
	return unique
}

func containsAll(haystack []int, needles []int) bool {
	set := make(map[int]struct{}, len(haystack))
	for _, r := range haystack {
		set[r] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

// BestFiveCards reconstructs the literal five cards behind the
// evaluation, for display. Re-evaluating the returned cards yields the
// same (category, tiebreakers) as the full input.
func BestFiveCards(cards []Card) ([]Card, error) {
	eval, err := Evaluate(cards)
	if err != nil {
		return nil, err
	}

	switch eval.Category {
	case RoyalFlush, StraightFlush:
		flushSuit := flushSuitOf(cards)
		flushCards := []Card{}
		for _, c := range cards {
			if c.Suit == flushSuit {
				flushCards = append(flushCards, c)
			}
		}
		return straightCards(flushCards, eval.Tiebreakers[0]), nil

	case FourOfAKind:
		hand := cardsOfRank(cards, eval.Tiebreakers[0], 4)
		if len(eval.Tiebreakers) > 1 {
			hand = append(hand, cardsOfRank(cards, eval.Tiebreakers[1], 1)...)
		} else {
			hand = append(hand, highestExcluding(cards, 1, eval.Tiebreakers[0])...)
		}
		return hand, nil

	case FullHouse:
		tripleRank, pairRank := eval.Tiebreakers[0], eval.Tiebreakers[1]
		hand := cardsOfRank(cards, tripleRank, 3)
		// pairRank may itself be a demoted triple; only two play.
		return append(hand, cardsOfRank(cards, pairRank, 2)...), nil

	case Flush:
		flushSuit := flushSuitOf(cards)
		flushCards := []Card{}
		for _, c := range cards {
			if c.Suit == flushSuit {
				flushCards = append(flushCards, c)
			}
		}
		sort.Slice(flushCards, func(i, j int) bool {
			return flushCards[i].Rank > flushCards[j].Rank
		})
		return flushCards[:5], nil

	case Straight:
		return straightCards(cards, eval.Tiebreakers[0]), nil

	case ThreeOfAKind:
		hand := cardsOfRank(cards, eval.Tiebreakers[0], 3)
		for _, kicker := range eval.Tiebreakers[1:] {
			hand = append(hand, cardsOfRank(cards, kicker, 1)...)
		}
		return hand, nil

	case TwoPair:
		hand := cardsOfRank(cards, eval.Tiebreakers[0], 2)
		hand = append(hand, cardsOfRank(cards, eval.Tiebreakers[1], 2)...)
		if len(eval.Tiebreakers) > 2 {
			hand = append(hand, cardsOfRank(cards, eval.Tiebreakers[2], 1)...)
		} else {
			hand = append(hand, highestExcluding(cards, 1, eval.Tiebreakers[0], eval.Tiebreakers[1])...)
		}
		return hand, nil

	case OnePair:
		hand := cardsOfRank(cards, eval.Tiebreakers[0], 2)
		for _, kicker := range eval.Tiebreakers[1:] {
			hand = append(hand, cardsOfRank(cards, kicker, 1)...)
		}
		return hand, nil

	case HighCard:
		sorted := make([]Card, len(cards))
		copy(sorted, cards)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Rank > sorted[j].Rank
		})
		return sorted[:5], nil

	default:
		panic(fmt.Sprintf("no five-card extraction for category %d", eval.Category))
	}
}

func flushSuitOf(cards []Card) Suit {
	suitCounts := make(map[Suit]int)
	for _, c := range cards {
		suitCounts[c.Suit]++
	}
	for suit, count := range suitCounts {
		if count >= 5 {
			return suit
		}
	}
	panic("flush suit requested on a non-flush hand")
}

// straightCards picks one card per rank of the run ending at highRank.
// The wheel selects A-2-3-4-5 rather than the five ranks below 5.
func straightCards(cards []Card, highRank int) []Card {
	var targets []int
	if highRank == 5 {
		targets = []int{14, 2, 3, 4, 5}
	} else {
		for r := highRank - 4; r <= highRank; r++ {
			targets = append(targets, r)
		}
	}
	hand := make([]Card, 0, 5)
	for _, rank := range targets {
		for _, c := range cards {
			if int(c.Rank) == rank {
				hand = append(hand, c)
				break
			}
		}
	}
	return hand
}

// highestExcluding returns the n highest cards whose rank is not in
// excluded. Used when a hand has no exactly-once kicker to name in its
// tiebreakers but the five-card display still needs a filler card.
func highestExcluding(cards []Card, n int, excluded ...int) []Card {
	skip := make(map[int]struct{}, len(excluded))
	for _, r := range excluded {
		skip[r] = struct{}{}
	}
	candidates := []Card{}
	for _, c := range cards {
		if _, ok := skip[int(c.Rank)]; !ok {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Rank > candidates[j].Rank
	})
	if len(candidates) < n {
		n = len(candidates)
	}
	return candidates[:n]
}

func cardsOfRank(cards []Card, rank, limit int) []Card {
	picked := make([]Card, 0, limit)
	for _, c := range cards {
		if int(c.Rank) == rank {
			picked = append(picked, c)
			if len(picked) == limit {
				break
			}
		}
	}
	return picked
}
