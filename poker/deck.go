package poker

import "math/rand"

// NewDeck returns the 52 distinct cards in index order.
func NewDeck() []Card {
	deck := make([]Card, 52)
	for i := 0; i < 52; i++ {
		deck[i] = NewCardFromIndex(i)
	}
	return deck
}

// ShuffledDeck returns a fresh deck permuted uniformly by rng.
func ShuffledDeck(rng *rand.Rand) []Card {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// RemoveKnown returns the cards of deck that are not in known.
// Membership is by (rank, suit) value, via a set keyed on the card
// itself, never by slice position or identity.
func RemoveKnown(deck []Card, known []Card) []Card {
	seen := make(map[Card]struct{}, len(known))
	for _, c := range known {
		seen[c] = struct{}{}
	}
	remaining := make([]Card, 0, len(deck)-len(known))
	for _, c := range deck {
		if _, ok := seen[c]; !ok {
			remaining = append(remaining, c)
		}
	}
	return remaining
}
