package poker

import "fmt"

type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

func (s Suit) String() string {
	return []string{"SPADES", "HEARTS", "DIAMONDS", "CLUBS"}[s]
}

func (s Suit) Unicode() string {
	return []string{"♠", "♥", "♦", "♣"}[s]
}

func (s Suit) Letter() string {
	return []string{"s", "h", "d", "c"}[s]
}

// Rank runs from Two (2) to Ace (14). Ace is high except in the
// wheel straight, where the evaluator treats it as low.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

func (r Rank) Letter() string {
	return string(rankLetters[r-Two])
}

type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank.Letter(), c.Suit.Unicode())
}

// Code returns the two-character notation used by the API and range
// files, e.g. "As" or "Td".
func (c Card) Code() string {
	return c.Rank.Letter() + c.Suit.Letter()
}

func NewCardFromIndex(i int) Card {
	return Card{
		Suit: Suit(i / 13),
		Rank: Rank(i%13) + Two,
	}
}

func CardIndex(c Card) int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// ParseCard reads two-character notation: rank in "23456789TJQKA",
// suit in "shdc".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want rank+suit, e.g. \"As\"", s)
	}
	rank := Rank(0)
	for i := 0; i < len(rankLetters); i++ {
		if rankLetters[i] == s[0] {
			rank = Rank(i) + Two
			break
		}
	}
	if rank == 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	var suit Suit
	switch s[1] {
	case 's':
		suit = Spades
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func ParseCards(codes []string) ([]Card, error) {
	cards := make([]Card, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
