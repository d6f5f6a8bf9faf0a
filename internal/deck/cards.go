package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses compact card notation like "AsKh" or "Td7s8h" into
// cards. Ranks are 2-9, T, J, Q, K, A and suits are s, h, d, c.
func ParseCards(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string %q must have an even number of characters", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := parseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on invalid input.
// Intended for tests and hardcoded card lists.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseCard(s string) (Card, error) {
	var rank Rank
	switch s[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(s[0] - '0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank %q in card %q", s[0], s)
	}

	var suit Suit
	switch s[1] {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// ValidateDistinct returns an error if any card appears more than once
// across the given groups.
func ValidateDistinct(groups ...[]Card) error {
	var seen CardSet
	for _, group := range groups {
		for _, card := range group {
			if seen.Contains(card) {
				return fmt.Errorf("duplicate card %s", card)
			}
			seen.Add(card)
		}
	}
	return nil
}

// FormatCards joins cards into a printable string like "A♠ K♥"
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
