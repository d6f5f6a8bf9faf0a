package deck

import rand "math/rand/v2"

// Deck represents an ordered stack of playing cards
type Deck struct {
	cards []Card
}

// NewDeck creates a standard 52-card deck in canonical order
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewDeckExcluding creates a deck of the 52 cards minus the given known
// cards. The result is duplicate-free and disjoint from the known cards
// by construction.
func NewDeckExcluding(known ...[]Card) *Deck {
	used := CardSet(0)
	for _, group := range known {
		for _, card := range group {
			used.Add(card)
		}
	}

	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(suit, rank)
			if !used.Contains(card) {
				d.cards = append(d.cards, card)
			}
		}
	}
	return d
}

// Shuffle randomizes the order of cards using the supplied generator
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck, or fewer if the deck runs out
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns the remaining cards in deck order. The returned slice
// aliases the deck's storage and must not be modified.
func (d *Deck) Cards() []Card {
	return d.cards
}
