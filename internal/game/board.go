package game

// CardStatus is the visible state of a single card.
type CardStatus int

const (
	CardHidden CardStatus = iota
	CardFlipped
	CardMatched
)

func (s CardStatus) String() string {
	switch s {
	case CardHidden:
		return "hidden"
	case CardFlipped:
		return "flipped"
	case CardMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is one position on the board.
type Card struct {
	Index  int
	Value  int
	Status CardStatus
}

// CardView is the renderer-facing form of a card. Value is only set once the
// card has been turned face up.
type CardView struct {
	Index  int    `json:"index"`
	Status string `json:"status"`
	Value  int    `json:"value,omitempty"`
}

// Board holds the cards of one game in their dealt order.
type Board struct {
	cards []Card
}

// NewBoard deals one hidden card per value.
func NewBoard(values []int) *Board {
	cards := make([]Card, len(values))
	for i, v := range values {
		cards[i] = Card{Index: i, Value: v, Status: CardHidden}
	}
	return &Board{cards: cards}
}

// Len returns the number of cards on the board.
func (b *Board) Len() int {
	return len(b.cards)
}

func (b *Board) valid(i int) bool {
	return i >= 0 && i < len(b.cards)
}

// Card returns a copy of the card at i.
func (b *Board) Card(i int) (Card, bool) {
	if !b.valid(i) {
		return Card{}, false
	}
	return b.cards[i], true
}

// Flip turns a hidden card face up. It reports false for out of range,
// flipped or matched cards and leaves them untouched.
func (b *Board) Flip(i int) bool {
	if !b.valid(i) || b.cards[i].Status != CardHidden {
		return false
	}
	b.cards[i].Status = CardFlipped
	return true
}

// Revert turns a flipped card face down again.
func (b *Board) Revert(i int) bool {
	if !b.valid(i) || b.cards[i].Status != CardFlipped {
		return false
	}
	b.cards[i].Status = CardHidden
	return true
}

// MarkMatched resolves two distinct flipped cards with equal values.
func (b *Board) MarkMatched(i, j int) bool {
	if i == j || !b.IsFlipped(i) || !b.IsFlipped(j) {
		return false
	}
	if b.cards[i].Value != b.cards[j].Value {
		return false
	}
	b.cards[i].Status = CardMatched
	b.cards[j].Status = CardMatched
	return true
}

// IsFlipped reports whether the card at i is face up and unresolved.
func (b *Board) IsFlipped(i int) bool {
	return b.valid(i) && b.cards[i].Status == CardFlipped
}

// ValueAt returns the pair label of the card at i, or 0 when out of range.
func (b *Board) ValueAt(i int) int {
	if !b.valid(i) {
		return 0
	}
	return b.cards[i].Value
}

// StatusAt returns the status of the card at i.
func (b *Board) StatusAt(i int) CardStatus {
	if !b.valid(i) {
		return CardHidden
	}
	return b.cards[i].Status
}

// Views builds the renderer view of every card. Hidden cards carry no value.
func (b *Board) Views() []CardView {
	views := make([]CardView, len(b.cards))
	for i, c := range b.cards {
		cv := CardView{Index: c.Index, Status: c.Status.String()}
		if c.Status != CardHidden {
			cv.Value = c.Value
		}
		views[i] = cv
	}
	return views
}
