package header

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	cardWidth      = 80
	keywordWidth   = 8
	valueIndicator = "= "
)

// commentaryKeywords never carry a value indicator, whatever follows them.
var commentaryKeywords = map[string]struct{}{
	"COMMENT": {},
	"HISTORY": {},
	"":        {},
}

// Kind distinguishes value cards from commentary cards.
type Kind int

const (
	KindValue Kind = iota
	KindCommentary
)

// Card is one header record.
type Card struct {
	Keyword string
	Value   string
	Comment string
	Kind    Kind
}

// Header is the ordered card list of one HDU.
type Header struct {
	Cards []Card
}

// ReadFile parses every HDU in the dump at path.
func ReadFile(path string) ([]*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open header: %w", err)
	}
	defer f.Close()
	headers, err := ParseAll(f)
	if err != nil {
		return nil, fmt.Errorf("parse header %s: %w", path, err)
	}
	return headers, nil
}

// Parse returns the primary HDU header.
func Parse(r io.Reader) (*Header, error) {
	headers, err := ParseAll(r)
	if err != nil {
		return nil, err
	}
	return headers[0], nil
}

// ParseAll returns one Header per END-terminated HDU. Trailing cards without
// an END form a final header.
func ParseAll(r io.Reader) ([]*Header, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	lines := splitCards(raw)

	var headers []*Header
	current := &Header{}
	for idx, line := range lines {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		card, err := parseCard(line)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", idx+1, err)
		}
		if card.Keyword == "END" && card.Kind == KindCommentary && card.Value == "" {
			headers = append(headers, current)
			current = &Header{}
			continue
		}
		current.Cards = append(current.Cards, card)
	}
	if len(current.Cards) > 0 || len(headers) == 0 {
		headers = append(headers, current)
	}
	return headers, nil
}

func splitCards(raw []byte) []string {
	if !bytes.ContainsRune(raw, '\n') && len(raw)%cardWidth == 0 {
		cards := make([]string, 0, len(raw)/cardWidth)
		for start := 0; start < len(raw); start += cardWidth {
			cards = append(cards, string(raw[start:start+cardWidth]))
		}
		return cards
	}
	return strings.Split(string(raw), "\n")
}

func parseCard(line string) (Card, error) {
	keyword := line
	if len(keyword) > keywordWidth {
		keyword = keyword[:keywordWidth]
	}
	keyword = strings.TrimSpace(keyword)

	_, commentary := commentaryKeywords[keyword]
	if !commentary && len(line) >= keywordWidth+len(valueIndicator) && line[keywordWidth:keywordWidth+len(valueIndicator)] == valueIndicator {
		value, comment, err := splitValue(line[keywordWidth+len(valueIndicator):])
		if err != nil {
			return Card{}, fmt.Errorf("%s: %w", keyword, err)
		}
		return Card{Keyword: keyword, Value: value, Comment: comment, Kind: KindValue}, nil
	}

	text := ""
	if len(line) > keywordWidth {
		text = line[keywordWidth:]
	}
	return Card{Keyword: keyword, Value: strings.TrimRight(text, " "), Kind: KindCommentary}, nil
}

// splitValue separates a card's value from its trailing "/ comment".
func splitValue(rest string) (string, string, error) {
	trimmed := strings.TrimLeft(rest, " ")
	if !strings.HasPrefix(trimmed, "'") {
		value, comment, _ := strings.Cut(trimmed, "/")
		return strings.TrimSpace(value), strings.TrimSpace(comment), nil
	}

	var value strings.Builder
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != '\'' {
			value.WriteByte(trimmed[i])
			continue
		}
		if i+1 < len(trimmed) && trimmed[i+1] == '\'' {
			value.WriteByte('\'')
			i++
			continue
		}
		_, comment, _ := strings.Cut(trimmed[i+1:], "/")
		return strings.TrimRight(value.String(), " "), strings.TrimSpace(comment), nil
	}
	return "", "", fmt.Errorf("unterminated string value %q", rest)
}

// Get returns the first value card with keyword.
func (h *Header) Get(keyword string) (Card, bool) {
	if h == nil {
		return Card{}, false
	}
	for _, card := range h.Cards {
		if card.Kind == KindValue && card.Keyword == keyword {
			return card, true
		}
	}
	return Card{}, false
}

// Value returns the raw value for keyword.
func (h *Header) Value(keyword string) (string, bool) {
	card, ok := h.Get(keyword)
	if !ok {
		return "", false
	}
	return card.Value, true
}

// Float parses the value for keyword. A missing keyword reports ok=false with
// a nil error; a present but non-numeric value is an error.
func (h *Header) Float(keyword string) (float64, bool, error) {
	card, ok := h.Get(keyword)
	if !ok || card.Value == "" {
		return 0, false, nil
	}
	// FITS allows D exponents.
	normalized := strings.NewReplacer("D", "E", "d", "e").Replace(card.Value)
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, true, fmt.Errorf("keyword %s: parse %q as float: %w", keyword, card.Value, err)
	}
	return value, true, nil
}

// Comments returns COMMENT card text in header order.
func (h *Header) Comments() []string {
	return h.commentary("COMMENT")
}

func (h *Header) commentary(keyword string) []string {
	if h == nil {
		return nil
	}
	var out []string
	for _, card := range h.Cards {
		if card.Kind == KindCommentary && card.Keyword == keyword {
			out = append(out, card.Value)
		}
	}
	return out
}
