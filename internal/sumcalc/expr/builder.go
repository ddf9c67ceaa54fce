package expr

import (
	"strings"
	"unicode"
)

const initialText = "0"

// Builder holds the calculator keypad state. It is a value type: every
// edit returns a new Builder and leaves the receiver untouched.
type Builder struct {
	Text string `json:"text"`
	// DecimalPlaced is set when the number currently being typed already has a decimal point
	DecimalPlaced bool `json:"decimalPlaced"`
}

func NewBuilder() Builder {
	return Builder{Text: initialText}
}

func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

func (b Builder) normalized() Builder {
	if b.Text == "" {
		return NewBuilder()
	}
	return b
}

func (b Builder) lastRune() rune {
	runes := []rune(b.Text)
	if len(runes) == 0 {
		return 0
	}
	return runes[len(runes)-1]
}

// currentNumber returns the trailing number token, which may be empty.
func (b Builder) currentNumber() string {
	idx := strings.LastIndexFunc(b.Text, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	return b.Text[idx+1:]
}

func (b Builder) openParens() int {
	return strings.Count(b.Text, "(") - strings.Count(b.Text, ")")
}

func (b Builder) AppendDigit(d rune) Builder {
	b = b.normalized()
	if d < '0' || d > '9' {
		return b
	}
	if b.lastRune() == ')' {
		return b
	}

	if b.currentNumber() == "0" {
		b.Text = b.Text[:len(b.Text)-1] + string(d)
		return b
	}

	b.Text += string(d)
	return b
}

// AppendOperator appends one of + - * / (or the keypad glyphs − × ÷).
// A trailing operator is replaced by the new one; after "(" the operator is ignored.
func (b Builder) AppendOperator(op rune) Builder {
	b = b.normalized()
	normalized, ok := normalizeOperator(op)
	if !ok {
		return b
	}

	text := strings.TrimSuffix(b.Text, ".")
	if text == "" {
		text = initialText
	}

	last := []rune(text)[len([]rune(text))-1]
	switch {
	case last == '(':
		return b
	case isOperator(last):
		text = text[:len(text)-1]
	}

	b.Text = text + string(normalized)
	b.DecimalPlaced = false
	return b
}

func (b Builder) AppendDecimalPoint() Builder {
	b = b.normalized()
	if b.DecimalPlaced || strings.Contains(b.currentNumber(), ".") {
		return b
	}

	last := b.lastRune()
	switch {
	case last == ')':
		return b
	case isOperator(last) || last == '(':
		b.Text += "0."
	default:
		b.Text += "."
	}

	b.DecimalPlaced = true
	return b
}

func (b Builder) OpenParen() Builder {
	b = b.normalized()
	if b.Text == initialText {
		b.Text = "("
		b.DecimalPlaced = false
		return b
	}

	last := b.lastRune()
	if !isOperator(last) && last != '(' {
		return b
	}

	b.Text += "("
	b.DecimalPlaced = false
	return b
}

func (b Builder) CloseParen() Builder {
	b = b.normalized()
	if b.openParens() <= 0 {
		return b
	}

	last := b.lastRune()
	if !unicode.IsDigit(last) && last != ')' {
		return b
	}

	b.Text += ")"
	b.DecimalPlaced = false
	return b
}

func (b Builder) Backspace() Builder {
	b = b.normalized()
	runes := []rune(b.Text)
	b.Text = string(runes[:len(runes)-1])
	if b.Text == "" {
		return NewBuilder()
	}

	b.DecimalPlaced = strings.Contains(b.currentNumber(), ".")
	return b
}

func (b Builder) Clear() Builder {
	return NewBuilder()
}

func (b Builder) Evaluate() (float64, error) {
	return Evaluate(b.Text)
}

// Apply replays a single keypad key on the builder. Keys are digits,
// operators, ".", "(", ")", "back" and "clear"; unknown keys are ignored.
func (b Builder) Apply(key string) Builder {
	switch key {
	case "back", "backspace":
		return b.Backspace()
	case "clear", "c":
		return b.Clear()
	case ".":
		return b.AppendDecimalPoint()
	case "(":
		return b.OpenParen()
	case ")":
		return b.CloseParen()
	}

	runes := []rune(key)
	if len(runes) != 1 {
		return b
	}
	r := runes[0]
	if unicode.IsDigit(r) {
		return b.AppendDigit(r)
	}
	return b.AppendOperator(r)
}
