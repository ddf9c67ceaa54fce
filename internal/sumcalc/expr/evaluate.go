package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrMalformedExpression = errors.New("malformed expression")
	ErrEmptyExpression     = fmt.Errorf("%w: nothing to evaluate", ErrMalformedExpression)
	ErrDivisionByZero      = errors.New("division by zero")
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOperator
	tokOpenParen
	tokCloseParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	op    rune
}

// normalizeOperator maps the calculator keypad glyphs to their ASCII operator.
func normalizeOperator(r rune) (rune, bool) {
	switch r {
	case '+':
		return '+', true
	case '-', '−':
		return '-', true
	case '*', '×':
		return '*', true
	case '/', '÷':
		return '/', true
	default:
		return 0, false
	}
}

func tokenize(text string) ([]token, error) {
	var tokens []token
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			dots := 0
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					dots++
				}
				i++
			}
			numText := string(runes[start:i])
			if dots > 1 || numText == "." {
				return nil, fmt.Errorf("%w: invalid number [%s]", ErrMalformedExpression, numText)
			}
			value, err := strconv.ParseFloat(numText, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: parse number [%s]", ErrMalformedExpression, numText)
			}
			tokens = append(tokens, token{kind: tokNumber, text: numText, value: value})
		case r == '(':
			tokens = append(tokens, token{kind: tokOpenParen, text: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokCloseParen, text: ")"})
			i++
		default:
			op, ok := normalizeOperator(r)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected character [%c]", ErrMalformedExpression, r)
			}
			tokens = append(tokens, token{kind: tokOperator, text: string(op), op: op})
			i++
		}
	}
	return tokens, nil
}

// parser is a recursive descent parser over:
//
//	expression := term (("+" | "-") term)*
//	term       := factor (("*" | "/") factor)*
//	factor     := number | "(" expression ")"
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) expression() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokOperator || (tok.op != '+' && tok.op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if tok.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokOperator || (tok.op != '*' && tok.op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return 0, err
		}
		if tok.op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
}

func (p *parser) factor() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("%w: missing operand", ErrMalformedExpression)
	}
	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.value, nil
	case tokOpenParen:
		p.pos++
		value, err := p.expression()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokCloseParen {
			return 0, fmt.Errorf("%w: unbalanced parentheses", ErrMalformedExpression)
		}
		p.pos++
		return value, nil
	default:
		return 0, fmt.Errorf("%w: unexpected [%s] at position %d", ErrMalformedExpression, tok.text, p.pos)
	}
}

// Evaluate parses and computes an arithmetic expression with the usual
// operator precedence. The result is not rounded.
func Evaluate(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "0" {
		return 0, ErrEmptyExpression
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, ErrEmptyExpression
	}

	p := &parser{tokens: tokens}
	result, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind == tokCloseParen {
			return 0, fmt.Errorf("%w: unbalanced parentheses", ErrMalformedExpression)
		}
		return 0, fmt.Errorf("%w: unexpected [%s] at position %d", ErrMalformedExpression, tok.text, p.pos)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: result out of range", ErrMalformedExpression)
	}

	return result, nil
}

type Validation struct {
	IsValid bool     `json:"isValid"`
	Result  *float64 `json:"result"`
}

// Validate reports whether a typed calculation can be used as a list item:
// it must evaluate to a finite, non-negative number.
func Validate(text string) Validation {
	result, err := Evaluate(text)
	if err != nil || result < 0 {
		return Validation{IsValid: false}
	}
	return Validation{IsValid: true, Result: &result}
}
