package compiler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Program is a parsed machine: its default input and its transition table.
type Program struct {
	Input string
	Table *domain.Table
}

// Parser converts program text into a Program.
//
// The first line is the input string. Every following non-blank line is a
// transition of the form
//
//	STATE; (s1, ..., sk); (NEXT, w1, d1, ..., wk, dk)
//
// Lines after the input line that start with '#' and contain no ';' are
// comments. A '#' line with a ';' is a transition whose state label starts
// with '#'.
type Parser struct {
	dialect domain.Dialect
}

// NewParser creates a parser for the given dialect.
func NewParser(d domain.Dialect) *Parser {
	return &Parser{dialect: d}
}

// ParseString is a convenience wrapper around Parse.
func (p *Parser) ParseString(text string) (*Program, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse reads a whole program.
func (p *Parser) Parse(r io.Reader) (*Program, error) {
	if err := p.dialect.Validate(); err != nil {
		return nil, &domain.MachineError{Kind: domain.KindMalformedProgram, Detail: err.Error()}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read program: %w", err)
		}
		return nil, &domain.MachineError{Kind: domain.KindMalformedProgram, Detail: "empty program"}
	}
	input := strings.TrimSpace(sc.Text())

	b := domain.NewTableBuilder(p.dialect, 0)
	lineNo := 1
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}
		if err := p.parseLine(b, line); err != nil {
			if me, ok := err.(*domain.MachineError); ok {
				me.Line = raw
				me.LineNo = lineNo
			}
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	table, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Program{Input: input, Table: table}, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") && !strings.Contains(line, ";")
}

func (p *Parser) parseLine(b *domain.TableBuilder, line string) error {
	parts := strings.Split(line, ";")
	if len(parts) != 3 {
		return malformed("expected STATE; (READ); (NEXT, WRITES) with exactly two ';'")
	}

	state := strings.TrimSpace(parts[0])
	if state == "" {
		return malformed("missing state")
	}

	readInner, ok := bracketed(parts[1])
	if !ok {
		return malformed("the read configuration must be enclosed between two brackets")
	}
	read := symbols(readInner)
	if len(read) == 0 {
		return malformed("every Turing machine must have at least 1 tape")
	}
	if tapes := b.Tapes(); tapes != 0 && len(read) != tapes {
		return malformed(fmt.Sprintf("the number of tapes must be the same in all the instructions (want %d, got %d)", tapes, len(read)))
	}

	relInner, ok := bracketed(parts[2])
	if !ok {
		return malformed("the relation must be enclosed between two brackets")
	}
	next, rest, _ := strings.Cut(relInner, ",")
	next = strings.TrimSpace(next)
	if next == "" {
		return malformed("missing next state")
	}
	writes := symbols(rest)
	if len(writes) != 2*len(read) {
		return malformed(fmt.Sprintf("the relation must list a symbol and a direction for each of the %d tapes", len(read)))
	}

	opt := domain.Option{Next: next, Moves: make([]domain.Move, len(read))}
	for i := range opt.Moves {
		marker := rune(writes[2*i+1])
		dir, ok := p.dialect.ParseDirection(marker)
		if !ok {
			return &domain.MachineError{Kind: domain.KindUnknownDirection, State: state, Tape: i, Marker: marker}
		}
		opt.Moves[i] = domain.Move{Write: writes[2*i], Dir: dir}
	}

	return b.Add(state, read, opt)
}

func malformed(detail string) error {
	return &domain.MachineError{Kind: domain.KindMalformedProgram, Detail: detail}
}

// bracketed strips surrounding parentheses.
func bracketed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// symbols collects every character of s except commas and whitespace.
func symbols(s string) domain.Symbols {
	out := make(domain.Symbols, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		if r == ',' || unicode.IsSpace(r) {
			continue
		}
		out = append(out, domain.Symbol(r))
	}
	return out
}
