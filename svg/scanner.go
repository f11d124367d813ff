package svg

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// scanner reads the number lists shared by path data, transforms and
// point attributes.
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && parse.IsWhitespace(s.data[s.pos]) {
		s.pos++
	}
}

// skipSeparator skips whitespace and at most one comma.
func (s *scanner) skipSeparator() {
	s.skipSpace()
	if s.peek() == ',' {
		s.pos++
		s.skipSpace()
	}
}

// atNumber reports whether a number starts after the next separator.
func (s *scanner) atNumber() bool {
	s.skipSeparator()
	c := s.peek()
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (s *scanner) number() (float64, error) {
	s.skipSeparator()
	f, n := strconv.ParseFloat(s.data[s.pos:])
	if n == 0 {
		return 0, s.errorf("expected number")
	}
	s.pos += n
	return f, nil
}

// flag reads a single 0 or 1, which may be followed by the next value
// without a separator.
func (s *scanner) flag() (bool, error) {
	s.skipSeparator()
	switch s.peek() {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	default:
		return false, s.errorf("expected flag")
	}
}

func (s *scanner) errorf(format string, args ...any) *SyntaxError {
	msg := fmt.Sprintf(format, args...)
	if !s.eof() {
		msg += fmt.Sprintf(", found %q", s.data[s.pos])
	} else {
		msg += ", found end of input"
	}
	return &SyntaxError{Offset: s.pos, Msg: msg}
}

// parseNumbers reads a whitespace or comma separated number list.
func parseNumbers(v string) ([]float64, error) {
	s := scanner{data: []byte(v)}
	var out []float64
	for s.atNumber() {
		f, err := s.number()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	s.skipSeparator()
	if !s.eof() {
		return nil, s.errorf("expected number")
	}
	return out, nil
}
