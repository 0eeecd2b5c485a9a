package zinc

import "github.com/hayspec/haystack-core/value"

// Parse decodes src as a single Zinc grid document: a "ver:" header
// (accepting "2.0" or "3.0"), optional grid-level metadata, a column
// header line, and zero or more row lines.
func Parse(src string) (*value.Grid, error) {
	s := newScanner(src)
	g, err := parseGridBody(s)
	if err != nil {
		return nil, err
	}
	s.skipSpaces()
	for !s.eof() && s.cur() == '\n' {
		s.advance()
		s.skipSpaces()
	}
	if !s.eof() {
		return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "trailing input after grid"}
	}
	return g, nil
}

func parseGridBody(s *scanner) (*value.Grid, error) {
	s.skipSpaces()
	if !matchLiteral(s, "ver:") {
		return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected ver: header"}
	}
	s.skipSpaces()
	if s.cur() != '"' {
		return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected quoted version"}
	}
	verStr, err := decodeDelimited(s, '"')
	if err != nil {
		return nil, err
	}
	if verStr != "2.0" && verStr != "3.0" {
		return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "unsupported zinc version " + verStr}
	}

	g := value.NewGrid()
	if err := parseMetaTags(s, g.Meta); err != nil {
		return nil, err
	}
	if err := expectNewlineOrEnd(s); err != nil {
		return nil, err
	}

	for {
		s.skipSpaces()
		if !isIdentStart(s.cur()) {
			return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected column name"}
		}
		colName := s.scanIdent()
		colMeta := value.NewDict()
		if err := parseMetaTags(s, colMeta); err != nil {
			return nil, err
		}
		if err := g.AddColumn(colName, colMeta); err != nil {
			return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrDuplicateColumn, Msg: err.Error()}
		}
		s.skipSpaces()
		if s.cur() == ',' {
			s.advance()
			continue
		}
		break
	}
	if err := expectNewlineOrEnd(s); err != nil {
		return nil, err
	}

	for !isGridEnd(s) {
		if s.cur() == '\n' {
			s.advance()
			continue
		}
		row := value.NewDict()
		for i, col := range g.Cols {
			if i > 0 {
				s.skipSpaces()
				if s.cur() != ',' {
					return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected , between row cells"}
				}
				s.advance()
			}
			v, err := parseScalarValue(s)
			if err != nil {
				return nil, err
			}
			row.Set(col.Name, v)
		}
		g.AddRow(row)
		s.skipSpaces()
		if isGridEnd(s) {
			break
		}
		if s.cur() != '\n' {
			return nil, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected newline after row"}
		}
		s.advance()
	}
	return g, nil
}

func isGridEnd(s *scanner) bool {
	return s.eof() || (s.cur() == '>' && s.peek(1) == '>')
}

func expectNewlineOrEnd(s *scanner) error {
	s.skipSpaces()
	if isGridEnd(s) {
		return nil
	}
	if s.cur() != '\n' {
		return &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected newline"}
	}
	s.advance()
	return nil
}

func matchLiteral(s *scanner, lit string) bool {
	rs := []rune(lit)
	for i, r := range rs {
		if s.peek(i) != r {
			return false
		}
	}
	for range rs {
		s.advance()
	}
	return true
}

// parseMetaTags consumes a run of space-separated "name" or
// "name:scalar" tags, used for both grid-level metadata (terminated by
// newline) and column-level metadata (terminated by "," or newline).
func parseMetaTags(s *scanner, into *value.Dict) error {
	for {
		s.skipSpaces()
		if s.eof() || s.cur() == '\n' || s.cur() == ',' || (s.cur() == '>' && s.peek(1) == '>') {
			return nil
		}
		if !isIdentStart(s.cur()) {
			return &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected meta tag name"}
		}
		name := s.scanIdent()
		var v value.Value
		if s.cur() == ':' {
			s.advance()
			var err error
			v, err = parseScalarValue(s)
			if err != nil {
				return err
			}
		} else {
			v = value.Marker()
		}
		into.Set(name, v)
	}
}
