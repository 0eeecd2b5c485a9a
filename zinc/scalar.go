package zinc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/hayspec/haystack-core/value"
)

// ParseScalar decodes a single Zinc scalar literal, the shared layer
// every codec in this module builds on: an empty or all-whitespace src
// decodes as Null.
func ParseScalar(src string) (value.Value, error) {
	s := newScanner(src)
	v, err := parseScalarValue(s)
	if err != nil {
		return value.Value{}, err
	}
	s.skipSpaces()
	if !s.eof() {
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "trailing input after scalar"}
	}
	return v, nil
}

// WriteScalar renders v in Zinc literal form. It is deterministic: the
// same Value always produces the same text, which is what makes Emit's
// round-trip and idempotent-emit properties hold.
func WriteScalar(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return ""
	case value.KindMarker:
		return "M"
	case value.KindRemove:
		return "R"
	case value.KindNA:
		return "NA"
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return "T"
		}
		return "F"
	case value.KindNumber:
		n, unit, _ := v.AsNumber()
		return formatNumber(n) + unit
	case value.KindStr:
		s, _ := v.AsStr()
		return `"` + escapeQuoted(s, '"') + `"`
	case value.KindUri:
		s, _ := v.AsStr()
		return "`" + escapeQuoted(s, '`') + "`"
	case value.KindRef:
		name, dis, _ := v.AsRef()
		if dis != "" {
			return "@" + name + ` "` + escapeQuoted(dis, '"') + `"`
		}
		return "@" + name
	case value.KindBin:
		mime, _ := v.AsBin()
		return "Bin(" + mime + ")"
	case value.KindDate:
		d, _ := v.AsDate()
		return d.String()
	case value.KindTime:
		t, _ := v.AsTime()
		return t.String()
	case value.KindDateTime:
		dt, _ := v.AsDateTime()
		return dt.Instant.Format("2006-01-02T15:04:05.000Z07:00") + " " + dt.Zone
	case value.KindCoord:
		c, _ := v.AsCoord()
		return fmt.Sprintf("C(%v,%v)", c.Lat, c.Lng)
	case value.KindXStr:
		typeName, payload, _ := v.AsXStr()
		return typeName + `("` + escapeQuoted(payload, '"') + `")`
	case value.KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = WriteScalar(it)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case value.KindDict:
		d, _ := v.AsDict()
		return writeDictScalar(d)
	case value.KindGrid:
		g, _ := v.AsGrid()
		return "<<\n" + Emit(g) + ">>"
	default:
		return ""
	}
}

func writeDictScalar(d *value.Dict) string {
	parts := make([]string, 0, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		if v.Kind() == value.KindMarker {
			parts = append(parts, k)
		} else {
			parts = append(parts, k+":"+WriteScalar(v))
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "INF"
	case math.IsInf(n, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func escapeQuoted(s string, delim byte) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == rune(delim):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isScalarTerminator reports whether r ends a scalar position without
// consuming any text: the cell/list-item/dict-value is the empty,
// implicit Null.
func isScalarTerminator(r rune) bool {
	switch r {
	case ',', '\n', '}', ']', '>':
		return true
	}
	return false
}

func parseScalarValue(s *scanner) (value.Value, error) {
	s.skipSpaces()
	if s.eof() || isScalarTerminator(s.cur()) {
		return value.Null(), nil
	}
	switch {
	case s.cur() == '"':
		text, err := decodeDelimited(s, '"')
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(text), nil
	case s.cur() == '`':
		text, err := decodeDelimited(s, '`')
		if err != nil {
			return value.Value{}, err
		}
		return value.Uri(text), nil
	case s.cur() == '@':
		return parseRefScalar(s)
	case s.cur() == '[':
		return parseListScalar(s)
	case s.cur() == '{':
		return parseDictScalar(s)
	case s.cur() == '<' && s.peek(1) == '<':
		return parseNestedGridScalar(s)
	case s.cur() == '-' || isDigit(s.cur()):
		return parseNumberOrTemporal(s)
	case isIdentStart(s.cur()):
		return parseIdentScalar(s)
	default:
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: fmt.Sprintf("unexpected character %q", s.cur())}
	}
}

func decodeDelimited(s *scanner, delim rune) (string, error) {
	startPos := s.pos2()
	s.advance()
	var b strings.Builder
	for {
		if s.eof() {
			return "", &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnterminatedString}
		}
		r := s.cur()
		if r == '\n' {
			return "", &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnterminatedString}
		}
		if r == delim {
			s.advance()
			return b.String(), nil
		}
		if r == '\\' {
			escPos := s.pos2()
			s.advance()
			if s.eof() {
				return "", &ParseError{Line: escPos.Line, Col: escPos.Col, Kind: ErrUnterminatedString}
			}
			e := s.advance()
			switch e {
			case '"':
				b.WriteByte('"')
			case '`':
				b.WriteByte('`')
			case '\\':
				b.WriteByte('\\')
			case '$':
				b.WriteByte('$')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'u':
				code := 0
				for i := 0; i < 4; i++ {
					if s.eof() {
						return "", &ParseError{Line: escPos.Line, Col: escPos.Col, Kind: ErrBadEscape, Msg: "truncated \\u escape"}
					}
					d := s.advance()
					digit, ok := hexDigit(d)
					if !ok {
						return "", &ParseError{Line: escPos.Line, Col: escPos.Col, Kind: ErrBadEscape, Msg: "invalid \\u escape"}
					}
					code = code*16 + digit
				}
				b.WriteRune(rune(code))
			default:
				return "", &ParseError{Line: escPos.Line, Col: escPos.Col, Kind: ErrBadEscape, Msg: fmt.Sprintf("unknown escape \\%c", e)}
			}
			continue
		}
		b.WriteRune(r)
		s.advance()
	}
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func isRefNameRune(r rune) bool {
	return isIdentCont(r) || r == '.' || r == ':' || r == '~' || r == '-'
}

func parseRefScalar(s *scanner) (value.Value, error) {
	startPos := s.pos2()
	s.advance()
	start := s.pos
	for !s.eof() && isRefNameRune(s.cur()) {
		s.advance()
	}
	if s.pos == start {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnexpectedToken, Msg: "empty ref name"}
	}
	name := string(s.src[start:s.pos])
	dis := ""
	saved := s.clone()
	s.skipSpaces()
	if s.cur() == '"' {
		text, err := decodeDelimited(s, '"')
		if err != nil {
			return value.Value{}, err
		}
		dis = text
	} else {
		*s = *saved
	}
	return value.NewRef(name, dis), nil
}

func parseListScalar(s *scanner) (value.Value, error) {
	s.advance()
	var items []value.Value
	s.skipSpaces()
	if s.cur() == ']' {
		s.advance()
		return value.ListVal(items), nil
	}
	for {
		v, err := parseScalarValue(s)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
		s.skipSpaces()
		if s.cur() == ',' {
			s.advance()
			s.skipSpaces()
			continue
		}
		break
	}
	if s.cur() != ']' {
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected ] closing list"}
	}
	s.advance()
	return value.ListVal(items), nil
}

func parseDictScalar(s *scanner) (value.Value, error) {
	s.advance()
	d := value.NewDict()
	s.skipSpaces()
	if s.cur() == '}' {
		s.advance()
		return value.DictVal(d), nil
	}
	for {
		s.skipSpaces()
		if !isIdentStart(s.cur()) {
			return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected tag name in dict"}
		}
		key := s.scanIdent()
		var v value.Value
		if s.cur() == ':' {
			s.advance()
			var err error
			v, err = parseScalarValue(s)
			if err != nil {
				return value.Value{}, err
			}
		} else {
			v = value.Marker()
		}
		d.Set(key, v)
		s.skipSpaces()
		if s.cur() == ',' {
			s.advance()
			continue
		}
		break
	}
	s.skipSpaces()
	if s.cur() != '}' {
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected } closing dict"}
	}
	s.advance()
	return value.DictVal(d), nil
}

func parseNestedGridScalar(s *scanner) (value.Value, error) {
	s.advance()
	s.advance()
	s.skipSpaces()
	if s.cur() == '\n' {
		s.advance()
	}
	g, err := parseGridBody(s)
	if err != nil {
		return value.Value{}, err
	}
	s.skipSpaces()
	if s.cur() == '\n' {
		s.advance()
		s.skipSpaces()
	}
	if s.cur() != '>' || s.peek(1) != '>' {
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected >> closing nested grid"}
	}
	s.advance()
	s.advance()
	return value.GridVal(g), nil
}

func isUnitRune(r rune) bool {
	if unicode.IsLetter(r) {
		return true
	}
	switch r {
	case '%', '/', '$', '°', '²', '³', 'µ', 'Ω':
		return true
	}
	return false
}

// scanDigits consumes a run of digits, silently dropping any "_"
// thousands separator that falls between two digits (e.g. "1_000" scans
// as "1000"). A trailing "_" not followed by a digit is left unconsumed
// for the caller, such as scanUnit, to deal with.
func scanDigits(s *scanner) string {
	var b []rune
	for !s.eof() {
		if isDigit(s.cur()) {
			b = append(b, s.advance())
			continue
		}
		if s.cur() == '_' && isDigit(s.peek(1)) {
			s.advance()
			continue
		}
		break
	}
	return string(b)
}

func scanUnit(s *scanner) string {
	start := s.pos
	for !s.eof() && isUnitRune(s.cur()) {
		s.advance()
	}
	return string(s.src[start:s.pos])
}

func scanZoneName(s *scanner) string {
	start := s.pos
	for !s.eof() && (isIdentCont(s.cur()) || s.cur() == '/' || s.cur() == '+' || s.cur() == '-') {
		s.advance()
	}
	return string(s.src[start:s.pos])
}

func parseMillis(digits string) int {
	switch {
	case len(digits) == 0:
		return 0
	case len(digits) >= 3:
		n, _ := strconv.Atoi(digits[:3])
		return n
	default:
		for len(digits) < 3 {
			digits += "0"
		}
		n, _ := strconv.Atoi(digits)
		return n
	}
}

func parseNumberOrTemporal(s *scanner) (value.Value, error) {
	startPos := s.pos2()
	neg := false
	if s.cur() == '-' {
		neg = true
		s.advance()
	}
	if isIdentStart(s.cur()) {
		word := s.scanIdent()
		switch word {
		case "INF":
			if neg {
				return value.Num(math.Inf(-1), ""), nil
			}
			return value.Num(math.Inf(1), ""), nil
		case "NaN":
			if neg {
				return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "NaN cannot be negative"}
			}
			return value.Num(math.NaN(), ""), nil
		default:
			return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "expected number, got " + word}
		}
	}
	if !isDigit(s.cur()) {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber}
	}
	firstGroup := scanDigits(s)

	if !neg && len(firstGroup) == 4 && s.cur() == '-' && isDigit(s.peek(1)) && isDigit(s.peek(2)) && s.peek(3) == '-' && isDigit(s.peek(4)) && isDigit(s.peek(5)) {
		return parseDateContinuation(s, firstGroup, startPos)
	}
	if !neg && len(firstGroup) <= 2 && s.cur() == ':' {
		return parseTimeContinuation(s, firstGroup)
	}
	return parseNumberContinuation(s, neg, firstGroup, startPos)
}

func parseDateContinuation(s *scanner, yearStr string, startPos Pos) (value.Value, error) {
	year, _ := strconv.Atoi(yearStr)
	s.advance()
	monthStr := scanDigits(s)
	if s.cur() != '-' {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "malformed date"}
	}
	s.advance()
	dayStr := scanDigits(s)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	d := value.Date{Year: year, Month: month, Day: day}
	if s.cur() == 'T' {
		s.advance()
		return parseDateTimeContinuation(s, d, startPos)
	}
	return value.DateVal(d), nil
}

func parseDateTimeContinuation(s *scanner, d value.Date, startPos Pos) (value.Value, error) {
	hourStr := scanDigits(s)
	if s.cur() != ':' {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "malformed dateTime"}
	}
	s.advance()
	minStr := scanDigits(s)
	if s.cur() != ':' {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "malformed dateTime"}
	}
	s.advance()
	secStr := scanDigits(s)
	millis := 0
	if s.cur() == '.' {
		s.advance()
		millis = parseMillis(scanDigits(s))
	}
	hour, _ := strconv.Atoi(hourStr)
	min, _ := strconv.Atoi(minStr)
	sec, _ := strconv.Atoi(secStr)

	var offsetSeconds int
	switch {
	case s.cur() == 'Z':
		s.advance()
	case s.cur() == '+' || s.cur() == '-':
		sign := s.cur()
		s.advance()
		ohStr := scanDigits(s)
		if s.cur() != ':' {
			return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: "malformed timezone offset"}
		}
		s.advance()
		omStr := scanDigits(s)
		oh, _ := strconv.Atoi(ohStr)
		om, _ := strconv.Atoi(omStr)
		offsetSeconds = oh*3600 + om*60
		if sign == '-' {
			offsetSeconds = -offsetSeconds
		}
	default:
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrMissingTz, Msg: "missing timezone offset"}
	}

	if s.cur() != ' ' {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrMissingTz, Msg: "missing zone name"}
	}
	s.skipSpaces()
	if !isIdentStart(s.cur()) {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrMissingTz, Msg: "missing zone name"}
	}
	zone := scanZoneName(s)

	loc := time.FixedZone(zone, offsetSeconds)
	instant := time.Date(d.Year, time.Month(d.Month), d.Day, hour, min, sec, millis*1e6, loc)
	return value.DateTimeVal(value.DateTime{Instant: instant, Zone: zone}), nil
}

func parseTimeContinuation(s *scanner, hourStr string) (value.Value, error) {
	s.advance()
	minStr := scanDigits(s)
	if s.cur() != ':' {
		return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrBadNumber, Msg: "malformed time"}
	}
	s.advance()
	secStr := scanDigits(s)
	millis := 0
	if s.cur() == '.' {
		s.advance()
		millis = parseMillis(scanDigits(s))
	}
	hour, _ := strconv.Atoi(hourStr)
	min, _ := strconv.Atoi(minStr)
	sec, _ := strconv.Atoi(secStr)
	return value.TimeVal(value.Time{Hour: hour, Minute: min, Second: sec, Millis: millis}), nil
}

func parseNumberContinuation(s *scanner, neg bool, intPart string, startPos Pos) (value.Value, error) {
	numStr := intPart
	if s.cur() == '.' && isDigit(s.peek(1)) {
		numStr += "."
		s.advance()
		numStr += scanDigits(s)
	}
	n, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrBadNumber, Msg: err.Error()}
	}
	if neg {
		n = -n
	}
	unit := scanUnit(s)
	return value.Num(n, unit), nil
}

func parseIdentScalar(s *scanner) (value.Value, error) {
	startPos := s.pos2()
	word := s.scanIdent()
	switch word {
	case "N":
		return value.Null(), nil
	case "M":
		return value.Marker(), nil
	case "R":
		return value.Remove(), nil
	case "NA":
		return value.NA(), nil
	case "T":
		return value.Bool(true), nil
	case "F":
		return value.Bool(false), nil
	case "INF":
		return value.Num(math.Inf(1), ""), nil
	case "NaN":
		return value.Num(math.NaN(), ""), nil
	}
	if s.cur() != '(' {
		return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnknownScalar, Msg: word}
	}
	s.advance()
	switch word {
	case "Bin":
		start := s.pos
		for !s.eof() && s.cur() != ')' {
			s.advance()
		}
		if s.eof() {
			return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnexpectedToken, Msg: "unterminated Bin(...)"}
		}
		mime := strings.TrimSpace(string(s.src[start:s.pos]))
		s.advance()
		return value.Bin(mime), nil
	case "C":
		lat, err := scanFloatLiteral(s)
		if err != nil {
			return value.Value{}, err
		}
		s.skipSpaces()
		if s.cur() != ',' {
			return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected , in C(...)"}
		}
		s.advance()
		s.skipSpaces()
		lng, err := scanFloatLiteral(s)
		if err != nil {
			return value.Value{}, err
		}
		s.skipSpaces()
		if s.cur() != ')' {
			return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected ) closing C(...)"}
		}
		s.advance()
		return value.CoordVal(value.Coordinate{Lat: lat, Lng: lng}), nil
	default:
		s.skipSpaces()
		if s.cur() != '"' {
			return value.Value{}, &ParseError{Line: startPos.Line, Col: startPos.Col, Kind: ErrUnknownScalar, Msg: "expected quoted payload in " + word + "(...)"}
		}
		payload, err := decodeDelimited(s, '"')
		if err != nil {
			return value.Value{}, err
		}
		s.skipSpaces()
		if s.cur() != ')' {
			return value.Value{}, &ParseError{Line: s.line, Col: s.col, Kind: ErrUnexpectedToken, Msg: "expected ) closing " + word + "(...)"}
		}
		s.advance()
		return value.XStr(word, payload), nil
	}
}

func scanFloatLiteral(s *scanner) (float64, error) {
	start := s.pos
	if s.cur() == '-' {
		s.advance()
	}
	if !isDigit(s.cur()) {
		return 0, &ParseError{Line: s.line, Col: s.col, Kind: ErrBadNumber}
	}
	for !s.eof() && isDigit(s.cur()) {
		s.advance()
	}
	if s.cur() == '.' {
		s.advance()
		for !s.eof() && isDigit(s.cur()) {
			s.advance()
		}
	}
	f, err := strconv.ParseFloat(string(s.src[start:s.pos]), 64)
	if err != nil {
		return 0, &ParseError{Line: s.line, Col: s.col, Kind: ErrBadNumber, Msg: err.Error()}
	}
	return f, nil
}
