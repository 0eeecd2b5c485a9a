package value

import "fmt"

// String renders a short debug form of v. It is not the Zinc literal
// form (see package zinc for that); it exists for error messages, test
// failure output, and %v formatting.
func (v Value) String() string {
	switch v.Kind() {
	case KindNull:
		return "Null"
	case KindMarker:
		return "Marker"
	case KindRemove:
		return "Remove"
	case KindNA:
		return "NA"
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.boolVal)
	case KindNumber:
		if v.unit != "" {
			return fmt.Sprintf("Number(%v%s)", v.num, v.unit)
		}
		return fmt.Sprintf("Number(%v)", v.num)
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.text)
	case KindUri:
		return fmt.Sprintf("Uri(%q)", v.text)
	case KindRef:
		if v.aux != "" {
			return fmt.Sprintf("Ref(@%s %q)", v.refName, v.aux)
		}
		return fmt.Sprintf("Ref(@%s)", v.refName)
	case KindBin:
		return fmt.Sprintf("Bin(%s)", v.text)
	case KindDate:
		return fmt.Sprintf("Date(%s)", v.date)
	case KindTime:
		return fmt.Sprintf("Time(%s)", v.time)
	case KindDateTime:
		return fmt.Sprintf("DateTime(%s %s)", v.dt.Instant.Format("2006-01-02T15:04:05.000Z07:00"), v.dt.Zone)
	case KindCoord:
		return fmt.Sprintf("Coord(%v,%v)", v.geo.Lat, v.geo.Lng)
	case KindXStr:
		return fmt.Sprintf("XStr(%s, %q)", v.text, v.aux)
	case KindList:
		return fmt.Sprintf("List(%d items)", len(v.list))
	case KindDict:
		return fmt.Sprintf("Dict(%d tags)", v.dict.Len())
	case KindGrid:
		return fmt.Sprintf("Grid(%d cols, %d rows)", len(v.grid.Cols), len(v.grid.Rows))
	default:
		return "?"
	}
}
