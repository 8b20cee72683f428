package entity

// StatusGrid is the namespace x validation pivot of a ResultDump.
type StatusGrid struct {
	Headers []string  `json:"headers"`
	Rows    []GridRow `json:"rows"`
}

// GridRow is one namespace line of the grid.
type GridRow struct {
	Index     int        `json:"index"`
	Namespace string     `json:"namespace"`
	Cells     []GridCell `json:"cells"`
}

// GridCell is the result of one validation for the row namespace.
// An empty Label means the validation was not run for that namespace.
type GridCell struct {
	Validation string `json:"validation"`
	Label      string `json:"label"`
	Message    string `json:"message"`
	Color      string `json:"color"`
}

// Named HTML colors of the status grid.
const (
	ColorHeader     = "Grey"
	ColorHeaderText = "White"
	ColorOK         = "DarkSeaGreen"
	ColorError      = "DarkSalmon"
	ColorNone       = "LightGray"
	ColorMissing    = "White"
)

// StatusColor returns the cell color of a status.
func StatusColor(s CheckStatus) string {
	switch s {
	case CheckStatusOK:
		return ColorOK
	case CheckStatusError:
		return ColorError
	case CheckStatusNone:
		return ColorNone
	default:
		return ColorMissing
	}
}
