package domain

// DayCount is one histogram bucket: the number of tasks completed on a single
// calendar day in the display time zone. Day is formatted as YYYY-MM-DD.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Sheet is one tab of the tabular export handed to the table sink.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Summary bundles the two derived reporting artifacts.
type Summary struct {
	ChartPNG    []byte
	Spreadsheet []byte
}
