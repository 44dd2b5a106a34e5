package model

import "strconv"

// Summary is what the CLI prints: the temperature and the first condition's
// description.
type Summary struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
}

// String renders the summary as `72.5 "clear sky"`: the shortest decimal form
// of the temperature and the quoted description.
func (s Summary) String() string {
	return strconv.FormatFloat(s.Temperature, 'f', -1, 64) + " " + strconv.Quote(s.Description)
}
