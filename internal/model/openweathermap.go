package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by every decode error caused by an absent or
// null required field.
var ErrMissingField = errors.New("missing required field")

func missing(field string) error {
	return fmt.Errorf("%w %q", ErrMissingField, field)
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	var w struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.Lat == nil:
		return missing("coord.lat")
	case w.Lon == nil:
		return missing("coord.lon")
	}
	*c = Coordinates{Lat: *w.Lat, Lon: *w.Lon}
	return nil
}

// Condition is one weather condition record, e.g. 800 "Clear" "clear sky" "01d".
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (c *Condition) UnmarshalJSON(b []byte) error {
	var w struct {
		ID          *int    `json:"id"`
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.ID == nil:
		return missing("weather.id")
	case w.Main == nil:
		return missing("weather.main")
	case w.Description == nil:
		return missing("weather.description")
	case w.Icon == nil:
		return missing("weather.icon")
	}
	*c = Condition{ID: *w.ID, Main: *w.Main, Description: *w.Description, Icon: *w.Icon}
	return nil
}

// Main holds temperatures in the requested unit system.
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
}

func (m *Main) UnmarshalJSON(b []byte) error {
	var w struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.Temp == nil:
		return missing("main.temp")
	case w.FeelsLike == nil:
		return missing("main.feels_like")
	}
	*m = Main{Temp: *w.Temp, FeelsLike: *w.FeelsLike}
	return nil
}

// WeatherResponse is the payload of the current weather endpoint. Fields the
// API sends beyond these are ignored.
type WeatherResponse struct {
	Coord   Coordinates `json:"coord"`
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Base    string      `json:"base"`
}

func (r *WeatherResponse) UnmarshalJSON(b []byte) error {
	var w struct {
		Coord   *Coordinates `json:"coord"`
		Weather *[]Condition `json:"weather"`
		Main    *Main        `json:"main"`
		Base    *string      `json:"base"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.Coord == nil:
		return missing("coord")
	case w.Weather == nil:
		return missing("weather")
	case w.Main == nil:
		return missing("main")
	case w.Base == nil:
		return missing("base")
	}
	*r = WeatherResponse{Coord: *w.Coord, Weather: *w.Weather, Main: *w.Main, Base: *w.Base}
	return nil
}

// ForecastEntry is one 3-hour slot of the forecast endpoint.
type ForecastEntry struct {
	Dt      int64       `json:"dt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
	DtTxt   string      `json:"dt_txt,omitempty"`
}

func (e *ForecastEntry) UnmarshalJSON(b []byte) error {
	var w struct {
		Dt      *int64       `json:"dt"`
		Main    *Main        `json:"main"`
		Weather *[]Condition `json:"weather"`
		DtTxt   string       `json:"dt_txt"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.Dt == nil:
		return missing("list.dt")
	case w.Main == nil:
		return missing("list.main")
	case w.Weather == nil:
		return missing("list.weather")
	}
	*e = ForecastEntry{Dt: *w.Dt, Main: *w.Main, Weather: *w.Weather, DtTxt: w.DtTxt}
	return nil
}

type City struct {
	Name  string      `json:"name"`
	Coord Coordinates `json:"coord"`
}

// ForecastResponse is the payload of the forecast endpoint. List is ordered
// by time, nearest slot first.
type ForecastResponse struct {
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
	City City            `json:"city"`
}

func (r *ForecastResponse) UnmarshalJSON(b []byte) error {
	var w struct {
		Cnt  int              `json:"cnt"`
		List *[]ForecastEntry `json:"list"`
		City *City            `json:"city"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch {
	case w.List == nil:
		return missing("list")
	case w.City == nil:
		return missing("city")
	}
	*r = ForecastResponse{Cnt: w.Cnt, List: *w.List, City: *w.City}
	return nil
}

// Current turns the nearest forecast slot into the current weather shape.
// The forecast payload has no "base", so Base is left empty. A forecast
// without slots yields a response without conditions.
func (r *ForecastResponse) Current() WeatherResponse {
	resp := WeatherResponse{Coord: r.City.Coord}
	if len(r.List) > 0 {
		resp.Weather = r.List[0].Weather
		resp.Main = r.List[0].Main
	}
	return resp
}
