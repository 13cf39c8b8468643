package weather

// Location identifies the place a snapshot describes, as resolved by the
// upstream provider.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Condition is the normalized description of the sky: the provider's native
// condition code plus the shared icon token derived from it.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // "<2-digit bucket><d|n>"
	ID          int    `json:"id"`
}

// CurrentConditions holds the observed readings at a point in time.
// Timestamps are Unix seconds, matching the upstream representation.
type CurrentConditions struct {
	Temp       float64   `json:"temp"`
	FeelsLike  float64   `json:"feels_like"`
	TempMin    float64   `json:"temp_min"`
	TempMax    float64   `json:"temp_max"`
	Humidity   int       `json:"humidity"`
	Pressure   int       `json:"pressure"`
	WindSpeed  float64   `json:"wind_speed"`
	WindDeg    int       `json:"wind_deg"`
	Weather    Condition `json:"weather"`
	Visibility int       `json:"visibility"`
	DT         int64     `json:"dt"`
}

// SunTimes carries the sunrise and sunset timestamps for the location.
type SunTimes struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

// WeatherSnapshot is the normalized current-conditions record produced once
// per successful upstream fetch. It is never mutated after being stored; a
// newer fetch replaces it wholesale.
type WeatherSnapshot struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Sys      SunTimes          `json:"sys"`
}

// ForecastCity is the resolved city metadata attached to a forecast.
type ForecastCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ForecastPoint is one normalized forecast reading at a future timestamp.
type ForecastPoint struct {
	DT        int64     `json:"dt"`
	Temp      float64   `json:"temp"`
	TempMin   float64   `json:"temp_min"`
	TempMax   float64   `json:"temp_max"`
	Humidity  int       `json:"humidity"`
	WindSpeed float64   `json:"wind_speed"`
	Weather   Condition `json:"weather"`
}

// ForecastSnapshot is the normalized multi-point forecast: readings ordered
// by timestamp ascending plus the resolved city metadata. Same immutability
// and cache-key rules as WeatherSnapshot.
type ForecastSnapshot struct {
	List []ForecastPoint `json:"list"`
	City ForecastCity    `json:"city"`
}

// SearchResult is one geocoding match for a city search.
type SearchResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
