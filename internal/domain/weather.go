package domain

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ForecastDays is the fixed length of the forward-looking forecast.
const ForecastDays = 5

// WeatherSnapshot is one simulated "current conditions" reading.
type WeatherSnapshot struct {
	TemperatureF int     `json:"temperature_f"`
	Condition    string  `json:"condition"`
	WindMPH      int     `json:"wind_mph"`
	HumidityPct  int     `json:"humidity_pct"`
	VisibilityMi float64 `json:"visibility_mi"`
	UVIndex      int     `json:"uv_index"`
	HighF        int     `json:"high_f"`
	LowF         int     `json:"low_f"`
}

// ForecastDay is one simulated forward-looking day. Each day is an
// independent draw; there is no day-to-day progression.
type ForecastDay struct {
	Date      time.Time `json:"date"`
	Condition string    `json:"condition"`
	HighF     int       `json:"high_f"`
	LowF      int       `json:"low_f"`
}

type season int

const (
	seasonWinter season = iota
	seasonSummer
	seasonShoulder
)

// coastalTowns are name substrings that force the coastal adjustment
// regardless of longitude.
var coastalTowns = []string{"kodiak", "sitka", "juneau"}

var conditionsBySeason = map[season][]string{
	seasonWinter:   {"Snow", "Light Snow", "Overcast", "Clear", "Partly Cloudy", "Ice Fog"},
	seasonSummer:   {"Sunny", "Partly Cloudy", "Light Rain", "Overcast", "Fog"},
	seasonShoulder: {"Overcast", "Partly Cloudy", "Rain Showers", "Clear", "Flurries"},
}

// WeatherGenerator produces plausible, bounded-random Alaska weather
// readings from latitude, longitude, and a community name. It is an
// explicit placeholder for a real weather feed: no external calls, no
// caching, no historical consistency. The current date and hour come
// from the package clock; randomness comes from the injected source.
//
// One generator is shared across all requests, and rand.Rand is not
// safe for concurrent use, so draws are serialized by mu.
type WeatherGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewWeatherGenerator creates a generator. Pass nil to use a
// time-seeded source; tests pass a seeded one for repeatable draws.
func NewWeatherGenerator(rng *rand.Rand) *WeatherGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &WeatherGenerator{rng: rng}
}

// Current simulates present conditions for the given location.
func (g *WeatherGenerator) Current(lat, lon float64, name string) WeatherSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := clock.Now()
	s := classifySeason(now.Month())
	night := isNight(now.Hour())

	temp := baselineF(s, lat)
	temp += coastalAdjustment(s, lon, name)
	if night {
		temp -= 8
	}
	temp += g.rng.Intn(10) - 5 // uniform in [-5, +4]

	uv := 0
	switch {
	case night:
		uv = 0
	case s == seasonWinter:
		uv = g.rng.Intn(2)
	default:
		uv = g.rng.Intn(5)
	}

	conds := conditionsBySeason[s]
	return WeatherSnapshot{
		TemperatureF: temp,
		Condition:    conds[g.rng.Intn(len(conds))],
		WindMPH:      5 + g.rng.Intn(21),
		HumidityPct:  55 + g.rng.Intn(41),
		VisibilityMi: float64(2 + g.rng.Intn(9)),
		UVIndex:      uv,
		HighF:        temp + 3 + g.rng.Intn(6),
		LowF:         temp - 3 - g.rng.Intn(6),
	}
}

// Forecast simulates the next ForecastDays days. Days are independent
// draws of the same machinery, uncorrelated with Current or each other.
func (g *WeatherGenerator) Forecast(lat, lon float64, name string) []ForecastDay {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := clock.Now()
	s := classifySeason(now.Month())
	conds := conditionsBySeason[s]

	days := make([]ForecastDay, ForecastDays)
	for i := range days {
		temp := baselineF(s, lat)
		temp += coastalAdjustment(s, lon, name)
		temp += g.rng.Intn(10) - 5

		days[i] = ForecastDay{
			Date:      now.AddDate(0, 0, i+1),
			Condition: conds[g.rng.Intn(len(conds))],
			HighF:     temp + 3 + g.rng.Intn(6),
			LowF:      temp - 3 - g.rng.Intn(6),
		}
	}
	return days
}

// classifySeason buckets the month: Nov-Feb winter, Jun-Sep summer,
// everything else shoulder.
func classifySeason(m time.Month) season {
	switch {
	case m >= time.November || m <= time.February:
		return seasonWinter
	case m >= time.June && m <= time.September:
		return seasonSummer
	default:
		return seasonShoulder
	}
}

// isNight classifies the hour: before 6am or 8pm onward.
func isNight(hour int) bool {
	return hour < 6 || hour >= 20
}

// baselineF selects the baseline temperature by season and latitude band.
func baselineF(s season, lat float64) int {
	switch s {
	case seasonWinter:
		switch {
		case lat > 65:
			return -25
		case lat > 60:
			return -10
		default:
			return 5
		}
	case seasonSummer:
		switch {
		case lat > 65:
			return 55
		case lat > 60:
			return 60
		default:
			return 62
		}
	default:
		switch {
		case lat > 65:
			return 20
		case lat > 60:
			return 32
		default:
			return 38
		}
	}
}

// coastalAdjustment moderates temperatures for maritime locations:
// warmer in winter, cooler otherwise. A location is coastal when its
// longitude magnitude exceeds 150° or its name contains a known coastal
// town substring.
func coastalAdjustment(s season, lon float64, name string) int {
	coastal := lon < -150 || lon > 150
	if !coastal {
		lower := strings.ToLower(name)
		for _, town := range coastalTowns {
			if strings.Contains(lower, town) {
				coastal = true
				break
			}
		}
	}
	if !coastal {
		return 0
	}
	if s == seasonWinter {
		return 15
	}
	return -8
}
