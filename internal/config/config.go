package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	derr "github.com/burningtree/flixbux-prices/internal/domain/errors"
	"github.com/burningtree/flixbux-prices/internal/domain/models"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger    string          `yaml:"jaeger" env:"JAEGER"`
	Log       LogConfig       `yaml:"log"`
	Flixbus   FlixbusConfig   `yaml:"flixbus"`
	Compare   CompareConfig   `yaml:"compare"`
	Itinerary ItineraryConfig `yaml:"itinerary"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type FlixbusConfig struct {
	RootURL   string        `yaml:"root_url" env:"FLIXBUS_ROOT_URL" env-default:"https://www.flixbus.com/"`
	Timeout   time.Duration `yaml:"timeout" env:"FLIXBUS_TIMEOUT" env-default:"20s"`
	UserAgent string        `yaml:"user_agent" env:"FLIXBUS_USER_AGENT" env-default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
}

type CompareConfig struct {
	Currency    string `yaml:"currency" env:"COMPARE_CURRENCY" env-default:"CZK"`
	Concurrency int    `yaml:"concurrency" env:"COMPARE_CONCURRENCY" env-default:"8"`
	RatesPath   string `yaml:"rates_path" env:"COMPARE_RATES_PATH" env-default:"rates.json"`
}

type ItineraryConfig struct {
	Departure  string `yaml:"departure" env:"ITINERARY_DEPARTURE" env-default:"1374"`
	Arrival    string `yaml:"arrival" env:"ITINERARY_ARRIVAL" env-default:"1745"`
	Date       string `yaml:"date" env:"ITINERARY_DATE" env-default:"22.09.2018"`
	Adults     int    `yaml:"adults" env:"ITINERARY_ADULTS" env-default:"2"`
	Connection int    `yaml:"connection" env:"ITINERARY_CONNECTION" env-default:"17"`
}

// ItineraryArgs is the number of positional arguments that replace the defaults.
const ItineraryArgs = 5

func MustLoad() *Config {
	return MustLoadByPath(fetchConfigPath())
}

// MustLoadByPath reads the YAML file at configPath, or only the environment
// when the file does not exist.
func MustLoadByPath(configPath string) *Config {
	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read the config from env: " + err.Error())
		}
		return &cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

// ParseItinerary merges the configured defaults with positional arguments.
// The arguments are only used when exactly ItineraryArgs are given.
func ParseItinerary(args []string, defaults ItineraryConfig) (models.Itinerary, error) {
	const op = "config.ParseItinerary"

	raw := defaults
	if len(args) == ItineraryArgs {
		raw.Departure = args[0]
		raw.Arrival = args[1]
		raw.Date = args[2]

		adults, err := strconv.Atoi(strings.TrimSpace(args[3]))
		if err != nil {
			return models.Itinerary{}, fmt.Errorf("%s: adults %q: %w", op, args[3], derr.ErrInvalidItinerary)
		}
		raw.Adults = adults

		connection, err := strconv.Atoi(strings.TrimSpace(args[4]))
		if err != nil {
			return models.Itinerary{}, fmt.Errorf("%s: connection %q: %w", op, args[4], derr.ErrInvalidItinerary)
		}
		raw.Connection = connection
	}

	return raw.Itinerary()
}

func (c ItineraryConfig) Itinerary() (models.Itinerary, error) {
	const op = "config.ItineraryConfig.Itinerary"

	departure := strings.TrimSpace(c.Departure)
	arrival := strings.TrimSpace(c.Arrival)
	if departure == "" || arrival == "" {
		return models.Itinerary{}, fmt.Errorf("%s: departure and arrival are required: %w", op, derr.ErrInvalidItinerary)
	}

	rideDate, err := time.Parse(models.RideDateLayout, strings.TrimSpace(c.Date))
	if err != nil {
		return models.Itinerary{}, fmt.Errorf("%s: date %q: %w", op, c.Date, errors.Join(derr.ErrInvalidItinerary, err))
	}

	if c.Adults <= 0 {
		return models.Itinerary{}, fmt.Errorf("%s: adults must be positive: %w", op, derr.ErrInvalidItinerary)
	}
	if c.Connection <= 0 {
		return models.Itinerary{}, fmt.Errorf("%s: connection must be positive: %w", op, derr.ErrInvalidItinerary)
	}

	return models.Itinerary{
		DepartureCity: departure,
		ArrivalCity:   arrival,
		RideDate:      rideDate,
		Adults:        c.Adults,
		Connection:    c.Connection,
	}, nil
}
