package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

type GPIO struct {
	// pump relay
	PumpRelayPin *int `json:"pump_relay"`

	// spare relay position on the board, unused but reserved
	AuxRelayPin *int `json:"aux_relay"`
}

type Config struct {
	ConfigFile string
	DBFile     string
	LogFile    string
	LogLevel   zerolog.Level
	SafeMode   bool
	Install    bool

	// watering schedule
	MorningHour     int    `json:"morning_hour"`
	MiddayHour      int    `json:"midday_hour"`
	EveningHour     int    `json:"evening_hour"`
	WateringMinutes int    `json:"watering_minutes"`
	Mode            string `json:"mode"`

	// peripherals
	I2CDevice       string `json:"i2c_device"`
	RTCAddr         int    `json:"rtc_addr"`
	DisplayAddr     int    `json:"display_addr"`
	SensorDevice    string `json:"sensor_device"`
	RainDevice      string `json:"rain_device"`
	RelayActiveHigh bool   `json:"relay_active_high"`

	GPIO GPIO `json:"gpio"`

	// boot-time pin setup
	BootScriptFilePath string `json:"boot_script_file_path"`
	OSServicePath      string `json:"os_service_path"`
	MainServicePath    string `json:"main_service_path"`

	// observability
	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`
	NtfyTopic     string   `json:"ntfy_topic"`
}

func Load() Config {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&cfg.DBFile, "db-file", "data/wall.db", "Path to the history database file")
	flag.StringVar(&cfg.LogFile, "log-file", "/var/log/irrigation-controller.log", "Path to log file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.SafeMode, "safe-mode", false, "Disable all relay writes")
	flag.BoolVar(&cfg.Install, "install", false, "Write the boot pin script and systemd units, then exit")
	flag.Parse()

	cfg.LogLevel = parseLogLevel(logLevel)

	file, err := os.Open(cfg.ConfigFile)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	applyDefaults(&cfg)
	cfg.validate()
	return cfg
}

// applyDefaults fills in the stock planting-wall schedule and bus locations
// for fields the config file leaves at zero.
func applyDefaults(cfg *Config) {
	if cfg.MorningHour == 0 && cfg.MiddayHour == 0 && cfg.EveningHour == 0 {
		cfg.MorningHour = 6
		cfg.MiddayHour = 13
		cfg.EveningHour = 21
	}
	if cfg.WateringMinutes == 0 {
		cfg.WateringMinutes = 5
	}
	if cfg.Mode == "" {
		cfg.Mode = "scheduled"
	}
	if cfg.I2CDevice == "" {
		cfg.I2CDevice = "/dev/i2c-1"
	}
	if cfg.RTCAddr == 0 {
		cfg.RTCAddr = 0x68
	}
	if cfg.DisplayAddr == 0 {
		cfg.DisplayAddr = 0x27
	}
	if cfg.BootScriptFilePath == "" {
		cfg.BootScriptFilePath = "/usr/local/bin/plantwall-pins.sh"
	}
	if cfg.OSServicePath == "" {
		cfg.OSServicePath = "/etc/systemd/system/plantwall-pins.service"
	}
	if cfg.MainServicePath == "" {
		cfg.MainServicePath = "/etc/systemd/system/irrigation-controller.service"
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var (
		missingFields []string
		usedPins      = map[int]string{}
		conflicts     []string
	)

	v := reflect.ValueOf(cfg.GPIO)
	t := reflect.TypeOf(cfg.GPIO)

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := t.Field(i).Tag.Get("json")

		if field.IsNil() {
			missingFields = append(missingFields, "gpio."+fieldName)
			continue
		}

		pin := field.Elem().Int()
		if other, exists := usedPins[int(pin)]; exists {
			conflicts = append(conflicts, fmt.Sprintf("gpio.%s and gpio.%s both use pin %d", fieldName, other, pin))
		} else {
			usedPins[int(pin)] = fieldName
		}
	}

	if len(missingFields) > 0 {
		panic("Missing required GPIO config fields: " + strings.Join(missingFields, ", "))
	}
	if len(conflicts) > 0 {
		panic("Conflicting GPIO pins: " + strings.Join(conflicts, ", "))
	}

	var badWindows []string
	for name, hour := range map[string]int{
		"morning_hour": cfg.MorningHour,
		"midday_hour":  cfg.MiddayHour,
		"evening_hour": cfg.EveningHour,
	} {
		if hour < 0 || hour > 23 {
			badWindows = append(badWindows, fmt.Sprintf("%s %d is outside [0,23]", name, hour))
			continue
		}
		// Windows are anchored to the reading's calendar date, so a window
		// crossing midnight would end on a date the engine never constructs.
		// Reject the configuration outright.
		if hour*60+cfg.WateringMinutes > 24*60 {
			badWindows = append(badWindows, fmt.Sprintf("%s %d + %d minutes crosses midnight", name, hour, cfg.WateringMinutes))
		}
	}
	if cfg.WateringMinutes < 1 {
		badWindows = append(badWindows, fmt.Sprintf("watering_minutes %d must be at least 1", cfg.WateringMinutes))
	}
	if len(badWindows) > 0 {
		panic("Invalid watering schedule: " + strings.Join(badWindows, ", "))
	}

	if cfg.Mode != "scheduled" && cfg.Mode != "demo" {
		panic("Invalid mode: " + cfg.Mode + " (want scheduled or demo)")
	}
}
