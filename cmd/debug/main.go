package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plantwall/irrigation-controller/db"
	"github.com/plantwall/irrigation-controller/internal/pinctrl"
)

func main() {
	var dbPath string
	var pin, limit int
	flag.StringVar(&dbPath, "db", "data/wall.db", "Path to the history database file")
	flag.IntVar(&pin, "pin", -1, "GPIO pin to inspect (-1 to skip)")
	flag.IntVar(&limit, "limit", 20, "Number of history rows to show")
	flag.Parse()

	dbConn, err := db.Open(dbPath)
	if err != nil {
		fmt.Printf("Failed to open %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer dbConn.Close()

	events, err := db.RecentPumpEvents(dbConn, limit)
	if err != nil {
		fmt.Printf("Failed to read pump events: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Recent pump events:")
	for _, e := range events {
		state := "off"
		if e.PumpOn {
			state = "on"
		}
		fmt.Printf("  %s  pump %-3s  %s\n", e.At.Format("2006-01-02 15:04:05"), state, e.Reason)
	}

	readings, err := db.RecentReadings(dbConn, limit)
	if err != nil {
		fmt.Printf("Failed to read readings: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Recent readings:")
	for _, r := range readings {
		fmt.Printf("  %s  H: %6.2f%%  T: %5.2fC\n", r.At.Format("2006-01-02 15:04:05"), r.Humidity, r.TemperatureC)
	}

	if pin >= 0 {
		state, err := pinctrl.ReadPin(pin)
		if err != nil {
			fmt.Printf("Failed to read pin %d: %v\n", pin, err)
			os.Exit(1)
		}
		fmt.Printf("Pin %d: mode=%s pull=%s drive=%s level=%s\n",
			state.Pin, state.Mode, state.Pull, state.Drive, state.Level)
	}
}
