package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/plantwall/irrigation-controller/internal/model"
)

func RecordPumpEvent(dbConn *sql.DB, at time.Time, on bool, reason string) error {
	_, err := dbConn.Exec(`INSERT INTO pump_events (ts, pump_on, reason) VALUES (?, ?, ?)`,
		at.Format(time.RFC3339), on, reason)
	if err != nil {
		return fmt.Errorf("failed to insert pump event: %w", err)
	}
	return nil
}

func RecordReading(dbConn *sql.DB, at time.Time, humidity, temperatureC float64) error {
	_, err := dbConn.Exec(`INSERT INTO readings (ts, humidity, temperature_c) VALUES (?, ?, ?)`,
		at.Format(time.RFC3339), humidity, temperatureC)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// RecentPumpEvents returns up to n pump transitions, newest first.
func RecentPumpEvents(dbConn *sql.DB, n int) ([]model.PumpEvent, error) {
	rows, err := dbConn.Query(`SELECT ts, pump_on, reason FROM pump_events ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query pump events: %w", err)
	}
	defer rows.Close()

	var events []model.PumpEvent
	for rows.Next() {
		var (
			e  model.PumpEvent
			ts string
		)
		if err := rows.Scan(&ts, &e.PumpOn, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan pump event: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pump event timestamp: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// RecentReadings returns up to n environment readings, newest first.
func RecentReadings(dbConn *sql.DB, n int) ([]model.EnvReading, error) {
	rows, err := dbConn.Query(`SELECT ts, humidity, temperature_c FROM readings ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []model.EnvReading
	for rows.Next() {
		var (
			r  model.EnvReading
			ts string
		)
		if err := rows.Scan(&ts, &r.Humidity, &r.TemperatureC); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		r.At, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reading timestamp: %w", err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}
