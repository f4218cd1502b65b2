package rtc

import (
	"fmt"
	"time"
)

// weekdayNames is indexed 0-6 from Sunday, matching time.Weekday.
var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// monthNames is looked up with the calendar month (1-12) minus one.
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// DisplayLine renders t for the 16-column LCD top row: " 02 Jan 15:04:05".
func DisplayLine(t time.Time) string {
	return fmt.Sprintf(" %02d %s %02d:%02d:%02d",
		t.Day(), monthNames[int(t.Month())-1], t.Hour(), t.Minute(), t.Second())
}

// DiagnosticLine renders t for the log stream with the full weekday name.
func DiagnosticLine(t time.Time) string {
	return fmt.Sprintf("%s %02d %s %d %02d:%02d:%02d",
		weekdayNames[int(t.Weekday())], t.Day(), monthNames[int(t.Month())-1],
		t.Year(), t.Hour(), t.Minute(), t.Second())
}
