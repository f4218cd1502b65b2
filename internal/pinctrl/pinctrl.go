package pinctrl

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// PinState is one line of `pinctrl get` output.
type PinState struct {
	Pin   int
	Mode  string // "ip", "op", "no"
	Pull  string // "pu", "pd", "pn"
	Drive string // "dh", "dl", ""
	Level string // "hi", "lo", "--"
}

var pinLineRegex = regexp.MustCompile(`^\s*(\d+):\s+(\S+)\s+(.*?)\s+\|\s+(\S+)\s+//\s+.*$`)

func parsePinLine(line string) (PinState, bool) {
	matches := pinLineRegex.FindStringSubmatch(line)
	if len(matches) != 5 {
		return PinState{}, false
	}

	index, _ := strconv.Atoi(matches[1])
	state := PinState{
		Pin:   index,
		Mode:  matches[2],
		Level: matches[4],
	}

	for _, opt := range strings.Fields(matches[3]) {
		if state.Pull == "" && (opt == "pu" || opt == "pd" || opt == "pn") {
			state.Pull = opt
		} else if state.Drive == "" && (opt == "dh" || opt == "dl") {
			state.Drive = opt
		}
	}
	return state, true
}

// ReadAllPins returns the parsed result of `pinctrl get`, keyed by GPIO number.
func ReadAllPins() (map[int]PinState, error) {
	cmd := exec.Command("pinctrl", "get")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute pinctrl get: %w", err)
	}

	result := make(map[int]PinState)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if state, ok := parsePinLine(scanner.Text()); ok {
			result[state.Pin] = state
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning pinctrl output: %w", err)
	}
	return result, nil
}

// ReadPin returns the PinState for a single GPIO pin.
func ReadPin(pin int) (*PinState, error) {
	all, err := ReadAllPins()
	if err != nil {
		return nil, err
	}
	state, ok := all[pin]
	if !ok {
		return nil, fmt.Errorf("pin %d not found in pinctrl output", pin)
	}
	return &state, nil
}

// ReadLevel performs a fast read of the logic level of a pin using `pinctrl lev <pin>`.
func ReadLevel(pin int) (bool, error) {
	cmd := exec.Command("pinctrl", "lev", fmt.Sprint(pin))
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("failed to read level for pin %d: %w", pin, err)
	}
	switch strings.TrimSpace(string(out)) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected output from pinctrl lev: %q", strings.TrimSpace(string(out)))
	}
}

// SetPin applies one or more pinctrl set options to the given GPIO pin.
// Example: SetPin(17, "op", "pn", "dh") sets pin 17 as output, no pull, drive high.
func SetPin(pin int, opts ...string) error {
	args := append([]string{"set", fmt.Sprint(pin)}, opts...)
	cmd := exec.Command("pinctrl", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pinctrl set failed: %s (output: %s)", err, string(out))
	}
	return nil
}
