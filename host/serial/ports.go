package serial

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	enumerator "go.bug.st/serial"
)

// AutoDevice in Config.Device selects the first board-like port found.
const AutoDevice = "auto"

// ErrNoPort is returned when auto detection finds no candidate.
var ErrNoPort = errors.New("no USB serial port found")

// ListPorts returns the serial devices present on the system, sorted.
func ListPorts() ([]string, error) {
	ports, err := enumerator.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}

// Detect picks the first USB CDC or USB-serial device from ports.
// CDC devices (the RP boards' native USB) are preferred.
func Detect(ports []string) (string, error) {
	for _, marker := range []string{"ttyACM", "usbmodem", "ttyUSB", "usbserial"} {
		for _, p := range ports {
			if strings.Contains(p, marker) {
				return p, nil
			}
		}
	}
	return "", ErrNoPort
}

// Resolve replaces AutoDevice in cfg with a detected port.
func Resolve(cfg *Config) error {
	if cfg == nil || cfg.Device != AutoDevice {
		return nil
	}
	ports, err := ListPorts()
	if err != nil {
		return err
	}
	dev, err := Detect(ports)
	if err != nil {
		return err
	}
	cfg.Device = dev
	return nil
}
