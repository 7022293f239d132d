package domain

import "fmt"

// Mode says whether sources are kept (copy) or removed after copying (move).
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeMove Mode = "move"
)

// ParseMode accepts "copy" or "move".
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeCopy, ModeMove:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("%q is not a valid mode, use copy or move", value)
	}
}

// String, Set and Type make *Mode usable as a pflag value.
func (m Mode) String() string {
	return string(m)
}

func (m *Mode) Set(value string) error {
	parsed, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *Mode) Type() string {
	return "copy|move"
}
