package domain

import (
	"fmt"
	"regexp"
)

// StampDigits is the length of the timestamp prefix a candidate file name starts with.
const StampDigits = 12

var candidatePattern = regexp.MustCompile(fmt.Sprintf(`^(\d{%d})(\..+)$`, StampDigits))

// Candidate is a file name made of a timestamp prefix followed by an extension.
type Candidate struct {
	Name  string
	Stamp string
	Ext   string // includes the leading dot
}

// ParseCandidate splits name into its timestamp prefix and extension. It reports
// false for names that do not have the expected shape.
func ParseCandidate(name string) (Candidate, bool) {
	match := candidatePattern.FindStringSubmatch(name)
	if match == nil {
		return Candidate{}, false
	}
	return Candidate{
		Name:  name,
		Stamp: match[1],
		Ext:   match[2],
	}, true
}
