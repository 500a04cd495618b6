package types

import (
	"fmt"
	"regexp"
)

var (
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dmyDatePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// CanonicalSittingDate parses an accepted date input (DD-MM-YYYY or
// YYYY-MM-DD) and returns it in canonical ISO YYYY-MM-DD form. Any other
// shape is rejected.
func CanonicalSittingDate(input string) (string, error) {
	if m := isoDatePattern.FindStringSubmatch(input); m != nil {
		return input, nil
	}
	if m := dmyDatePattern.FindStringSubmatch(input); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), nil
	}
	return "", fmt.Errorf("invalid sitting date %q: expected DD-MM-YYYY or YYYY-MM-DD", input)
}

// BuildTranscriptID constructs the stable, deterministic transcript id
// from canonicalized sitting date and optional parliament/session numbers.
func BuildTranscriptID(isoDate string, parliamentNo, sessionNo int) string {
	if parliamentNo > 0 && sessionNo > 0 {
		return fmt.Sprintf("%s-p%d-s%d", isoDate, parliamentNo, sessionNo)
	}
	return fmt.Sprintf("%s-sitting-1", isoDate)
}
