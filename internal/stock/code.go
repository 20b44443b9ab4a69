package stock

import (
	"fmt"
	"regexp"
	"strconv"
)

// Scannable codes are "I" plus a zero-padded 3-digit ordinal, unique within
// their scope (a whole company, or one operator inside it).
const (
	codePrefix     = "I"
	codeWidth      = 3
	maxCodeOrdinal = 999
)

var codePattern = regexp.MustCompile(`^I(\d+)$`)

// FormatCode renders an ordinal as a scannable code. Ordinals past 999 are
// rejected instead of widening the field.
func FormatCode(ordinal int) (string, error) {
	if ordinal > maxCodeOrdinal {
		return "", fmt.Errorf("%w: ordinal %d", ErrCapacityExceeded, ordinal)
	}
	return fmt.Sprintf("%s%0*d", codePrefix, codeWidth, ordinal), nil
}

// NextCode derives the next code from the codes already issued in a scope:
// highest numeric suffix plus one, starting at 1 when the scope is empty.
// Strings that do not look like codes are ignored.
func NextCode(existing []string) (string, error) {
	maxSeen := 0
	for _, code := range existing {
		m := codePattern.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxSeen {
			maxSeen = n
		}
	}
	return FormatCode(maxSeen + 1)
}
