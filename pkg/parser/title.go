package parser

import (
	"errors"
	"strings"
)

var ErrNoTitle = errors.New("no level 1 heading found")

// ExtractTitle returns the text of the first "# " line
func ExtractTitle(doc string) (string, error) {
	for _, line := range strings.Split(NormalizeNewlines(doc), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrNoTitle
}
