package util

import (
	"regexp"
	"strings"
)

var nonPhone = regexp.MustCompile(`[^\d\+]+`)

// NormalizePhone tries to normalize user input into E.164-like format.
// Dutch national numbers (06..., 010...) get the +31 prefix.
func NormalizePhone(raw string) string {
	s := nonPhone.ReplaceAllString(strings.TrimSpace(raw), "")

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	} else if strings.HasPrefix(s, "0") && len(s) == 10 {
		s = "+31" + s[1:]
	} else if strings.HasPrefix(s, "6") && len(s) == 9 {
		s = "+31" + s
	} else if strings.HasPrefix(s, "31") {
		s = "+" + s
	}

	return s
}
