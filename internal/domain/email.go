package domain

import "strings"

// ValidEmail applies the loose address rule used by the admin forms:
// a non-blank local part, an "@", and a domain with a dot that is
// neither its first nor its last character. Whitespace is rejected.
func ValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 1 {
		return false
	}
	host := s[at+1:]
	dot := strings.LastIndex(host, ".")
	return dot > 0 && dot < len(host)-1
}
