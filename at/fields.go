package at

// Field extracts the next delimited field from s.
//
// It scans for the first occurrence of delim that is not inside a quoted
// substring: a '"' byte toggles an "inside quotes" flag, and a delimiter
// seen while the flag is set is not a field boundary. On a match it
// returns the field (with a surrounding quote pair stripped), the
// remainder of s after the delimiter, and true. If no unquoted delimiter
// exists, ok is false and the returned strings are empty.
//
// The scan is a pure function over s; it never allocates.
func Field(s string, delim byte) (field, rest string, ok bool) {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '"' {
			inQuotes = !inQuotes
		}
		if b == delim && !inQuotes {
			return Unquote(s[:i]), s[i+1:], true
		}
	}
	return "", "", false
}

// Unquote strips a single pair of surrounding '"' characters from s.
// Anything that is not wrapped in a matching pair is returned unchanged.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
