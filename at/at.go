package at

const (
	// Terminal Control
	CRLF = "\r\n"

	// Response Codes
	OK    = "OK"
	ERROR = "ERROR"

	// Response terminators. The module ends every response with exactly one
	// of these phrases; framing is done by matching them against the tail of
	// the accumulated byte stream, never against a single read in isolation.
	EndPhrase   = CRLF + OK + CRLF
	ErrorPhrase = CRLF + ERROR + CRLF
)
