package at_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/espkit/espgw/at"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Echoed command with data line",
			input:    "AT+CWMODE?\r\n+CWMODE:1\r\n",
			expected: []string{"AT+CWMODE?", "+CWMODE:1"},
		},
		{
			name:     "Version query",
			input:    "AT+GMR\r\n0018000902-AI03\r\n",
			expected: []string{"AT+GMR", "0018000902-AI03"},
		},
		{
			name: "Access point scan",
			input: "AT+CWLAP\r\n" +
				"+CWLAP:(0,\"Net1\",-40,\"aa:bb:cc:dd:ee:ff\",6)\r\n" +
				"+CWLAP:(3,\"Net2\",-70,\"11:22:33:44:55:66\",11)\r\n",
			expected: []string{
				"AT+CWLAP",
				"+CWLAP:(0,\"Net1\",-40,\"aa:bb:cc:dd:ee:ff\",6)",
				"+CWLAP:(3,\"Net2\",-70,\"11:22:33:44:55:66\",11)",
			},
		},
		{
			name:     "No association response",
			input:    "AT+CWJAP?\r\nNo AP\r\n",
			expected: []string{"AT+CWJAP?", "No AP"},
		},
		{
			name:     "Empty lines handling",
			input:    "\r\n\r\nAT\r\n\r\n",
			expected: []string{"", "", "AT", ""},
		},
		// EOF scenarios - testing atEOF functionality
		{
			name:     "Last line without CRLF at EOF",
			input:    "AT+CWLAP\r\n+CWLAP:(4,\"Net3\",-88,\"00:11:22:33:44:55\",1)",
			expected: []string{"AT+CWLAP", "+CWLAP:(4,\"Net3\",-88,\"00:11:22:33:44:55\",1)"},
		},
		{
			name:     "Bare command at EOF",
			input:    "AT+GMR",
			expected: []string{"AT+GMR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d.\nExpected: %v\nGot: %v",
					len(tt.expected), len(tokens), tt.expected, tokens)
			}

			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("Token %d: expected %q, got %q", i, expected, tokens[i])
				}
			}
		})
	}
}
