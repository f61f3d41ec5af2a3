package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"statement.pdf", "statement.pdf"},
		{"My Statement Jan 2025.pdf", "My_Statement_Jan_2025.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\bank.pdf`, "bank.pdf"},
		{"a..b.pdf", "a_b.pdf"},
		{"stmt (1) #2.pdf", "stmt_1_2.pdf"},
		{"...", "statement"},
		{"", "statement"},
		{"ＳＢＩ.pdf", "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestStatementStem(t *testing.T) {
	assert.Equal(t, "hdfc_jan", StatementStem("/data/in/hdfc jan.pdf"))
	assert.Equal(t, "ledger", StatementStem("ledger.txt"))
}
