package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagePrefixes(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Success", Success, "✓"},
		{"Warn", Warn, "⚠"},
		{"Err", Err, "✗"},
		{"Info", Info, "ℹ"},
		{"Hint", Hint, "→"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.fn("joined the whitelist")
			assert.Contains(t, out, tc.prefix)
			assert.Contains(t, out, "joined the whitelist")
			assert.Contains(t, tc.fn(""), tc.prefix)
		})
	}
}

func TestInfoDifferentFromHint(t *testing.T) {
	assert.NotEqual(t, Info("message"), Hint("message"))
}

func TestPlainFormattersKeepInput(t *testing.T) {
	formatters := map[string]func(string) string{
		"Addr":      Addr,
		"Val":       Val,
		"Meta":      Meta,
		"ChainName": ChainName,
	}
	for name, fn := range formatters {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("goerli"), "goerli")
		})
	}
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "", TruncateAddr(""))
	assert.Equal(t, "0x1234", TruncateAddr("0x1234"))
	assert.Equal(t, "0x12345678", TruncateAddr("0x12345678"))

	addr := "0x1234567890abcdef1234567890abcdef12345678"
	assert.Equal(t, "0x1234…5678", TruncateAddr(addr))
}
