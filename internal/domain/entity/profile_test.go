package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidWalletAddress(t *testing.T) {
	valid := []string{"0.0.12345", "0.0.2", "1.2.3", "10.20.30"}
	for _, addr := range valid {
		assert.True(t, ValidWalletAddress(addr), "expected %q to be valid", addr)
	}

	invalid := []string{
		"",
		"0.0",
		"0.0.12345.6",
		"0.0.abc",
		"0x1234abcd",
		" 0.0.12345",
		"0.0.12345 ",
		"-1.0.5",
	}
	for _, addr := range invalid {
		assert.False(t, ValidWalletAddress(addr), "expected %q to be invalid", addr)
	}
}
