package utils

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{-time.Second, "0:00"},
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65*time.Second + 900*time.Millisecond, "1:05"},
		{62 * time.Minute, "62:00"},
	}

	for _, test := range tests {
		result := FormatTime(test.duration)
		if result != test.expected {
			t.Errorf("FormatTime(%v) = %s; expected %s", test.duration, result, test.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a very long string", 10, "this is..."},
		{"abcd", 3, "abc"},
		{"Песня номер один", 8, "Песня..."},
	}

	for _, test := range tests {
		result := TruncateString(test.input, test.maxLen)
		if result != test.expected {
			t.Errorf("TruncateString(%s, %d) = %s; expected %s", test.input, test.maxLen, result, test.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %v; expected 1", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3, 0, 10) = %v; expected 0", got)
	}
	if got := Clamp(5*time.Second, 0, 10*time.Second); got != 5*time.Second {
		t.Errorf("Clamp(5s, 0, 10s) = %v; expected 5s", got)
	}
}
