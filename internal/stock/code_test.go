package stock

import (
	"errors"
	"testing"
)

func TestFormatCode(t *testing.T) {
	tests := []struct {
		ordinal int
		want    string
	}{
		{1, "I001"},
		{42, "I042"},
		{999, "I999"},
	}
	for _, tt := range tests {
		got, err := FormatCode(tt.ordinal)
		if err != nil {
			t.Fatalf("FormatCode(%d): %v", tt.ordinal, err)
		}
		if got != tt.want {
			t.Errorf("FormatCode(%d) = %q, want %q", tt.ordinal, got, tt.want)
		}
	}
}

func TestFormatCode_CapacityExceeded(t *testing.T) {
	_, err := FormatCode(1000)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestNextCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty scope", nil, "I001"},
		{"sequential", []string{"I001", "I002"}, "I003"},
		{"gaps do not matter", []string{"I001", "I017"}, "I018"},
		{"non-code strings ignored", []string{"I005", "KEG-9", "", "X123"}, "I006"},
		{"unpadded suffix still parses", []string{"I7"}, "I008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextCode(tt.existing)
			if err != nil {
				t.Fatalf("NextCode: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextCode(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}

func TestNextCode_CapacityExceeded(t *testing.T) {
	_, err := NextCode([]string{"I999"})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}
