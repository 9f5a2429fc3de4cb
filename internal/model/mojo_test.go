package model

import (
	"math"
	"testing"
)

func TestFormatXCH(t *testing.T) {
	tests := []struct {
		mojos uint64
		want  string
	}{
		{0, "0"},
		{1, "0.000000000001"},
		{MojosPerXCH, "1"},
		{2 * MojosPerXCH, "2"},
		{1750000000000, "1.75"},
		{4849173605, "0.004849173605"},
		{math.MaxUint64, "18446744.073709551615"},
	}
	for _, tt := range tests {
		if got := FormatXCH(tt.mojos); got != tt.want {
			t.Errorf("FormatXCH(%d): expected %q, got %q", tt.mojos, tt.want, got)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want EventPriority
	}{
		{"low", PriorityLow},
		{"normal", PriorityNormal},
		{"HIGH", PriorityHigh},
		{"", PriorityLow},
		{"urgent", PriorityLow},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
