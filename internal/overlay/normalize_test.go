package overlay

import (
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"ColorImage", "colorimage"},
		{"color_image", "colorimage"},
		{"color-image", "colorimage"},
		{"colorImage", "colorimage"},
		{"COLORIMAGE", "colorimage"},

		// CamelCase variations
		{"RGBData", "rgbdata"},
		{"xAxis", "xaxis"},
		{"DPI", "dpi"},

		// Edge cases
		{"", ""},
		{"x", "x"},
		{"X", "x"},

		// Mixed separators
		{"color image-Data", "colorimagedata"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := normalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSameIdent(t *testing.T) {
	tests := []struct {
		overlay  string
		goID     string
		expected bool
	}{
		{"ColorImage", "ColorImage", true},
		{"color_image", "ColorImage", true},
		{"examples.ColorImage", "ColorImage", true},
		{"darray/examples.color_image", "ColorImage", true},
		{"ColorImage", "Image", false},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.overlay+"_"+tt.goID, func(t *testing.T) {
			if got := sameIdent(tt.overlay, tt.goID); got != tt.expected {
				t.Errorf("sameIdent(%q, %q) = %v, want %v", tt.overlay, tt.goID, got, tt.expected)
			}
		})
	}
}
