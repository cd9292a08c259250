package service

import "testing"

func TestHexColorPattern(t *testing.T) {
	valid := []string{"#ddd", "#DDD", "#ff5733", "#FF5733", "#2563EB"}
	for _, c := range valid {
		if !hexColorRe.MatchString(c) {
			t.Errorf("expected %q to be a valid color", c)
		}
	}

	invalid := []string{"", "ddd", "#dddd", "#gggggg", "#12345", "red", "#ff5733 "}
	for _, c := range invalid {
		if hexColorRe.MatchString(c) {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}
