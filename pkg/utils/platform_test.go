//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("PAINTRINGS_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

func TestIsMobile_Emulated(t *testing.T) {
	t.Setenv("PAINTRINGS_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("PAINTRINGS_MOBILE_EMULATE=1 时 IsMobile() 应返回 true")
	}
}
