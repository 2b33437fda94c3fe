package config

import (
	"testing"
	"time"

	"classwatch/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("MONITOR_COOLDOWN", "45s")

	c := New().Prefix("MONITOR_")
	if got := c.MayDuration("COOLDOWN", 0); got != 45*time.Second {
		t.Fatalf("MayDuration=%v", got)
	}
}

func TestMayAccessorsFallBack(t *testing.T) {
	c := New().Prefix("CW_TEST_UNSET_")

	if got := c.MayString("NAME", "fallback"); got != "fallback" {
		t.Fatalf("MayString=%q", got)
	}
	if got := c.MayInt("COUNT", 7); got != 7 {
		t.Fatalf("MayInt=%d", got)
	}
	if got := c.MayFloat64("RATIO", 0.45); got != 0.45 {
		t.Fatalf("MayFloat64=%v", got)
	}
	if got := c.MayBool("FLAG", true); !got {
		t.Fatal("MayBool fallback")
	}
}

func TestMayAccessorsParse(t *testing.T) {
	t.Setenv("CW_TEST_COUNT", "12")
	t.Setenv("CW_TEST_RATIO", "0.6")
	t.Setenv("CW_TEST_FLAG", "true")

	c := New().Prefix("CW_TEST_")
	if got := c.MayInt("COUNT", 0); got != 12 {
		t.Fatalf("MayInt=%d", got)
	}
	if got := c.MayFloat64("RATIO", 0); got != 0.6 {
		t.Fatalf("MayFloat64=%v", got)
	}
	if !c.MayBool("FLAG", false) {
		t.Fatal("MayBool parse")
	}
}

func TestMustStringPanicsWhenMissing(t *testing.T) {
	c := New().Prefix("CW_TEST_UNSET_")
	testkit.MustPanic(t, func() { c.MustString("REQUIRED") })
}

func TestMustPort(t *testing.T) {
	t.Setenv("CW_TEST_PORT", "5000")
	t.Setenv("CW_TEST_BAD_PORT", "70000")

	c := New().Prefix("CW_TEST_")
	if got := c.MustPort("PORT"); got != ":5000" {
		t.Fatalf("MustPort=%q", got)
	}
	testkit.MustPanic(t, func() { c.MustPort("BAD_PORT") })
}
