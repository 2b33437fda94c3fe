package violation

import "testing"

func TestKindPolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     Kind
		valid    bool
		critical bool
		oneShot  bool
	}{
		{KindInattentive, true, true, false},
		{KindDrowsy, true, false, false},
		{KindUniformMismatch, true, false, true},
		{KindAbsent, true, false, true},
		{Kind("bogus"), false, false, false},
		{Kind(""), false, false, false},
	}

	for _, c := range cases {
		if got := c.kind.Valid(); got != c.valid {
			t.Errorf("%q Valid=%v want %v", c.kind, got, c.valid)
		}
		if got := c.kind.Critical(); got != c.critical {
			t.Errorf("%q Critical=%v want %v", c.kind, got, c.critical)
		}
		if got := c.kind.OneShot(); got != c.oneShot {
			t.Errorf("%q OneShot=%v want %v", c.kind, got, c.oneShot)
		}
	}
}
