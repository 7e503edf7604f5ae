package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " debug ")
	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get = %q, want trimmed value", got)
	}
	if got := c.Get("ABSENT", "info"); got != "info" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New()
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"yes", false, true},
		{"TRUE", false, true},
		{"0", true, false},
		{"no", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, cse := range cases {
		t.Setenv("FLAG", cse.val)
		if got := c.GetBool("FLAG", cse.def); got != cse.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", cse.val, cse.def, got, cse.want)
		}
	}
}
