package app

import "testing"

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"5000": ":5000", " :8080 ": ":8080"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := ListenAddr("  "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}
