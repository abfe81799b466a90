package notify

import "testing"

func TestFormatKRW(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1408000:  "1,408,000",
		-1500:    "-1,500",
		12345678: "12,345,678",
	}
	for in, want := range cases {
		if got := formatKRW(in); got != want {
			t.Fatalf("formatKRW(%d) = %q, want %q", in, got, want)
		}
	}
}
