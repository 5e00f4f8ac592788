package strings

import "testing"

func TestPrefix(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":        "",
		"/":       "",
		" gov ":   "/gov",
		"/gov/":   "/gov",
		"//meta/": "/meta",
		"api/v1":  "/api/v1",
	}
	for in, want := range cases {
		if got := Prefix(in); got != want {
			t.Fatalf("Prefix(%q) = %q want %q", in, got, want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	t.Parallel()
	if got := FirstNonBlank("", "  ", " camara ", "senado"); got != "camara" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Fatalf("got %q", got)
	}
}
