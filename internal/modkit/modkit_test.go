package modkit

import (
	"net/http"
	"testing"

	"engagegov/internal/platform/cache"
)

func TestDeps_Normalize(t *testing.T) {
	t.Parallel()
	d := Deps{}.Normalize()
	if d.Log == nil {
		t.Fatal("expected a logger")
	}
	if d.Cache != nil {
		t.Fatalf("expected cache left to the module, got %T", d.Cache)
	}

	m := cache.NewMemory()
	if got := (Deps{Cache: m}).Normalize().Cache; got != m {
		t.Fatal("Normalize replaced a configured cache")
	}
}

func TestBuild_DefaultsAndOptions(t *testing.T) {
	t.Parallel()
	b := Build("govdata")
	if b.Name != "govdata" || b.Prefix != "" {
		t.Fatalf("unexpected defaults %+v", b)
	}

	type ports struct{ N int }
	b = Build("govdata", WithName("gov"), WithPrefix("gov/"), WithPorts(ports{N: 7}))
	if b.Name != "gov" || b.Prefix != "/gov" {
		t.Fatalf("options not applied %+v", b)
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("unexpected ports %#v", b.Ports)
	}
}

func TestWithMiddlewares_KeepsOrder(t *testing.T) {
	t.Parallel()
	var calls []string
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	b := Build("x", WithMiddlewares(mw("a"), mw("b")), WithMiddlewares(mw("c")))
	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(b.Mw) - 1; i >= 0; i-- {
		h = b.Mw[i](h)
	}
	h.ServeHTTP(nil, nil)

	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("middleware order mismatch: %v", calls)
	}
}
