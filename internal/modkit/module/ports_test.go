package module

import (
	"testing"

	phttp "engagegov/internal/platform/net/http"
)

type pinger interface{ Ping() string }

type pingImpl struct{}

func (pingImpl) Ping() string { return "pong" }

type stub struct{ ports any }

func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }
func (s stub) Name() string             { return "stub" }

func TestPortsOf(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		ports any
		ok    bool
	}{
		"nil":           {nil, false},
		"direct":        {pingImpl{}, true},
		"field":         {struct{ P pinger }{P: pingImpl{}}, true},
		"pointer field": {&struct{ P pinger }{P: pingImpl{}}, true},
		"nil field":     {struct{ P pinger }{}, false},
		"unrelated":     {struct{ N int }{N: 1}, false},
	}
	for name, tc := range cases {
		p, ok := PortsOf[pinger](stub{ports: tc.ports})
		if ok != tc.ok {
			t.Fatalf("%s: ok=%v want %v", name, ok, tc.ok)
		}
		if ok && p.Ping() != "pong" {
			t.Fatalf("%s: wrong port", name)
		}
	}
}
