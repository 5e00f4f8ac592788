package testkit

import (
	"io"
	"net/http"
	"testing"
)

func TestMustHelpers(t *testing.T) {
	if msg := MustPanic(t, func() { panic("boom") }); msg != "boom" {
		t.Fatalf("recovered %q", msg)
	}
	MustContain(t, `{"source":"camara","count":2}`, `"source":"camara"`, `"count":2`)
}

func TestUpstream(t *testing.T) {
	u := NewUpstream(t).JSON("/api/v2/deputados", http.StatusOK, `{"dados":[]}`)

	res, err := http.Get(u.URL + "/api/v2/deputados?itens=5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK || string(body) != `{"dados":[]}` {
		t.Fatalf("status=%d body=%q", res.StatusCode, body)
	}

	res, err = http.Get(u.URL + "/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", res.StatusCode)
	}

	if u.Count("/api/v2/deputados") != 1 || u.Count("/api/v2/deputado") != 0 {
		t.Fatalf("Count mismatch: %v", u.Hits())
	}
	if hits := u.Hits(); len(hits) != 2 || hits[0] != "/api/v2/deputados?itens=5" {
		t.Fatalf("Hits = %v", hits)
	}
}
