// Package ident derives canonical record ids from (source, external id)
//
// The encoding is a name-based UUID (version 5, SHA-1) over "source:externalId" under a fixed
// project namespace. Every record kind goes through Generate so ids agree across adapters,
// processes and restarts.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"engagegov/internal/core/records"

	"github.com/google/uuid"
)

// Namespace scopes generated ids to this project; changing it changes every id
var Namespace = uuid.MustParse("6f1c7a52-3d8e-5b0a-9c44-2e7b1d0f8a61")

// SynthPrefix marks external ids synthesized from record content
const SynthPrefix = "synth-"

// Generate returns the canonical id for (source, externalID); pure and total
func Generate(source records.Source, externalID string) records.ID {
	return records.ID(uuid.NewSHA1(Namespace, []byte(string(source)+":"+externalID)).String())
}

// Synthesize builds a stable stand-in external id from identifying content
// returns "" when every part is blank so callers can drop the record
func Synthesize(parts ...string) string {
	var b strings.Builder
	blank := true
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			blank = false
		}
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(p)
	}
	if blank {
		return ""
	}
	sum := sha256.Sum256([]byte(b.String()))
	return SynthPrefix + hex.EncodeToString(sum[:8])
}

// IsSynthetic reports whether an external id was made by Synthesize
func IsSynthetic(externalID string) bool { return strings.HasPrefix(externalID, SynthPrefix) }
