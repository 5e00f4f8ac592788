//go:build property
// +build property

package ident

import (
	"testing"

	"engagegov/internal/core/records"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGenerateDeterminism checks Generate(s, e) == Generate(s, e) for any input
func TestGenerateDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("same input yields same id", prop.ForAll(
		func(src, ext string) bool {
			return Generate(records.Source(src), ext) == Generate(records.Source(src), ext)
		},
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestGenerateSeparation checks distinct external ids and distinct sources never collide
func TestGenerateSeparation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("distinct external ids under one source differ", prop.ForAll(
		func(e1, e2 string) bool {
			if e1 == e2 {
				return true
			}
			return Generate(records.SourceCamara, e1) != Generate(records.SourceCamara, e2)
		},
		gen.NumString(),
		gen.NumString(),
	))

	properties.Property("same external id under two sources differs", prop.ForAll(
		func(e string) bool {
			return Generate(records.SourceCamara, e) != Generate(records.SourceSenado, e)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
