package module

import (
	"slices"
	"strings"

	"engagegov/internal/modkit/swaggerkit"
)

func init() { swaggerkit.Register(describeGov) }

// describeGov documents the source keys on the Gov tag
func describeGov(spec map[string]any) {
	var keys []string
	for k := range Defaults().Sources {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	tags, _ := spec["tags"].([]any)
	spec["tags"] = append(tags, map[string]any{
		"name":        "Gov",
		"description": "Legislative open data; source is one of " + strings.Join(keys, ", "),
	})
}
