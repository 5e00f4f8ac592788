// Command engagegov-probe runs one aggregation operation against the live sources and prints JSON
//
//	engagegov-probe -source senado -op laws -year 2024 -items 5
//	engagegov-probe -op law -id 2345
//	engagegov-probe -source senado -op representatives -plan
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"engagegov/internal/adapters/govdata/endpoint"
	"engagegov/internal/core/records"
	"engagegov/internal/modkit"
	"engagegov/internal/platform/cache"
	"engagegov/internal/platform/config"
	"engagegov/internal/platform/logger"
	"engagegov/internal/services/govdata/domain"
	govmod "engagegov/internal/services/govdata/module"
)

func main() {
	source := flag.String("source", "", "source key, blank for the default")
	op := flag.String("op", "laws", "representatives | laws | law | speeches | sources")
	year := flag.Int("year", 0, "filter laws by year, 0 for none")
	items := flag.Int("items", 0, "page size for laws, 0 for the default")
	id := flag.String("id", "", "external id for -op law")
	timeout := flag.Duration("timeout", 60*time.Second, "overall deadline")
	plan := flag.Bool("plan", false, "print the candidate URLs for -op in order instead of fetching")
	flag.Parse()

	logger.Init(logger.FromEnv())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, *source, *op, *year, *items, *id, *plan); err != nil {
		fmt.Fprintln(os.Stderr, "probe:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, source, op string, year, items int, id string, plan bool) error {
	// every probe goes upstream
	m, err := govmod.New(modkit.Deps{Cfg: config.New(), Cache: cache.Nop{}})
	if err != nil {
		return err
	}
	svc := m.Service()

	if plan {
		var y *int
		if year > 0 {
			y = &year
		}
		return printPlan(svc.Router().Dispatch, source, op, endpoint.Params{Year: y, Limit: items, ExternalID: id})
	}

	var out any
	switch op {
	case "representatives":
		out, err = svc.GetRepresentatives(ctx, source)
	case "laws":
		var y *int
		if year > 0 {
			y = &year
		}
		out, err = svc.GetLegislativeItems(ctx, source, y, items)
	case "law":
		var it *records.LegislativeItem
		var ok bool
		it, ok, err = svc.GetLegislativeItemByExternalID(ctx, source, id)
		if err == nil && !ok {
			return fmt.Errorf("%s not found", id)
		}
		out = it
	case "speeches":
		out, err = svc.GetSpeeches(ctx, source)
	case "sources":
		out = svc.Sources()
	default:
		return fmt.Errorf("unknown op %q", op)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// planner is implemented by adapters built on govdata.Base
type planner interface {
	Resolver() *endpoint.Resolver
}

var probeOps = map[string]endpoint.Operation{
	"representatives": endpoint.OpRepresentatives,
	"laws":            endpoint.OpLegislativeItems,
	"law":             endpoint.OpLegislativeItem,
	"speeches":        endpoint.OpSpeeches,
}

func printPlan(dispatch func(string) (domain.Adapter, error), source, op string, p endpoint.Params) error {
	eop, ok := probeOps[op]
	if !ok {
		return fmt.Errorf("op %q has no endpoint plan", op)
	}
	a, err := dispatch(source)
	if err != nil {
		return err
	}
	pl, ok := a.(planner)
	if !ok {
		return fmt.Errorf("source %s does not expose its plans", a.Source())
	}
	cands := pl.Resolver().Resolve(eop, p)
	if len(cands) == 0 {
		fmt.Printf("%s %s: no candidates\n", a.Source(), op)
		return nil
	}
	for i, c := range cands {
		fmt.Printf("%d\t%s\n", i+1, c)
	}
	return nil
}
