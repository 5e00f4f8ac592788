// Package camara adapts the Câmara dos Deputados open data API (dadosabertos.camara.leg.br)
package camara

import (
	"context"
	"net/url"
	"strconv"

	"engagegov/internal/adapters/govdata"
	ep "engagegov/internal/adapters/govdata/endpoint"
	"engagegov/internal/adapters/govdata/fetch"
	"engagegov/internal/adapters/govdata/parse"
	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
	"engagegov/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public API host
const DefaultBaseURL = "https://dadosabertos.camara.leg.br"

var (
	repMap = parse.RepresentativeMap{
		ExternalID: []string{"id"},
		Name:       []string{"nome", "ultimoStatus.nome"},
		Party:      []string{"siglaPartido", "ultimoStatus.siglaPartido"},
		State:      []string{"siglaUf", "ultimoStatus.siglaUf"},
		PhotoURL:   []string{"urlFoto", "ultimoStatus.urlFoto"},
	}

	itemMap = parse.ItemMap{
		ExternalID:       []string{"id"},
		ItemType:         []string{"siglaTipo"},
		Number:           []string{"numero"},
		Year:             []string{"ano"},
		Summary:          []string{"ementa", "ementaDetalhada"},
		Status:           []string{"statusProposicao.descricaoSituacao", "descricaoSituacao"},
		URL:              []string{"urlInteiroTeor", "uri"},
		PresentationDate: []string{"dataApresentacao"},
	}

	timelineMap = parse.TimelineMap{
		Date:        []string{"dataHora"},
		Event:       []string{"descricaoTramitacao", "descricaoSituacao"},
		Description: []string{"despacho"},
	}
)

func listShape(elem string) parse.Shape {
	return parse.Shape{Envelopes: []string{"dados"}, Elements: []string{elem}}
}

// Adapter implements the source capability set for the Câmara
type Adapter struct {
	govdata.Base
}

// New builds the adapter around a client pointed at the Câmara API
func New(c *fetch.Client, m *metrics.Metrics) *Adapter {
	return &Adapter{Base: govdata.NewBase(records.SourceCamara, c, Plans(), m)}
}

// Plans returns the candidate list per operation, highest priority first
func Plans() map[ep.Operation]ep.Plan {
	return map[ep.Operation]ep.Plan{
		ep.OpRepresentatives: func(ep.Params) []ep.Candidate {
			return []ep.Candidate{
				{Path: "/api/v2/deputados", Query: ep.Query("itens", "500", "ordem", "ASC", "ordenarPor", "nome")},
				{Path: "/api/v2/deputados"},
			}
		},
		ep.OpLegislativeItems: func(p ep.Params) []ep.Candidate {
			itens := ""
			if p.Limit > 0 {
				itens = strconv.Itoa(p.Limit)
			}
			base := ep.Query("itens", itens, "ano", ep.YearString(p.Year))
			ordered := ep.Clone(base)
			ordered.Set("ordem", "DESC")
			ordered.Set("ordenarPor", "id")
			return []ep.Candidate{
				{Path: "/api/v2/proposicoes", Query: ordered},
				{Path: "/api/v2/proposicoes", Query: base},
			}
		},
		ep.OpLegislativeItem: func(p ep.Params) []ep.Candidate {
			return []ep.Candidate{{Path: "/api/v2/proposicoes/" + url.PathEscape(p.ExternalID)}}
		},
		ep.OpAuthors: func(p ep.Params) []ep.Candidate {
			return []ep.Candidate{{Path: "/api/v2/proposicoes/" + url.PathEscape(p.ExternalID) + "/autores"}}
		},
		ep.OpTimeline: func(p ep.Params) []ep.Candidate {
			return []ep.Candidate{{Path: "/api/v2/proposicoes/" + url.PathEscape(p.ExternalID) + "/tramitacoes"}}
		},
	}
}

// ListRepresentatives returns the sitting deputies
func (a *Adapter) ListRepresentatives(ctx context.Context) ([]records.Representative, error) {
	body, ok, err := a.Fetch(ctx, ep.OpRepresentatives, ep.Params{})
	if err != nil || !ok {
		return []records.Representative{}, err
	}
	reps, d := parse.Representatives(body, listShape("deputado_"), repMap, records.SourceCamara)
	a.Diag(ctx, ep.OpRepresentatives, d)
	return govdata.StampRepresentatives(reps), nil
}

// ListLegislativeItems returns proposals, optionally for one year; limit is a hint
func (a *Adapter) ListLegislativeItems(ctx context.Context, year *int, limit int) ([]records.LegislativeItem, error) {
	p := ep.Params{Year: year, Limit: limit}
	body, ok, err := a.Fetch(ctx, ep.OpLegislativeItems, p)
	if err != nil || !ok {
		return []records.LegislativeItem{}, err
	}
	items, d := parse.LegislativeItems(body, listShape("proposicao_"), itemMap, records.SourceCamara)
	a.Diag(ctx, ep.OpLegislativeItems, d)
	return govdata.StampItems(govdata.Cap(items, limit)), nil
}

// GetLegislativeItemByExternalID returns one proposal with its authors and timeline
// enrichment is best effort; only cancellation fails the call
func (a *Adapter) GetLegislativeItemByExternalID(ctx context.Context, externalID string) (records.LegislativeItem, bool, error) {
	p := ep.Params{ExternalID: externalID}
	body, ok, err := a.Fetch(ctx, ep.OpLegislativeItem, p)
	if err != nil || !ok {
		return records.LegislativeItem{}, false, err
	}
	items, d := parse.LegislativeItems(body, listShape("proposicao_"), itemMap, records.SourceCamara)
	a.Diag(ctx, ep.OpLegislativeItem, d)
	if len(items) == 0 {
		return records.LegislativeItem{}, false, nil
	}
	it := items[0]
	if it.ExternalID == "" || ident.IsSynthetic(it.ExternalID) {
		it.ExternalID = externalID
	}

	var (
		authors  []string
		timeline []records.TimelineEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = a.authors(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		timeline, err = a.timeline(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return records.LegislativeItem{}, false, err
	}
	if len(authors) > 0 {
		it.Authors = authors
	}
	if len(timeline) > 0 {
		it.Timeline = timeline
	}

	out := govdata.StampItems([]records.LegislativeItem{it})
	return out[0], true, nil
}

func (a *Adapter) authors(ctx context.Context, p ep.Params) ([]string, error) {
	body, ok, err := a.Fetch(ctx, ep.OpAuthors, p)
	if err != nil || !ok {
		return nil, err
	}
	names, d := parse.Names(body, listShape("autor"), "nome", "nomeAutor")
	a.Diag(ctx, ep.OpAuthors, d)
	return names, nil
}

func (a *Adapter) timeline(ctx context.Context, p ep.Params) ([]records.TimelineEntry, error) {
	body, ok, err := a.Fetch(ctx, ep.OpTimeline, p)
	if err != nil || !ok {
		return nil, err
	}
	entries, d := parse.Timeline(body, listShape("tramitacao"), timelineMap)
	a.Diag(ctx, ep.OpTimeline, d)
	return entries, nil
}

// ListSpeeches is not served for the house as a whole; the API only lists speeches per deputy
func (a *Adapter) ListSpeeches(context.Context) ([]records.Speech, error) {
	return []records.Speech{}, nil
}
