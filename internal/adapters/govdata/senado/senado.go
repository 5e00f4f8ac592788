// Package senado adapts the Senado Federal open data services
//
// The Senado surface has moved between hosts and path schemes over the years,
// so every operation probes a handful of known layouts, asking for JSON first.
package senado

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
)

// DefaultBaseURL is the public API host
const DefaultBaseURL = "https://legis.senado.leg.br"

var (
	repShape = parse.Shape{
		Envelopes: []string{"dados", "ListaParlamentarEmExercicio.Parlamentares.Parlamentar"},
		Elements:  []string{"Parlamentar"},
	}
	itemsShape = parse.Shape{
		Envelopes: []string{"dados", "PesquisaBasicaMateria.Materias.Materia"},
		Elements:  []string{"Materia", "proposicao_"},
	}
	detailShape = parse.Shape{
		Envelopes: []string{"dados", "DetalheMateria.Materia"},
		Elements:  []string{"Materia", "proposicao_"},
	}

	repMap = parse.RepresentativeMap{
		ExternalID: []string{"nrMatricula", "IdentificacaoParlamentar.CodigoParlamentar", "CodigoParlamentar", "codigo", "id"},
		Name:       []string{"txNomeParlamentar", "IdentificacaoParlamentar.NomeParlamentar", "NomeParlamentar", "nome"},
		Party:      []string{"sgPartido", "IdentificacaoParlamentar.SiglaPartidoParlamentar", "SiglaPartidoParlamentar"},
		State:      []string{"sgUF", "IdentificacaoParlamentar.UfParlamentar", "UfParlamentar"},
		PhotoURL:   []string{"IdentificacaoParlamentar.UrlFotoParlamentar", "UrlFotoParlamentar", "urlFoto"},
	}

	itemMap = parse.ItemMap{
		ExternalID:       []string{"id", "codigo", "IdentificacaoMateria.CodigoMateria", "CodigoMateria"},
		ItemType:         []string{"sigla", "IdentificacaoMateria.SiglaSubtipoMateria", "SiglaSubtipoMateria"},
		Number:           []string{"numero", "IdentificacaoMateria.NumeroMateria", "NumeroMateria"},
		Year:             []string{"ano", "IdentificacaoMateria.AnoMateria", "AnoMateria"},
		Summary:          []string{"ementa", "DadosBasicosMateria.EmentaMateria", "EmentaMateria", "Ementa"},
		Status:           []string{"situacao", "DescricaoSituacao"},
		Authors:          []string{"autores", "NomeAutor", "Autor"},
		URL:              []string{"url", "UrlTexto"},
		PresentationDate: []string{"dataApresentacao", "DadosBasicosMateria.DataApresentacao", "DataApresentacao"},
	}
)

// Adapter implements the source capability set for the Senado
type Adapter struct {
	govdata.Base
}

// New builds the adapter around a client pointed at the Senado host
func New(c *fetch.Client, m *metrics.Metrics) *Adapter {
	return &Adapter{Base: govdata.NewBase(records.SourceSenado, c, Plans(), m)}
}

// Plans returns the candidate list per operation, highest priority first
func Plans() map[ep.Operation]ep.Plan {
	return map[ep.Operation]ep.Plan{
		ep.OpRepresentatives: func(ep.Params) []ep.Candidate {
			return ep.Variants([]string{
				"/dadosabertos/senador/lista/atual",
				"/api/v1/senadores",
				"/dadosabertos/senadores",
				"/senadores",
			}, nil, true)
		},
		ep.OpLegislativeItems: func(p ep.Params) []ep.Candidate {
			itens := ""
			if p.Limit > 0 {
				itens = strconv.Itoa(p.Limit)
			}
			return ep.Variants([]string{
				"/api/v1/proposicoes",
				"/dadosabertos/proposicoes",
				"/proposicoes",
			}, ep.Query("ano", ep.YearString(p.Year), "itens", itens), true)
		},
		ep.OpLegislativeItem: func(p ep.Params) []ep.Candidate {
			id := url.PathEscape(p.ExternalID)
			return ep.Variants([]string{
				"/dadosabertos/materia/" + id,
				"/api/v1/proposicoes/" + id,
				"/proposicoes/" + id,
			}, nil, true)
		},
	}
}

// ListRepresentatives returns the senators in office
func (a *Adapter) ListRepresentatives(ctx context.Context) ([]records.Representative, error) {
	body, ok, err := a.Fetch(ctx, ep.OpRepresentatives, ep.Params{})
	if err != nil || !ok {
		return []records.Representative{}, err
	}
	reps, d := parse.Representatives(body, repShape, repMap, records.SourceSenado)
	a.Diag(ctx, ep.OpRepresentatives, d)
	return govdata.StampRepresentatives(reps), nil
}

// ListLegislativeItems returns matters, optionally for one year
func (a *Adapter) ListLegislativeItems(ctx context.Context, year *int, limit int) ([]records.LegislativeItem, error) {
	p := ep.Params{Year: year, Limit: limit}
	body, ok, err := a.Fetch(ctx, ep.OpLegislativeItems, p)
	if err != nil || !ok {
		return []records.LegislativeItem{}, err
	}
	items, d := parse.LegislativeItems(body, itemsShape, itemMap, records.SourceSenado)
	a.Diag(ctx, ep.OpLegislativeItems, d)
	return govdata.StampItems(govdata.Cap(items, limit)), nil
}

// GetLegislativeItemByExternalID probes the known detail layouts
// a body that parses to nothing is treated as not found
func (a *Adapter) GetLegislativeItemByExternalID(ctx context.Context, externalID string) (records.LegislativeItem, bool, error) {
	body, ok, err := a.Fetch(ctx, ep.OpLegislativeItem, ep.Params{ExternalID: externalID})
	if err != nil || !ok {
		return records.LegislativeItem{}, false, err
	}
	items, d := parse.LegislativeItems(body, detailShape, itemMap, records.SourceSenado)
	a.Diag(ctx, ep.OpLegislativeItem, d)
	if len(items) == 0 {
		return records.LegislativeItem{}, false, nil
	}
	it := items[0]
	if ident.IsSynthetic(it.ExternalID) {
		it.ExternalID = externalID
	}
	return govdata.StampItems([]records.LegislativeItem{it})[0], true, nil
}

// ListSpeeches has no known Senado listing yet
func (a *Adapter) ListSpeeches(context.Context) ([]records.Speech, error) {
	return []records.Speech{}, nil
}
