package senado

import (
	"context"
	"net/http"
	"testing"
	"time"

	ep "engagegov/internal/adapters/govdata/endpoint"
	"engagegov/internal/adapters/govdata/fetch"
	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
	kit "engagegov/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, up *kit.Upstream) *Adapter {
	t.Helper()
	return New(fetch.New(fetch.Options{
		Source:         "senado",
		BaseURL:        up.URL,
		AttemptTimeout: 2 * time.Second,
		RatePerSecond:  1000,
		Burst:          100,
		Retry:          fetch.NoRetry(),
	}), nil)
}

func TestGetLegislativeItem_AllCandidates404(t *testing.T) {
	up := kit.NewUpstream(t)
	a := newAdapter(t, up)

	it, ok, err := a.GetLegislativeItemByExternalID(context.Background(), "999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, records.LegislativeItem{}, it)
	assert.Equal(t, []string{
		"/dadosabertos/materia/999?formato=json",
		"/dadosabertos/materia/999",
		"/api/v1/proposicoes/999?formato=json",
		"/api/v1/proposicoes/999",
		"/proposicoes/999?formato=json",
		"/proposicoes/999",
	}, up.Hits())
}

func TestResolver_PlanMatchesProbingOrder(t *testing.T) {
	a := newAdapter(t, kit.NewUpstream(t))

	var got []string
	for _, c := range a.Resolver().Resolve(ep.OpLegislativeItem, ep.Params{ExternalID: "999"}) {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"/dadosabertos/materia/999?formato=json",
		"/dadosabertos/materia/999",
		"/api/v1/proposicoes/999?formato=json",
		"/api/v1/proposicoes/999",
		"/proposicoes/999?formato=json",
		"/proposicoes/999",
	}, got)
	assert.Empty(t, a.Resolver().Resolve(ep.OpSpeeches, ep.Params{}))
}

func TestGetLegislativeItem_DetalheMateriaXML(t *testing.T) {
	up := kit.NewUpstream(t).XML("/dadosabertos/materia/155734", http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?>
<DetalheMateria>
  <Materia>
    <IdentificacaoMateria>
      <CodigoMateria>155734</CodigoMateria>
      <SiglaSubtipoMateria>PL</SiglaSubtipoMateria>
      <NumeroMateria>00021</NumeroMateria>
      <AnoMateria>2020</AnoMateria>
    </IdentificacaoMateria>
    <DadosBasicosMateria>
      <EmentaMateria>Estabelece fundamentos para o desenvolvimento da inteligência artificial.</EmentaMateria>
      <DataApresentacao>2020-02-04</DataApresentacao>
    </DadosBasicosMateria>
  </Materia>
</DetalheMateria>`)
	a := newAdapter(t, up)

	it, ok, err := a.GetLegislativeItemByExternalID(context.Background(), "155734")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "155734", it.ExternalID)
	assert.Equal(t, "PL", it.ItemType)
	assert.Equal(t, "00021", it.Number)
	require.NotNil(t, it.Year)
	assert.Equal(t, 2020, *it.Year)
	assert.Contains(t, it.Summary, "inteligência artificial")
	require.NotNil(t, it.PresentedAt)
	assert.Equal(t, ident.Generate(records.SourceSenado, "155734"), it.ID)
	assert.Equal(t, []string{"/dadosabertos/materia/155734?formato=json"}, up.Hits())
}

func TestListRepresentatives_NestedListaParlamentar(t *testing.T) {
	up := kit.NewUpstream(t).Handle("/dadosabertos/senador/lista/atual", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("formato") != "json" {
			http.NotFound(w, r)
			return
		}
		kit.Respond(http.StatusOK, "application/json", `{"ListaParlamentarEmExercicio":{"Parlamentares":{"Parlamentar":[
			{"IdentificacaoParlamentar":{"CodigoParlamentar":"5012","NomeParlamentar":"Fulano Senador","SiglaPartidoParlamentar":"PT","UfParlamentar":"BA","UrlFotoParlamentar":"http://www.senado.leg.br/senadores/img/fotos-oficiais/senador5012.jpg"}},
			{"IdentificacaoParlamentar":{"CodigoParlamentar":"4981","NomeParlamentar":"Beltrana Senadora","SiglaPartidoParlamentar":"MDB","UfParlamentar":"MS"}}
		]}}}`)(w, r)
	})
	a := newAdapter(t, up)

	reps, err := a.ListRepresentatives(context.Background())
	require.NoError(t, err)
	require.Len(t, reps, 2)
	assert.Equal(t, "5012", reps[0].ExternalID)
	assert.Equal(t, "Fulano Senador", reps[0].Name)
	assert.Equal(t, "PT", reps[0].Party)
	assert.Equal(t, "BA", reps[0].State)
	assert.NotEmpty(t, reps[0].PhotoURL)
	assert.Empty(t, reps[1].PhotoURL)
	for _, r := range reps {
		assert.Equal(t, records.SourceSenado, r.Source)
		assert.Equal(t, ident.Generate(records.SourceSenado, r.ExternalID), r.ID)
	}
	assert.Len(t, up.Hits(), 1)
}

func TestListRepresentatives_LaterCandidateWins(t *testing.T) {
	up := kit.NewUpstream(t).
		JSON("/dadosabertos/senadores", http.StatusOK, `{"dados":[{"nrMatricula":123,"txNomeParlamentar":"Ciclana","sgPartido":"PSD","sgUF":"MG"}]}`)
	a := newAdapter(t, up)

	reps, err := a.ListRepresentatives(context.Background())
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "123", reps[0].ExternalID)
	assert.Equal(t, "MG", reps[0].State)
	// four misses on the first two paths, then the JSON variant of the third
	assert.Len(t, up.Hits(), 5)
	assert.Zero(t, up.Count("/senadores"))
}

func TestListLegislativeItems_QueryAndCap(t *testing.T) {
	up := kit.NewUpstream(t).
		JSON("/api/v1/proposicoes", http.StatusOK, `{"dados":[
			{"id":1,"sigla":"PL","numero":"10","ano":2023,"ementa":"Um"},
			{"id":2,"sigla":"PLS","numero":"11","ano":2023,"ementa":"Dois"},
			{"id":3,"sigla":"PEC","numero":"12","ano":2023,"ementa":"Três"}]}`)
	a := newAdapter(t, up)
	year := 2023

	items, err := a.ListLegislativeItems(context.Background(), &year, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ExternalID)
	assert.Equal(t, "PLS", items[1].ItemType)

	hits := up.Hits()
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0], "ano=2023")
	assert.Contains(t, hits[0], "itens=2")
	assert.Contains(t, hits[0], "formato=json")
}

func TestListLegislativeItems_NothingServes(t *testing.T) {
	a := newAdapter(t, kit.NewUpstream(t))

	items, err := a.ListLegislativeItems(context.Background(), nil, 20)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCanceledBeforeStart(t *testing.T) {
	up := kit.NewUpstream(t)
	a := newAdapter(t, up)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ListRepresentatives(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, up.Hits())
}
