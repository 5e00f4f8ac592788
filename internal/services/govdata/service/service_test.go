package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"engagegov/internal/adapters/govdata/camara"
	"engagegov/internal/adapters/govdata/fetch"
	"engagegov/internal/adapters/govdata/senado"
	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
	"engagegov/internal/platform/cache"
	perr "engagegov/internal/platform/errors"
	kit "engagegov/internal/platform/testkit"
	"engagegov/internal/services/govdata/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	src records.Source

	reps      []records.Representative
	items     []records.LegislativeItem
	item      *records.LegislativeItem
	gate      chan struct{}
	calls     atomic.Int32
	lastYear  *int
	lastLimit int
	mu        sync.Mutex
}

func (f *fakeAdapter) Source() records.Source { return f.src }

func (f *fakeAdapter) wait(ctx context.Context) error {
	f.calls.Add(1)
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAdapter) ListRepresentatives(ctx context.Context) ([]records.Representative, error) {
	if err := f.wait(ctx); err != nil {
		return []records.Representative{}, err
	}
	return append([]records.Representative{}, f.reps...), nil
}

func (f *fakeAdapter) ListLegislativeItems(ctx context.Context, year *int, limit int) ([]records.LegislativeItem, error) {
	f.mu.Lock()
	f.lastYear, f.lastLimit = year, limit
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return []records.LegislativeItem{}, err
	}
	return append([]records.LegislativeItem{}, f.items...), nil
}

func (f *fakeAdapter) GetLegislativeItemByExternalID(ctx context.Context, id string) (records.LegislativeItem, bool, error) {
	if err := f.wait(ctx); err != nil {
		return records.LegislativeItem{}, false, err
	}
	if f.item == nil || f.item.ExternalID != id {
		return records.LegislativeItem{}, false, nil
	}
	return *f.item, true, nil
}

func (f *fakeAdapter) ListSpeeches(ctx context.Context) ([]records.Speech, error) {
	if err := f.wait(ctx); err != nil {
		return []records.Speech{}, err
	}
	return []records.Speech{}, nil
}

type countingCache struct {
	cache.Nop
	gets atomic.Int32
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets.Add(1)
	return c.Nop.Get(ctx, key)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func rep(src records.Source, id string) records.Representative {
	return records.Representative{ID: ident.Generate(src, id), ExternalID: id, Source: src, Name: "R " + id}
}

func TestRouter_Dispatch(t *testing.T) {
	c := &fakeAdapter{src: records.SourceCamara}
	s := &fakeAdapter{src: records.SourceSenado}
	r := NewRouter(records.SourceCamara, c, s)

	for _, key := range []string{"", "  ", "camara", " CAMARA "} {
		a, err := r.Dispatch(key)
		require.NoError(t, err, key)
		assert.Same(t, c, a, key)
	}
	a, err := r.Dispatch("Senado")
	require.NoError(t, err)
	assert.Same(t, s, a)

	_, err = r.Dispatch("assembleia")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
	assert.Equal(t, []string{"camara", "senado"}, r.Sources())
}

func TestKey_SortedParams(t *testing.T) {
	a := Key(records.SourceCamara, opItems, map[string]string{"year": "2024", "limit": "50"})
	b := Key(records.SourceCamara, opItems, map[string]string{"limit": "50", "year": "2024"})
	assert.Equal(t, "govdata:camara:items:limit=50&year=2024", a)
	assert.Equal(t, a, b)
	assert.Equal(t, "govdata:senado:representatives:", Key(records.SourceSenado, opRepresentatives, nil))
}

func TestService_UnknownSourceIsNotCached(t *testing.T) {
	mem := cache.NewMemory()
	svc := New(NewRouter(records.SourceCamara, &fakeAdapter{src: records.SourceCamara}), mem, nil, Options{})

	_, err := svc.GetRepresentatives(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	_, _, err = svc.GetLegislativeItemByExternalID(context.Background(), "nope", "1")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.Zero(t, mem.Len())
}

func TestService_ReadThrough(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, reps: []records.Representative{rep(records.SourceCamara, "1"), rep(records.SourceCamara, "2")}}
	svc := New(NewRouter(records.SourceCamara, fa), cache.NewMemory(), nil, Options{})
	ctx := context.Background()

	first, err := svc.GetRepresentatives(ctx, "")
	require.NoError(t, err)
	second, err := svc.GetRepresentatives(ctx, "camara")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
	assert.EqualValues(t, 1, fa.calls.Load())
}

func TestService_LimitDefaultsAndClamp(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara}
	svc := New(NewRouter(records.SourceCamara, fa), nil, nil, Options{})
	ctx := context.Background()

	cases := []struct {
		in, want int
	}{{0, 20}, {-3, 20}, {7, 7}, {100, 100}, {500, 100}}
	for _, tc := range cases {
		_, err := svc.GetLegislativeItems(ctx, "camara", nil, tc.in)
		require.NoError(t, err)
		fa.mu.Lock()
		assert.Equal(t, tc.want, fa.lastLimit, "limit %d", tc.in)
		fa.mu.Unlock()
	}
}

func TestService_EmptyResultsUseShortTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time { mu.Lock(); defer mu.Unlock(); return now }
	advance := func(d time.Duration) { mu.Lock(); now = now.Add(d); mu.Unlock() }

	fa := &fakeAdapter{src: records.SourceCamara}
	svc := New(NewRouter(records.SourceCamara, fa), cache.NewMemory(cache.WithClock(clock)), nil, Options{})
	ctx := context.Background()
	year := 2024

	items, err := svc.GetLegislativeItems(ctx, "camara", &year, 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	advance(10 * time.Second)
	_, _ = svc.GetLegislativeItems(ctx, "camara", &year, 10)
	assert.EqualValues(t, 1, fa.calls.Load(), "empty result should still be cached briefly")

	advance(25 * time.Second)
	_, _ = svc.GetLegislativeItems(ctx, "camara", &year, 10)
	assert.EqualValues(t, 2, fa.calls.Load(), "empty result should expire after the short ttl")

	fa.items = []records.LegislativeItem{{ExternalID: "9", Source: records.SourceCamara, Summary: "s"}}
	advance(31 * time.Second)
	items, _ = svc.GetLegislativeItems(ctx, "camara", &year, 10)
	require.Len(t, items, 1)
	advance(4 * time.Minute)
	_, _ = svc.GetLegislativeItems(ctx, "camara", &year, 10)
	assert.EqualValues(t, 3, fa.calls.Load(), "non empty result should live for the full ttl")
}

func TestService_ItemNotFound(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceSenado}
	svc := New(NewRouter(records.SourceCamara, fa), cache.NewMemory(), nil, Options{})
	ctx := context.Background()

	it, ok, err := svc.GetLegislativeItemByExternalID(ctx, "senado", "999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, it)

	// cached as not found
	_, ok, err = svc.GetLegislativeItemByExternalID(ctx, "senado", "999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.EqualValues(t, 1, fa.calls.Load())
}

func TestService_ItemFound(t *testing.T) {
	y := 2020
	want := records.LegislativeItem{
		ID: ident.Generate(records.SourceCamara, "42"), ExternalID: "42", Source: records.SourceCamara,
		ItemType: "PL", Number: "1", Year: &y, Summary: "x", Authors: []string{"A"},
	}
	fa := &fakeAdapter{src: records.SourceCamara, item: &want}
	svc := New(NewRouter(records.SourceCamara, fa), cache.NewMemory(), nil, Options{})

	for range 2 {
		it, ok, err := svc.GetLegislativeItemByExternalID(context.Background(), "camara", " 42 ")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, *it)
	}
	assert.EqualValues(t, 1, fa.calls.Load())
}

func TestService_BlankExternalID(t *testing.T) {
	svc := New(NewRouter(records.SourceCamara, &fakeAdapter{src: records.SourceCamara}), nil, nil, Options{})
	_, _, err := svc.GetLegislativeItemByExternalID(context.Background(), "camara", "  ")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestService_CacheFailuresAreIgnored(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, reps: []records.Representative{rep(records.SourceCamara, "1")}}
	svc := New(NewRouter(records.SourceCamara, fa), brokenCache{}, nil, Options{})

	for range 2 {
		reps, err := svc.GetRepresentatives(context.Background(), "camara")
		require.NoError(t, err)
		assert.Len(t, reps, 1)
	}
	assert.EqualValues(t, 2, fa.calls.Load())
}

func TestService_ConcurrentMissesLoadOnce(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, reps: []records.Representative{rep(records.SourceCamara, "1")}, gate: make(chan struct{})}
	cc := &countingCache{}
	svc := New(NewRouter(records.SourceCamara, fa), cc, nil, Options{})

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reps, err := svc.GetRepresentatives(context.Background(), "camara")
			if err == nil && len(reps) != 1 {
				err = errors.New("wrong result")
			}
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return cc.gets.Load() == n && fa.calls.Load() == 1 }, 2*time.Second, time.Millisecond)
	// every caller has missed; give them a moment to join the in flight load
	time.Sleep(50 * time.Millisecond)
	close(fa.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, fa.calls.Load())
}

func TestService_SharedLoadOutlivesFirstCallersDeadline(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, reps: []records.Representative{rep(records.SourceCamara, "1")}, gate: make(chan struct{})}
	cc := &countingCache{}
	svc := New(NewRouter(records.SourceCamara, fa), cc, nil, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	first := make(chan error, 1)
	go func() {
		_, err := svc.GetRepresentatives(ctx, "camara")
		first <- err
	}()
	require.Eventually(t, func() bool { return fa.calls.Load() == 1 }, 2*time.Second, time.Millisecond)

	type result struct {
		reps []records.Representative
		err  error
	}
	second := make(chan result, 1)
	go func() {
		reps, err := svc.GetRepresentatives(context.Background(), "camara")
		second <- result{reps, err}
	}()
	require.Eventually(t, func() bool { return cc.gets.Load() == 2 }, 2*time.Second, time.Millisecond)

	assert.ErrorIs(t, <-first, context.DeadlineExceeded)
	close(fa.gate)

	res := <-second
	require.NoError(t, res.err)
	assert.Len(t, res.reps, 1)
	assert.EqualValues(t, 1, fa.calls.Load())
}

func TestService_LoadTimeoutBoundsSharedLoad(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, gate: make(chan struct{})}
	svc := New(NewRouter(records.SourceCamara, fa), nil, nil, Options{LoadTimeout: 20 * time.Millisecond})

	_, err := svc.GetRepresentatives(context.Background(), "camara")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.flights)
}

func TestService_CancellationPropagatesAndIsNotCached(t *testing.T) {
	fa := &fakeAdapter{src: records.SourceCamara, gate: make(chan struct{})}
	mem := cache.NewMemory()
	svc := New(NewRouter(records.SourceCamara, fa), mem, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for fa.calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	_, err := svc.GetSpeeches(ctx, "camara")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mem.Len())
}

func newClient(src string, up *kit.Upstream) *fetch.Client {
	return fetch.New(fetch.Options{
		Source:        src,
		BaseURL:       up.URL,
		RatePerSecond: 1000,
		Burst:         100,
		Retry:         fetch.NoRetry(),
	})
}

func TestScenario_CamaraYearLimit(t *testing.T) {
	up := kit.NewUpstream(t).JSON("/api/v2/proposicoes", http.StatusOK, `{"dados":[
		{"id":1001,"siglaTipo":"PL","numero":1,"ano":2024,"ementa":"Primeira"},
		{"id":1002,"siglaTipo":"PL","numero":2,"ano":2024,"ementa":"Segunda"},
		{"id":1003,"siglaTipo":"PDL","numero":3,"ano":2024,"ementa":"Terceira"}]}`)
	svc := New(NewRouter(records.SourceCamara, camara.New(newClient("camara", up), nil)), cache.NewMemory(), nil, Options{})
	year := 2024

	items, err := svc.GetLegislativeItems(context.Background(), "camara", &year, 50)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.NotEmpty(t, it.Summary)
		assert.Equal(t, records.SourceCamara, it.Source)
		assert.Equal(t, ident.Generate(records.SourceCamara, it.ExternalID), it.ID)
	}
}

func TestScenario_SenadoDetailAll404(t *testing.T) {
	up := kit.NewUpstream(t)
	svc := New(NewRouter(records.SourceCamara, senado.New(newClient("senado", up), nil)), nil, nil, Options{})

	it, ok, err := svc.GetLegislativeItemByExternalID(context.Background(), "senado", "999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, it)
	assert.NotEmpty(t, up.Hits())
}
