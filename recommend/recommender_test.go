package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/recall"
	"github.com/rushteam/craftrec/store"
)

func testProducts() []core.Product {
	return []core.Product{
		{ID: 1, Name: "Blue Vase", Description: "glazed pottery vase", Tags: []string{"pottery", "blue"}, City: "Jaipur", State: "Rajasthan", Price: 50, Popularity: 80},
		{ID: 2, Name: "Marble Inlay", Description: "marble table top", Tags: []string{"marble"}, City: "Agra", State: "Uttar Pradesh", Price: 200, Popularity: 90},
		{ID: 3, Name: "Terracotta Pot", Description: "pottery planter", Tags: []string{"pottery"}, City: "Jodhpur", State: "Rajasthan", Price: 20, Popularity: 40},
		{ID: 4, Name: "Pottery Bowl", Description: "blue pottery bowl", Tags: []string{"pottery", "blue"}, City: "Jaipur", State: "Rajasthan", Price: 30, Popularity: 40},
	}
}

func newRecommender(t *testing.T, products []core.Product, opts Options) (*Recommender, *store.MemoryStore) {
	t.Helper()
	snap, err := catalog.Build(context.Background(), products, catalog.Options{})
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	r := New(catalog.NewHolder(snap), st, opts)
	r.log = zerolog.Nop()
	return r, st
}

func productIDs(ps []core.Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func ptr(v int64) *int64 { return &v }

func TestRecommend_Sources(t *testing.T) {
	r, st := newRecommender(t, testProducts(), Options{})
	ctx := context.Background()
	_ = r.Click(ctx, "u1", 1)
	_ = st.AppendClick(ctx, "u2", 999)

	tests := []struct {
		name string
		req  *Request
		want string
	}{
		{"nil request", nil, recall.SourceGlobal},
		{"similar", &Request{SimilarTo: ptr(1)}, recall.SourceSimilar},
		{"unknown similar", &Request{SimilarTo: ptr(999)}, recall.SourceGlobal},
		{"personalized", &Request{UserID: "u1"}, recall.SourcePersonalized},
		{"stale clicks only", &Request{UserID: "u2"}, recall.SourceGlobal},
		{"location", &Request{City: "agra"}, recall.SourceLocation},
		{"search", &Request{Query: "bowl"}, recall.SourceGlobalSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := r.Recommend(ctx, tt.req)
			if resp.Source != tt.want {
				t.Errorf("source = %s, want %s", resp.Source, tt.want)
			}
			if resp.RequestID == "" {
				t.Error("missing request id")
			}
			if resp.Error != "" {
				t.Errorf("unexpected error %q", resp.Error)
			}
			if len(resp.Products) > core.DefaultTopK {
				t.Errorf("len = %d", len(resp.Products))
			}
		})
	}
}

func TestRecommend_LocationScenario(t *testing.T) {
	r, _ := newRecommender(t, []core.Product{
		{ID: 1, Name: "Vase", City: "Jaipur", Tags: []string{"pottery"}, Popularity: 80},
		{ID: 2, Name: "Inlay", City: "Agra", Tags: []string{"marble"}, Popularity: 90},
	}, Options{})
	resp := r.Recommend(context.Background(), &Request{City: "jaipur"})
	if resp.Source != recall.SourceLocation || resp.MatchedCity != "jaipur" || resp.MatchedState != "" {
		t.Fatalf("resp = %+v", resp)
	}
	if got := productIDs(resp.Products); len(got) != 1 || got[0] != 1 {
		t.Errorf("products = %v, want [1]", got)
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	r, _ := newRecommender(t, nil, Options{})
	resp := r.Recommend(context.Background(), &Request{UserID: "u1", City: "jaipur", Query: "pottery", SimilarTo: ptr(1)})
	if resp.Source != recall.SourceGlobal || len(resp.Products) != 0 || resp.Products == nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRecommend_TopK(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{TopK: 2})
	resp := r.Recommend(context.Background(), &Request{})
	if got := productIDs(resp.Products); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("products = %v, want [2 1]", got)
	}
}

type panicSource struct{}

func (panicSource) Name() string { return "boom" }
func (panicSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	panic("index out of range")
}

type errSource struct{}

func (errSource) Name() string { return "err" }
func (errSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	return nil, errors.New("scoring failed")
}

func TestRecommend_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		src     recall.Source
		wantErr string
	}{
		{"panic", panicSource{}, "boom: "},
		{"error", errSource{}, "err: scoring failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRecommender(t, testProducts(), Options{})
			r.newChain = func(*recall.Env) *recall.Chain {
				return &recall.Chain{Sources: []recall.Source{tt.src}}
			}
			resp := r.Recommend(context.Background(), &Request{})
			if resp.Source != recall.SourceFallback {
				t.Fatalf("source = %s", resp.Source)
			}
			if resp.Error == "" {
				t.Error("fallback should carry the error")
			}
			if tt.name == "error" && resp.Error != tt.wantErr {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantErr)
			}
			if got := productIDs(resp.Products); len(got) != 4 || got[0] != 2 {
				t.Errorf("products = %v, want popularity order", got)
			}
		})
	}
}

func TestRecommend_NoSourceAnswered(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{})
	r.newChain = func(*recall.Env) *recall.Chain { return &recall.Chain{} }
	if resp := r.Recommend(context.Background(), &Request{}); resp.Source != recall.SourceFallback {
		t.Errorf("source = %s", resp.Source)
	}
}

func TestPreferences(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{})
	ctx := context.Background()

	got, err := r.GetPreferences(ctx, "u1")
	if err != nil || got != nil {
		t.Fatalf("absent = (%v, %v)", got, err)
	}
	if err := r.SavePreferences(ctx, &core.UserPreference{UserID: "u1", City: "Jaipur", Tags: []string{"pottery"}}); err != nil {
		t.Fatal(err)
	}
	if err := r.SavePreferences(ctx, &core.UserPreference{UserID: "u1", State: "Rajasthan"}); err != nil {
		t.Fatal(err)
	}
	got, _ = r.GetPreferences(ctx, "u1")
	if got == nil || got.City != "" || got.State != "Rajasthan" || len(got.Tags) != 0 {
		t.Errorf("preferences should be fully replaced, got %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
	if err := r.SavePreferences(ctx, &core.UserPreference{}); !core.IsInvalidInput(err) {
		t.Errorf("empty user err = %v", err)
	}
}

func TestClick_RequiresUser(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{})
	if err := r.Click(context.Background(), " ", 1); !core.IsInvalidInput(err) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestListProducts(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{})
	tests := []struct {
		q     string
		limit int
		want  []int64
	}{
		{"", 0, []int64{1, 2, 3, 4}},
		{"", 2, []int64{1, 2}},
		{"POTTERY", 0, []int64{1, 3, 4}},
		{"table", 0, []int64{2}},
		{"nothing", 0, []int64{}},
	}
	for _, tt := range tests {
		got := productIDs(r.ListProducts(tt.q, tt.limit))
		if len(got) != len(tt.want) {
			t.Errorf("ListProducts(%q, %d) = %v, want %v", tt.q, tt.limit, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ListProducts(%q, %d) = %v, want %v", tt.q, tt.limit, got, tt.want)
				break
			}
		}
	}
}

func TestHealth(t *testing.T) {
	r, _ := newRecommender(t, testProducts(), Options{})
	h := r.Health()
	if h.ProductsCount != 4 || !h.VectorizerEnabled || !h.SimilarityEnabled || h.Store != "memory" {
		t.Errorf("health = %+v", h)
	}

	empty, _ := newRecommender(t, nil, Options{})
	h = empty.Health()
	if h.ProductsCount != 0 || h.VectorizerEnabled || h.SimilarityEnabled {
		t.Errorf("empty health = %+v", h)
	}
}
