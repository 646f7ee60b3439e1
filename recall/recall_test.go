package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/location"
	"github.com/rushteam/craftrec/store"
)

func testEnv(t *testing.T, products []core.Product) (*Env, *store.MemoryStore) {
	t.Helper()
	snap, err := catalog.Build(context.Background(), products, catalog.Options{})
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	return &Env{
		Snapshot:    snap,
		Clicks:      st,
		Preferences: st,
		Matcher:     location.NewMatcher(0),
		Weights:     core.DefaultWeights(),
	}, st
}

func crafts() []core.Product {
	return []core.Product{
		{ID: 1, Name: "Blue Vase", Description: "glazed pottery vase", Tags: []string{"pottery", "blue"}, City: "Jaipur", State: "Rajasthan", Price: 50, Popularity: 80},
		{ID: 2, Name: "Marble Inlay", Description: "marble table top", Tags: []string{"marble"}, City: "Agra", State: "Uttar Pradesh", Price: 200, Popularity: 90},
		{ID: 3, Name: "Terracotta Pot", Description: "pottery planter", Tags: []string{"pottery"}, City: "Jodhpur", State: "Rajasthan", Price: 20, Popularity: 40},
		{ID: 4, Name: "Pottery Bowl", Description: "blue pottery bowl", Tags: []string{"pottery", "blue"}, City: "Jaipur", State: "Rajasthan", Price: 30, Popularity: 40},
		{ID: 5, Name: "Pashmina Shawl", Description: "wool shawl", Tags: []string{"textile"}, City: "Srinagar", State: "Kashmir", Price: 120, Popularity: 70},
	}
}

func ids(items []*core.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func ptr(v int64) *int64 { return &v }

func TestSimilar_ExcludesTarget(t *testing.T) {
	env, _ := testEnv(t, crafts())
	env.SimilarTopK = 3
	out, err := (&Similar{Env: env}).Recall(context.Background(), &core.RecommendContext{SimilarTo: ptr(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for _, it := range out {
		if it.ID == 1 {
			t.Error("similar results include the target")
		}
	}
	if out[0].ID != 4 {
		t.Errorf("ids = %v, want bowl first", ids(out))
	}
}

func TestSimilar_UnknownTarget(t *testing.T) {
	env, _ := testEnv(t, crafts())
	out, err := (&Similar{Env: env}).Recall(context.Background(), &core.RecommendContext{SimilarTo: ptr(999)})
	if err != nil || len(out) != 0 {
		t.Errorf("= (%v, %v)", ids(out), err)
	}
}

func TestPersonal_ExcludesClicked(t *testing.T) {
	env, st := testEnv(t, crafts())
	ctx := context.Background()
	_ = st.AppendClick(ctx, "u1", 1)
	_ = st.AppendClick(ctx, "u1", 777) // 已下架商品，静默丢弃
	_ = st.AppendClick(ctx, "u1", 3)

	out, err := (&Personal{Env: env}).Recall(ctx, &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("ids = %v, want 3 candidates", ids(out))
	}
	for _, it := range out {
		if it.ID == 1 || it.ID == 3 {
			t.Errorf("personalized results include clicked %d", it.ID)
		}
	}
	if out[0].ID != 4 {
		t.Errorf("ids = %v, want bowl first", ids(out))
	}
}

func TestPersonal_OnlyStaleClicks(t *testing.T) {
	env, st := testEnv(t, crafts())
	_ = st.AppendClick(context.Background(), "u1", 777)
	out, err := (&Personal{Env: env}).Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil || len(out) != 0 {
		t.Errorf("= (%v, %v)", ids(out), err)
	}
}

func TestLocation_Scenario(t *testing.T) {
	env, _ := testEnv(t, []core.Product{
		{ID: 1, Name: "Vase", City: "Jaipur", Tags: []string{"pottery"}, Popularity: 80},
		{ID: 2, Name: "Inlay", City: "Agra", Tags: []string{"marble"}, Popularity: 90},
	})
	rctx := &core.RecommendContext{City: "jaipur"}
	src := &Location{Env: env}
	out, err := src.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(out); len(got) != 1 || got[0] != 1 {
		t.Errorf("ids = %v, want [1]", got)
	}
	if lbl, _ := rctx.GetLabel(LabelMatchedCity); lbl.Value != "jaipur" {
		t.Errorf("matched_city = %q", lbl.Value)
	}
	if !src.Claims(rctx) {
		t.Error("location should claim after a match")
	}
}

func TestLocation_StateBucketAndFuzzy(t *testing.T) {
	env, _ := testEnv(t, crafts())
	rctx := &core.RecommendContext{State: "Rajastan"}
	out, err := (&Location{Env: env}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatal(err)
	}
	// 省份桶 [1 3 4]，都加 0.35，按热度 80 > 40 = 40
	if got := ids(out); len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Errorf("ids = %v, want [1 3 4]", got)
	}
	if lbl, _ := rctx.GetLabel(LabelMatchedState); lbl.Value != "rajasthan" {
		t.Errorf("matched_state = %q", lbl.Value)
	}
}

func TestLocation_QueryCanEmptyBucket(t *testing.T) {
	env, _ := testEnv(t, crafts())
	rctx := &core.RecommendContext{City: "Agra", Query: "pottery"}
	src := &Location{Env: env}
	out, err := src.Recall(context.Background(), rctx)
	if err != nil || len(out) != 0 {
		t.Fatalf("= (%v, %v)", ids(out), err)
	}
	if !src.Claims(rctx) {
		t.Error("location still claims with an empty filtered bucket")
	}
}

func TestGlobalSearch(t *testing.T) {
	env, _ := testEnv(t, crafts())
	src := &GlobalSearch{Env: env}
	out, err := src.Recall(context.Background(), &core.RecommendContext{Query: "Pottery"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Errorf("ids = %v, want the three pottery items", ids(out))
	}
	if src.Claims(&core.RecommendContext{Query: "  "}) {
		t.Error("blank query should not claim")
	}
}

func TestHot_TopK(t *testing.T) {
	env, _ := testEnv(t, crafts())
	env.TopK = 2
	out, _ := (&Hot{Env: env}).Recall(context.Background(), &core.RecommendContext{})
	if got := ids(out); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("ids = %v, want [2 1]", got)
	}
}

func TestChain_Order(t *testing.T) {
	env, st := testEnv(t, crafts())
	ctx := context.Background()
	_ = st.AppendClick(ctx, "u1", 1)
	chain := NewDefaultChain(env)

	tests := []struct {
		name string
		rctx *core.RecommendContext
		want string
	}{
		{"similar wins over personalized", &core.RecommendContext{UserID: "u1", SimilarTo: ptr(2)}, SourceSimilar},
		{"unknown similar falls to personalized", &core.RecommendContext{UserID: "u1", SimilarTo: ptr(999)}, SourcePersonalized},
		{"unknown user falls to location", &core.RecommendContext{UserID: "nobody", City: "agra"}, SourceLocation},
		{"no location falls to search", &core.RecommendContext{City: "atlantis", Query: "shawl"}, SourceGlobalSearch},
		{"search with no hits still answers", &core.RecommendContext{Query: "zzz"}, SourceGlobalSearch},
		{"nothing falls to global", &core.RecommendContext{SimilarTo: ptr(999)}, SourceGlobal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _, err := chain.Recall(ctx, tt.rctx)
			if err != nil {
				t.Fatal(err)
			}
			if src == nil || src.Name() != tt.want {
				t.Errorf("source = %v, want %s", src, tt.want)
			}
		})
	}
}

type failingClicks struct{}

func (failingClicks) AppendClick(context.Context, string, int64) error { return nil }
func (failingClicks) RecentClicks(context.Context, string, int) ([]int64, error) {
	return nil, errors.New("db down")
}

func TestChain_PropagatesError(t *testing.T) {
	env, _ := testEnv(t, crafts())
	env.Clicks = failingClicks{}
	_, _, err := NewDefaultChain(env).Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err == nil {
		t.Fatal("want error")
	}
}

func TestChain_EmptyCatalog(t *testing.T) {
	env, _ := testEnv(t, nil)
	src, out, err := NewDefaultChain(env).Recall(context.Background(), &core.RecommendContext{
		UserID: "u1", City: "jaipur", Query: "pottery", SimilarTo: ptr(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if src.Name() != SourceGlobal || len(out) != 0 {
		t.Errorf("= (%s, %v)", src.Name(), ids(out))
	}
}
