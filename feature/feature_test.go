package feature

import (
	"context"
	"math"
	"reflect"
	"testing"
)

const eps = 1e-9

func TestTokenize(t *testing.T) {
	got := Tokenize("The Blue-Pottery of JAIPUR, a 2nd x gift")
	want := []string{"blue", "pottery", "jaipur", "2nd", "gift"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestVectorizer_VocabularyCap(t *testing.T) {
	docs := []string{"pottery clay", "marble stone", "clay stone"}
	v := NewVectorizer(docs, 2)
	if !v.Enabled() {
		t.Fatal("vectorizer should be enabled")
	}
	if got := v.Terms(); !reflect.DeepEqual(got, []string{"clay", "stone"}) {
		t.Fatalf("Terms() = %v, want [clay stone]", got)
	}

	if got := Dot(v.Row(0), v.Row(0)); math.Abs(got-1) > eps {
		t.Errorf("row 0 not L2-normalized: %v", got)
	}
	if got := Dot(v.Row(0), v.Row(1)); got != 0 {
		t.Errorf("Dot(row0,row1) = %v, want 0", got)
	}
	if got := Dot(v.Row(0), v.Row(2)); math.Abs(got-1/math.Sqrt2) > eps {
		t.Errorf("Dot(row0,row2) = %v, want %v", got, 1/math.Sqrt2)
	}

	q := v.Vectorize("Pottery CLAY!!")
	if q.Len() != 1 || q.Indices[0] != 0 || math.Abs(q.Values[0]-1) > eps {
		t.Errorf("Vectorize = %+v, want clay only", q)
	}
	if q := v.Vectorize("unknown words"); q.Len() != 0 {
		t.Errorf("Vectorize(out of vocabulary) = %+v, want empty", q)
	}
}

func TestVectorizer_Disabled(t *testing.T) {
	tests := []struct {
		name string
		docs []string
	}{
		{"nil corpus", nil},
		{"only stopwords", []string{"the and of", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVectorizer(tt.docs, 1500)
			if v.Enabled() {
				t.Error("vectorizer should be disabled")
			}
			if q := v.Vectorize("anything"); q.Len() != 0 {
				t.Errorf("Vectorize on disabled = %+v", q)
			}
		})
	}
}

func TestVectorizer_Mean(t *testing.T) {
	v := NewVectorizer([]string{"clay", "stone"}, 0)
	m := v.Mean([]int{0, 0, 1})
	sims := v.Similarities(m)
	if math.Abs(sims[0]-2.0/3) > eps || math.Abs(sims[1]-1.0/3) > eps {
		t.Errorf("Similarities(mean) = %v, want [2/3 1/3]", sims)
	}
}

func TestOneHotEncoder(t *testing.T) {
	e := NewOneHotEncoder([][]string{{"b", "a"}, {"c", "a"}})
	if !reflect.DeepEqual(e.Categories, []string{"a", "b", "c"}) {
		t.Fatalf("Categories = %v", e.Categories)
	}
	if got := e.Encode([]string{"c", "x"}); !reflect.DeepEqual(got, []float64{0, 0, 1}) {
		t.Errorf("Encode = %v", got)
	}
	if got := e.AppendEncoded([]float64{9}, []string{"a"}); !reflect.DeepEqual(got, []float64{9, 1, 0, 0}) {
		t.Errorf("AppendEncoded = %v", got)
	}
}

func TestMinMaxScale(t *testing.T) {
	rows := [][]float64{{0, 5}, {10, 5}, {5, 5}}
	MinMaxScale(rows)
	want := [][]float64{{0, 0}, {1, 0}, {0.5, 0}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("MinMaxScale = %v, want %v", rows, want)
	}
}

func TestSimilarityMatrix(t *testing.T) {
	rows := [][]float64{{1, 0}, {2, 0}, {0, 1}, {0, 0}}
	m, err := NewSimilarityMatrix(context.Background(), rows, 2)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		i, j int
		want float64
	}{
		{0, 0, 1}, {3, 3, 1},
		{0, 1, 1}, {1, 0, 1},
		{0, 2, 0}, {0, 3, 0}, {3, 2, 0},
	}
	for _, tt := range tests {
		if got := m.At(tt.i, tt.j); math.Abs(got-tt.want) > eps {
			t.Errorf("At(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
	if m.Len() != 4 || len(m.Row(2)) != 4 {
		t.Errorf("Len/Row mismatch")
	}
}

func TestSimilarityMatrix_Empty(t *testing.T) {
	m, err := NewSimilarityMatrix(context.Background(), nil, 0)
	if err != nil || m.Len() != 0 {
		t.Errorf("empty matrix = (%v, %v)", m, err)
	}
}
