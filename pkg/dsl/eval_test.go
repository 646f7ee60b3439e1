package dsl

import (
	"testing"

	"github.com/rushteam/craftrec/core"
)

func TestRule_Match(t *testing.T) {
	p := &core.Product{ID: 7, Name: "Vase", Tags: []string{"pottery", "discontinued"}, City: "Jaipur", Price: 0, Popularity: 3}

	tests := []struct {
		expr string
		want bool
	}{
		{`product.price == 0.0`, true},
		{`"discontinued" in product.tags`, true},
		{`product.popularity > 50`, false},
		{`product.city == "Jaipur" && product.id == 7`, true},
		{`product.name.contains("Bowl")`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			r, err := NewRule(tt.expr)
			if err != nil {
				t.Fatalf("NewRule: %v", err)
			}
			got, err := r.Match(p)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRule_Errors(t *testing.T) {
	if r, err := NewRule(""); r != nil || err != nil {
		t.Errorf("empty expr = (%v, %v), want (nil, nil)", r, err)
	}
	if _, err := NewRule(`product.price +`); err == nil {
		t.Error("syntax error should fail")
	}
	if _, err := NewRule(`"abc"`); err == nil {
		t.Error("non-bool expression should fail")
	}
}

func TestRule_NilNeverMatches(t *testing.T) {
	var r *Rule
	if ok, err := r.Match(&core.Product{}); ok || err != nil {
		t.Errorf("nil rule Match = (%v, %v)", ok, err)
	}
}
