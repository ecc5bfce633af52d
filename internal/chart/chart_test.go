package chart

import (
	"math"
	"reflect"
	"testing"
)

func TestSet_DoesNotRedraw(t *testing.T) {
	c := NewPriceChart(40, 10)
	c.Set([]string{"d1", "d2"}, []float64{10, 12})
	if c.Revision() != 0 || c.View() != "" {
		t.Fatal("Set must not redraw")
	}
	c.Update()
	if c.Revision() != 1 {
		t.Errorf("revision = %d, want 1", c.Revision())
	}
	if c.View() == "" {
		t.Error("empty view after Update")
	}
}

func TestSet_CopiesInput(t *testing.T) {
	c := NewPriceChart(0, 0)
	labels := []string{"d1"}
	data := []float64{10}
	c.Set(labels, data)
	labels[0], data[0] = "x", 99
	if !reflect.DeepEqual(c.Labels(), []string{"d1"}) || !reflect.DeepEqual(c.Data(), []float64{10}) {
		t.Error("chart series aliased caller slices")
	}
}

func TestUpdate_EmptySeries(t *testing.T) {
	c := NewPriceChart(0, 0)
	c.Update()
	if c.View() != "" {
		t.Errorf("expected empty view, got %q", c.View())
	}
}

func TestPriceRange(t *testing.T) {
	tests := []struct {
		name       string
		prices     []float64
		lo, hi, mg float64
	}{
		{"spread", []float64{10, 20, 15}, 10, 20, 1},
		{"flat", []float64{200, 200}, 200, 200, 1},
		{"zero", []float64{0}, 0, 0, 1},
	}
	for _, tt := range tests {
		lo, hi, mg := priceRange(tt.prices)
		if lo != tt.lo || hi != tt.hi || math.Abs(mg-tt.mg) > 1e-9 {
			t.Errorf("%s: priceRange = (%v, %v, %v), want (%v, %v, %v)", tt.name, lo, hi, mg, tt.lo, tt.hi, tt.mg)
		}
	}
}
