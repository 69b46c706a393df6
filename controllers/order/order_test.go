package orderControllers

import (
	"encoding/json"
	"testing"
)

func TestParseTotal(t *testing.T) {
	cases := map[string]float64{
		`78.5`:     78.5,
		`"78.50"`:  78.5,
		`" 12 "`:   12,
		`"$12.00"`: 0,
		`null`:     0,
		``:         0,
		`true`:     0,
		`[1]`:      0,
	}
	for raw, want := range cases {
		if got := parseTotal(json.RawMessage(raw)); got != want {
			t.Errorf("parseTotal(%s) = %v, want %v", raw, got, want)
		}
	}
}
