package models

import (
	"testing"
	"time"
)

func TestOrderViewParsesItemsBestEffort(t *testing.T) {
	cases := map[string]string{
		`[{"id":1,"qty":2}]`: `[{"id":1,"qty":2}]`,
		`not json`:           `[]`,
		``:                   `[]`,
		`{"legacy":true}`:    `{"legacy":true}`,
	}
	for stored, want := range cases {
		if got := string(Order{Items: stored}.View().Items); got != want {
			t.Errorf("Items %q viewed as %s, want %s", stored, got, want)
		}
	}
}

func TestOrderTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.FixedZone("CET", 3600))
	if got := OrderTimestamp(at); got != "2024-03-09T13:05:07.123Z" {
		t.Fatalf("got %s", got)
	}
}
