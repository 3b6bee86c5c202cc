package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONRoundTrip(t *testing.T) {
	type payout struct {
		Commission Money  `json:"commission"`
		Rate       *Money `json:"rate,omitempty"`
	}

	rate := NewMoneyFromFloat(12.5)
	in := payout{Commission: NewMoneyFromFloat(1234.567), Rate: &rate}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"commission":"1234.57","rate":"12.50"}`
	if string(b) != want {
		t.Fatalf("unexpected json: %s", b)
	}

	// 字符串与数字两种入参都要能解析
	var out payout
	if err := json.Unmarshal([]byte(`{"commission":99.999,"rate":"3.1"}`), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.Commission.String() != "100.00" {
		t.Fatalf("expected rounded commission, got %s", out.Commission.String())
	}
	if out.Rate.String() != "3.10" {
		t.Fatalf("expected padded rate, got %s", out.Rate.String())
	}

	var zero payout
	if err := json.Unmarshal([]byte(`{"commission":null}`), &zero); err != nil {
		t.Fatalf("unmarshal null failed: %v", err)
	}
	if !zero.Commission.IsZero() {
		t.Fatalf("null must decode to zero, got %s", zero.Commission.String())
	}
}

func TestMoneyScanRounds(t *testing.T) {
	var m Money
	if err := m.Scan("7.899"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "7.90" {
		t.Fatalf("expected scanned value rounded, got %s", m.String())
	}

	v, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if s, ok := v.(string); !ok || s != "7.9" {
		t.Fatalf("unexpected driver value: %#v", v)
	}
}
