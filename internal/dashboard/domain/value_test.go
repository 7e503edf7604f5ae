package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMetricValue_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
		nan  bool
	}{
		{"number", `123.45`, 123.45, false},
		{"integer", `42`, 42, false},
		{"numeric string", `"987.60"`, 987.6, false},
		{"null", `null`, 0, true},
		{"garbage string", `"abc"`, 0, true},
		{"object", `{"x":1}`, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var v MetricValue
			if err := json.Unmarshal([]byte(c.in), &v); err != nil {
				t.Fatalf("unmarshal %q: %v", c.in, err)
			}
			if c.nan {
				if v.Valid() {
					t.Fatalf("unmarshal %q = %v, want NaN", c.in, v.Float())
				}
				return
			}
			if v.Float() != c.want {
				t.Fatalf("unmarshal %q = %v, want %v", c.in, v.Float(), c.want)
			}
		})
	}
}

func TestMetricValue_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(MetricValue(12.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.5" {
		t.Fatalf("marshal = %s", b)
	}
	b, err = json.Marshal(MetricValue(math.NaN()))
	if err != nil {
		t.Fatalf("marshal NaN: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("marshal NaN = %s, want null", b)
	}
}

func TestResultRow_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantLabel string
		wantValue float64
	}{
		{"string label", `{"nome_entidade":"Nola Centro","valor_metrica":100.5}`, "Nola Centro", 100.5},
		{"numeric label", `{"nome_entidade":14,"valor_metrica":"88.20"}`, "14", 88.2},
		{"null label", `{"nome_entidade":null,"valor_metrica":1}`, "", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r ResultRow
			if err := json.Unmarshal([]byte(c.in), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if r.EntityLabel != c.wantLabel {
				t.Fatalf("label = %q, want %q", r.EntityLabel, c.wantLabel)
			}
			if r.MetricValue.Float() != c.wantValue {
				t.Fatalf("value = %v, want %v", r.MetricValue.Float(), c.wantValue)
			}
		})
	}
}

func TestResultRow_OrderPreserved(t *testing.T) {
	in := `[{"nome_entidade":"b","valor_metrica":2},{"nome_entidade":"a","valor_metrica":3},{"nome_entidade":"c","valor_metrica":1}]`
	var rows []ResultRow
	if err := json.Unmarshal([]byte(in), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"b", "a", "c"}
	for i, w := range want {
		if rows[i].EntityLabel != w {
			t.Fatalf("rows[%d] = %q, want %q (order must be preserved)", i, rows[i].EntityLabel, w)
		}
	}
}
