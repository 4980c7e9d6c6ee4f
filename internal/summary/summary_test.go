package summary

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/curbz/flightimpact/internal/model"
)

func sampleResult() *model.MissionResult {
	return &model.MissionResult{
		Name: "EGLL-KBOS",
		LTO: model.Emissions{
			Fuel: 750.228, NOx: 10.5748, NvPMMass: 11.0822, NvPMNumber: 2.2147e17,
		},
		Cruise: model.Emissions{
			Fuel: 15896.12, CO2: 50231.74, H2O: 19711.19, SO2: 18.675, H2SO4: 0.5835,
			NOx: 229.215, NvPMMass: 515.305, NvPMNumber: 7.0207e18,
		},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sampleResult())

	want := []string{
		LTOFuel, LTONOx, LTONvPMMass, LTONvPMNumber,
		CruiseFuel, CruiseCO2, CruiseH2O, CruiseSO2, CruiseH2SO4, CruiseNOx, CruiseNvPMMass, CruiseNvPMNumber,
	}
	got := s.Species()
	if len(got) != len(want) {
		t.Fatalf("got %d species, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("species %d: got %q, want %q", i, got[i], want[i])
		}
	}

	e, ok := s.Get(CruiseCO2)
	if !ok || e.Value != 50231.74 || e.Unit != "kg" {
		t.Errorf("cruise CO2: got %+v, %v", e, ok)
	}
	if e, _ := s.Get(CruiseNvPMMass); e.Unit != "g" {
		t.Errorf("nvPM mass unit %q", e.Unit)
	}
	if _, ok := s.Get("cruise CO"); ok {
		t.Errorf("unexpected species")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Text, Build(sampleResult())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"==== EGLL-KBOS ====", "50,231.74 kg", "cruise H2SO4", "0.58 kg"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 13 {
		t.Errorf("got %d lines, want 13", lines)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, Build(sampleResult())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]map[string]Entry
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if e := doc["EGLL-KBOS"][CruiseNOx]; e.Value != 229.215 || e.Unit != "kg" {
		t.Errorf("cruise NOx: %+v", e)
	}

	// insertion order is preserved in the encoded document
	out := buf.String()
	if strings.Index(out, LTOFuel) > strings.Index(out, CruiseFuel) {
		t.Errorf("LTO entries should precede cruise entries:\n%s", out)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, YAML, Build(sampleResult())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc []struct {
		Mission   string       `yaml:"mission"`
		Emissions []namedEntry `yaml:"emissions"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(doc) != 1 || doc[0].Mission != "EGLL-KBOS" || len(doc[0].Emissions) != 12 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc[0].Emissions[0].Species != LTOFuel {
		t.Errorf("first entry %q", doc[0].Emissions[0].Species)
	}
}

func TestWriteMsgPack(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, MsgPack, Build(sampleResult())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string][]namedEntry
	if err := msgpack.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	entries := doc["EGLL-KBOS"]
	if len(entries) != 12 || entries[11].Species != CruiseNvPMNumber || entries[11].Value != 7.0207e18 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", Build(sampleResult())); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestWriteDuplicateNames(t *testing.T) {
	a, b := Build(sampleResult()), Build(sampleResult())

	for _, f := range []Format{JSON, MsgPack} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, f, a, b); err == nil {
				t.Fatalf("expected error for two summaries named %q", a.Name)
			}
		})
	}

	// list based formats keep both
	var buf bytes.Buffer
	if err := Write(&buf, Text, a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(buf.String(), "==== EGLL-KBOS ===="); n != 2 {
		t.Errorf("got %d text sections, want 2", n)
	}
}
