package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/curbz/flightimpact/internal/model"
)

// Entry is one reported quantity.
type Entry struct {
	Value float64 `json:"value" yaml:"value" msgpack:"value"`
	Unit  string  `json:"unit" yaml:"unit" msgpack:"unit"`
}

// Species names, in report order.
const (
	LTOFuel          = "LTO fuel"
	LTONOx           = "LTO NOx"
	LTONvPMMass      = "LTO nvPM mass"
	LTONvPMNumber    = "LTO nvPM number"
	CruiseFuel       = "cruise fuel"
	CruiseCO2        = "cruise CO2"
	CruiseH2O        = "cruise H2O"
	CruiseSO2        = "cruise SO2"
	CruiseH2SO4      = "cruise H2SO4"
	CruiseNOx        = "cruise NOx"
	CruiseNvPMMass   = "cruise nvPM mass"
	CruiseNvPMNumber = "cruise nvPM number"
)

// EmissionsSummary maps species name to value and unit, keeping the
// order entries were added in.
type EmissionsSummary struct {
	Name    string
	entries *orderedmap.OrderedMap
}

func New(name string) *EmissionsSummary {
	om := orderedmap.New()
	return &EmissionsSummary{Name: name, entries: om}
}

// Build the summary for a mission result.
func Build(res *model.MissionResult) *EmissionsSummary {
	s := New(res.Name)
	s.Set(LTOFuel, res.LTO.Fuel, "kg")
	s.Set(LTONOx, res.LTO.NOx, "kg")
	s.Set(LTONvPMMass, res.LTO.NvPMMass, "g")
	s.Set(LTONvPMNumber, res.LTO.NvPMNumber, "#")
	s.Set(CruiseFuel, res.Cruise.Fuel, "kg")
	s.Set(CruiseCO2, res.Cruise.CO2, "kg")
	s.Set(CruiseH2O, res.Cruise.H2O, "kg")
	s.Set(CruiseSO2, res.Cruise.SO2, "kg")
	s.Set(CruiseH2SO4, res.Cruise.H2SO4, "kg")
	s.Set(CruiseNOx, res.Cruise.NOx, "kg")
	s.Set(CruiseNvPMMass, res.Cruise.NvPMMass, "g")
	s.Set(CruiseNvPMNumber, res.Cruise.NvPMNumber, "#")
	return s
}

func (s *EmissionsSummary) Set(species string, value float64, unit string) {
	s.entries.Set(species, Entry{Value: value, Unit: unit})
}

func (s *EmissionsSummary) Get(species string) (Entry, bool) {
	v, ok := s.entries.Get(species)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

func (s *EmissionsSummary) Species() []string {
	return s.entries.Keys()
}

func (s *EmissionsSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.entries)
}

type namedEntry struct {
	Species string  `yaml:"species" msgpack:"species"`
	Value   float64 `yaml:"value" msgpack:"value"`
	Unit    string  `yaml:"unit" msgpack:"unit"`
}

func (s *EmissionsSummary) list() []namedEntry {
	var l []namedEntry
	for _, k := range s.Species() {
		e, _ := s.Get(k)
		l = append(l, namedEntry{Species: k, Value: e.Value, Unit: e.Unit})
	}
	return l
}

type Format string

const (
	Text    Format = "text"
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// Write encodes summaries to w in the given format.
func Write(w io.Writer, f Format, summaries ...*EmissionsSummary) error {
	switch f {
	case Text, "":
		for _, s := range summaries {
			if err := s.WriteText(w); err != nil {
				return err
			}
		}
		return nil

	case JSON:
		if err := uniqueNames(summaries); err != nil {
			return err
		}
		doc := orderedmap.New()
		for _, s := range summaries {
			doc.Set(s.Name, s)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case YAML:
		doc := make([]struct {
			Mission   string       `yaml:"mission"`
			Emissions []namedEntry `yaml:"emissions"`
		}, len(summaries))
		for i, s := range summaries {
			doc[i].Mission = s.Name
			doc[i].Emissions = s.list()
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)

	case MsgPack:
		if err := uniqueNames(summaries); err != nil {
			return err
		}
		doc := make(map[string][]namedEntry, len(summaries))
		for _, s := range summaries {
			doc[s.Name] = s.list()
		}
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(doc)

	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// uniqueNames guards the formats keyed by mission name.
func uniqueNames(summaries []*EmissionsSummary) error {
	seen := make(map[string]bool, len(summaries))
	for _, s := range summaries {
		if seen[s.Name] {
			return fmt.Errorf("duplicate mission name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// WriteText prints a human-readable table with grouped digits.
func (s *EmissionsSummary) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.BritishEnglish)

	width := 0
	for _, k := range s.Species() {
		width = max(width, len(k))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "==== %s ====\n", s.Name)
	for _, k := range s.Species() {
		e, _ := s.Get(k)
		var v string
		if e.Value != 0 && (e.Value >= 1e9 || e.Value < 1e-2) {
			v = p.Sprintf("%.3e", e.Value)
		} else {
			v = p.Sprintf("%.2f", e.Value)
		}
		fmt.Fprintf(&b, "  %-*s %20s %s\n", width, k, v, e.Unit)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
