// Package microcode parses the two descriptor files the simulator
// core consumes but never generates: the opcode table CSV and the
// reader/writer component JSON used for reverse lookups against the
// L0-L4/R0-R4 control buses (spec.md §3 "Microcode table descriptor").
package microcode

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// OpcodeEntry is one row of the opcode table CSV.
type OpcodeEntry struct {
	HexOpcode string
	DecOpcode int
	Mnemonic  string
	MaxCycles int
	MinCycles int
}

// ParseTable parses the opcode table: rows of
// hexOpcode,decOpcode,mnemonic,maxCycles,minCycles.
func ParseTable(r io.Reader) ([]OpcodeEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("microcode: parsing opcode table: %w", err)
	}

	entries := make([]OpcodeEntry, 0, len(records))
	for i, rec := range records {
		dec, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("microcode: row %d: invalid decOpcode %q: %w", i, rec[1], err)
		}
		maxCycles, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("microcode: row %d: invalid maxCycles %q: %w", i, rec[3], err)
		}
		minCycles, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("microcode: row %d: invalid minCycles %q: %w", i, rec[4], err)
		}

		entries = append(entries, OpcodeEntry{
			HexOpcode: rec[0],
			DecOpcode: dec,
			Mnemonic:  rec[2],
			MaxCycles: maxCycles,
			MinCycles: minCycles,
		})
	}

	return entries, nil
}

// ByDecOpcode finds the entry for a decimal opcode value.
func ByDecOpcode(entries []OpcodeEntry, code int) (OpcodeEntry, bool) {
	for _, e := range entries {
		if e.DecOpcode == code {
			return e, true
		}
	}
	return OpcodeEntry{}, false
}

// Components is the reader/writer reverse lookup table for the
// control buses: a control code maps to the human-readable name of
// the component it selects.
type Components struct {
	Readers map[string]string `json:"readers"`
	Writers map[string]string `json:"writers"`
}

// ParseComponents parses the components descriptor JSON.
func ParseComponents(r io.Reader) (*Components, error) {
	var c Components
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("microcode: parsing components descriptor: %w", err)
	}
	return &c, nil
}
