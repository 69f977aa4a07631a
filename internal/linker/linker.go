// Package linker implements the assembler's two-pass label resolution:
// every label reference site is recorded as it is encountered, and once
// the whole source has been scanned every site is backpatched with its
// label's final address in one pass.
//
// Grounded on original_source/libvmasm/src/labels.c and
// inc/vmasm/labels.h: a backpatch list per label name (site recorded at
// the head, LIFO, matching enterLabel's list-prepend), an address of -1
// meaning "referenced but not yet defined", and a LinkLabels pass that
// fails if any label is still undefined when linking runs.
package linker

import (
	"fmt"
	"sort"
)

// undefined is the sentinel recorded for a label that has been
// referenced but has no address yet, matching labels.c's address=-1.
const undefined = -1

// backpatchSite is one use site awaiting an address, corresponding to
// one node of labels.c's singly linked `backpatch` list.
type backpatchSite struct {
	location uint16
}

// record is one label's bookkeeping: its resolved address (or
// undefined) and every site that referenced it before it was resolved.
// Mirrors backpatchRec, with the Go slice standing in for the C code's
// hand-rolled linked list.
type record struct {
	address int32
	sites   []backpatchSite
}

// Table is the full set of labels seen while assembling one program.
// The reference implementation keeps this as file-scope global state in
// labels.c (a single assembler run per process); this port scopes it to
// one Table instance so a single binary can assemble more than one
// program without restarting, which is a strictly more general rendition
// of the same two-pass algorithm.
type Table struct {
	byName map[string]*record
}

// New returns an empty label table.
func New() *Table {
	return &Table{byName: make(map[string]*record)}
}

func (t *Table) find(label string) *record {
	r, ok := t.byName[label]
	if !ok {
		r = &record{address: undefined}
		t.byName[label] = r
	}
	return r
}

// Define records label's address, matching setLabelAddr. Redefining an
// already-defined label is reported as a non-fatal error by the
// reference implementation (a stderr print, assembly continues); Define
// preserves that by returning an error rather than halting the caller,
// leaving the decision of whether to treat it as fatal to the caller.
func (t *Table) Define(label string, addr uint16) error {
	r := t.find(label)
	if r.address != undefined {
		return fmt.Errorf("label %q redefined at 0x%04X (was 0x%04X)", label, addr, r.address)
	}
	r.address = int32(addr)
	return nil
}

// Reference records a use site for label at location. Nothing is written
// here, even if the label is already defined: Link backpatches every
// site. Matches enterLabel's list-prepend discipline.
func (t *Table) Reference(label string, location uint16) {
	r := t.find(label)
	r.sites = append([]backpatchSite{{location: location}}, r.sites...)
}

// Link resolves every backpatch site against its label's final address,
// writing a big-endian 16-bit address into image at each site. It
// returns an error listing every label that is still undefined, matching
// LinkLabels' aggregate-then-report behavior rather than stopping at the
// first failure.
func (t *Table) Link(image []byte) error {
	var undefinedLabels []string
	for name, r := range t.byName {
		if r.address == undefined {
			undefinedLabels = append(undefinedLabels, name)
			continue
		}
		for _, site := range r.sites {
			image[site.location] = byte(r.address >> 8)
			image[site.location+1] = byte(r.address)
		}
	}
	if len(undefinedLabels) > 0 {
		return fmt.Errorf("undefined labels: %v", undefinedLabels)
	}
	return nil
}

// Names returns every label name seen, sorted, for diagnostic listings
// such as vm's -l show-labels flag.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Address returns a label's resolved address and whether it has one,
// for callers (e.g. cmd/vm's -l label listing) that want to annotate
// without backpatching.
func (t *Table) Address(label string) (uint16, bool) {
	r, ok := t.byName[label]
	if !ok || r.address == undefined {
		return 0, false
	}
	return uint16(r.address), true
}
