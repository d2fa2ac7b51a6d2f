package main

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshot is a portable record of machine state, for inspecting a session
// after the fact. Words are listed newest first, without native functions.
type snapshot struct {
	Mode    string        `cbor:"mode"`
	Stack   []int         `cbor:"stack"`
	Pending []string      `cbor:"pending,omitempty"`
	Comp    []instrRecord `cbor:"comp,omitempty"`
	Words   []wordRecord  `cbor:"words"`
	MemUsed uint          `cbor:"mem_used"`
}

type wordRecord struct {
	Name string        `cbor:"name"`
	Kind string        `cbor:"kind"`
	Code []instrRecord `cbor:"code,omitempty"`
	Cell int           `cbor:"cell,omitempty"`
}

type instrRecord struct {
	Op   string `cbor:"op"`
	Val  int    `cbor:"val,omitempty"`
	Word string `cbor:"word,omitempty"`
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// Snapshot encodes the current machine state as canonical CBOR.
func (vm *VM) Snapshot() ([]byte, error) {
	return snapshotEncMode.Marshal(vm.snapshot())
}

func (vm *VM) snapshot() snapshot {
	snap := snapshot{
		Mode:    vm.mode.String(),
		Stack:   append([]int{}, vm.stack...),
		Comp:    instrRecords(vm.comp[:vm.compAt]),
		MemUsed: vm.mem.Used(),
	}
	for _, st := range vm.stmts[:vm.stmtAt] {
		snap.Pending = append(snap.Pending, st.String())
	}
	for w := vm.words; w != nil; w = w.next {
		snap.Words = append(snap.Words, wordRecord{
			Name: w.name,
			Kind: w.kind.String(),
			Code: instrRecords(w.code),
			Cell: w.cell,
		})
	}
	return snap
}

func instrRecords(code []instr) []instrRecord {
	if len(code) == 0 {
		return nil
	}
	recs := make([]instrRecord, len(code))
	for i, in := range code {
		recs[i] = instrRecord{Op: in.op.String(), Val: in.val}
		if in.word != nil {
			recs[i].Word = in.word.name
		}
	}
	return recs
}

func unmarshalSnapshot(data []byte) (*snapshot, error) {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
