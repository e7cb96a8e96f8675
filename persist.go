package yum

import (
	"bufio"
	"encoding/binary"
	"io"
)

// rerollMagic is the "PROB" header magic for the reroll table file format.
const rerollMagic = 0x50524F42

// WriteRerollTable writes t in the format of spec §6: a three-word
// little-endian header {magic, NumDiceHands, NumKeepMasks} followed by
// NumDiceHands*NumKeepMasks*NumDiceHands little-endian float64s in
// start->mask->end order.
func WriteRerollTable(w io.Writer, t *RerollTable) error {
	header := [3]uint32{rerollMagic, NumDiceHands, NumKeepMasks}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return ErrIOFailure
	}
	if err := binary.Write(w, binary.LittleEndian, t.probs); err != nil {
		return ErrIOFailure
	}
	return nil
}

// ReadRerollTable reads a reroll table previously written by
// [WriteRerollTable], validating the header. Returns [ErrInvalidTable] on
// a header mismatch or truncated payload.
func ReadRerollTable(r io.Reader) (*RerollTable, error) {
	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, ErrInvalidTable
	}
	if header[0] != rerollMagic || header[1] != NumDiceHands || header[2] != NumKeepMasks {
		return nil, ErrInvalidTable
	}
	t := &RerollTable{probs: make([]float64, NumDiceHands*NumKeepMasks*NumDiceHands)}
	if err := binary.Read(r, binary.LittleEndian, t.probs); err != nil {
		return nil, ErrInvalidTable
	}
	return t, nil
}

// WriteStateIndex writes idx in the format of spec §6: a little-endian
// u32 count N followed by N little-endian u32 packed state keys in
// ascending order.
func WriteStateIndex(w io.Writer, idx *StateIndex) error {
	n := uint32(len(idx.keys))
	if err := binary.Write(w, binary.LittleEndian, n); err != nil {
		return ErrIOFailure
	}
	if err := binary.Write(w, binary.LittleEndian, idx.keys); err != nil {
		return ErrIOFailure
	}
	return nil
}

// ReadStateIndex reads a state index map previously written by
// [WriteStateIndex], rebuilding the reverse lookup. Returns
// [ErrInvalidMap] on a truncated payload.
func ReadStateIndex(r io.Reader) (*StateIndex, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, ErrInvalidMap
	}
	keys := make([]State, n)
	if err := binary.Read(r, binary.LittleEndian, keys); err != nil {
		return nil, ErrInvalidMap
	}
	return NewStateIndex(keys), nil
}

// ActionWriter appends per-cell action codes (and, optionally, EVs) to
// output streams in the canonical ordering of spec §6: for each round in
// solve order, for each state in that round's ascending state-index
// order, for dice_index 0..251, for turn 0..2.
type ActionWriter struct {
	actions *bufio.Writer
	evs     *bufio.Writer
	saveEV  bool
}

// NewActionWriter wraps actionsW (required) and evW (used only if saveEV
// is true) for streaming round output.
func NewActionWriter(actionsW io.Writer, evW io.Writer, saveEV bool) *ActionWriter {
	aw := &ActionWriter{actions: bufio.NewWriter(actionsW), saveEV: saveEV}
	if saveEV {
		aw.evs = bufio.NewWriter(evW)
	}
	return aw
}

// WriteCell appends one cell's action and, if enabled, EV.
func (w *ActionWriter) WriteCell(a Action, ev float32) error {
	if err := w.actions.WriteByte(byte(a)); err != nil {
		return ErrIOFailure
	}
	if w.saveEV {
		if err := binary.Write(w.evs, binary.LittleEndian, ev); err != nil {
			return ErrIOFailure
		}
	}
	return nil
}

// Flush flushes any buffered output.
func (w *ActionWriter) Flush() error {
	if err := w.actions.Flush(); err != nil {
		return ErrIOFailure
	}
	if w.saveEV {
		if err := w.evs.Flush(); err != nil {
			return ErrIOFailure
		}
	}
	return nil
}
