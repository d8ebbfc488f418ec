package printer

import (
	"io"

	"github.com/dcurrie/picrin/value"
)

// EscapeMode selects string/character escaping: write mode escapes for
// re-reading, display mode emits characters raw and strings unescaped
// after NFC normalization (spec.md §4.C).
type EscapeMode int

const (
	EscapeWrite EscapeMode = iota
	EscapeDisplay
)

// SharingMode selects the printer's cycle/sharing behavior (spec.md
// §4.C's three operators).
type SharingMode int

const (
	// SharingNone performs no sharing analysis; a cyclic value recurses
	// forever (write-simple — "caller's problem").
	SharingNone SharingMode = iota
	// SharingScoped labels every object reached two or more times from
	// the root (spec.md invariant #4), using a fresh analysis for this
	// call only — the session's scratch state is reset before and after,
	// so no earlier call's state affects it (write / display's "shared
	// detection with cleanup"). The reset also discards whatever earlier
	// SharingPersistent calls on the same Session had accumulated.
	SharingScoped
	// SharingPersistent uses the identical reached-twice analysis, but
	// accumulates across calls made through the same Session instead of
	// resetting (write-shared's "label all shared objects": once an
	// object has been labeled on one call, later calls that reach it
	// again keep the same label instead of re-deriving it). The
	// accumulated state lasts until the next SharingScoped call on the
	// Session, which clears it.
	SharingPersistent
)

// Options controls a single Write/WriteShared/WriteSimple/Display call.
// Matches the shape of hive/printer.Options/DefaultOptions().
type Options struct {
	Escape  EscapeMode
	Sharing SharingMode
}

// DefaultOptions returns the options for plain `write`.
func DefaultOptions() Options {
	return Options{Escape: EscapeWrite, Sharing: SharingScoped}
}

// Session amortizes the scratch attribute maps used for cycle/sharing
// detection across repeated calls to the same port (SPEC_FULL.md §6,
// grounded on original_source/lib/ext/write.c's writer_control, extended
// here so a long-lived port does not re-allocate shard tables on every
// write, and so write-shared's "label all shared objects" can mean
// something durable across a session rather than collapsing to exactly
// the same output as write). Package-level Write/WriteShared/
// WriteSimple/Display are one-shot convenience wrappers around a
// throwaway Session.
type Session struct {
	w         io.Writer
	seen      *value.AttrMap // object -> 0 (first visit) | 1 (shared)
	labels    *value.AttrMap // object -> assigned label number
	nextLabel int
}

// NewSession creates a printer session writing to w.
func NewSession(w io.Writer) *Session {
	return &Session{w: w, seen: value.NewAttrMap(), labels: value.NewAttrMap()}
}

// Print writes v to the session's port per opts.
func (s *Session) Print(v value.Value, opts Options) error {
	p := &printerState{w: s.w, escape: opts.Escape, seen: s.seen, labels: s.labels, nextLabel: &s.nextLabel}

	switch opts.Sharing {
	case SharingNone:
		return (&printerState{w: s.w, escape: opts.Escape}).emit(v)
	case SharingScoped:
		s.seen.Reset()
		s.labels.Reset()
		s.nextLabel = 0
		traverseAll(s.seen, v)
		err := p.emitShared(v)
		s.seen.Reset()
		s.labels.Reset()
		s.nextLabel = 0
		return err
	case SharingPersistent:
		traverseAll(s.seen, v)
		return p.emitShared(v)
	default:
		return (&printerState{w: s.w, escape: opts.Escape}).emit(v)
	}
}

// Write writes v in write mode, with a fresh sharing analysis scoped to
// this call.
func Write(v value.Value, w io.Writer) error {
	return NewSession(w).Print(v, Options{Escape: EscapeWrite, Sharing: SharingScoped})
}

// WriteShared writes v in write mode, labeling every object reached more
// than once from the root; a fresh Session is thrown away immediately
// here, so this one-shot form behaves the same as Write — the
// across-call persistence only matters when callers keep the Session.
func WriteShared(v value.Value, w io.Writer) error {
	return NewSession(w).Print(v, Options{Escape: EscapeWrite, Sharing: SharingPersistent})
}

// WriteSimple writes v in write mode performing no sharing analysis; a
// cyclic v will recurse until the Go stack is exhausted, matching spec.md
// §4.C's "caller's problem" contract.
func WriteSimple(v value.Value, w io.Writer) error {
	return NewSession(w).Print(v, Options{Escape: EscapeWrite, Sharing: SharingNone})
}

// Display writes v in display mode (no escaping), with the same
// scoped-sharing analysis as Write (spec.md §6: "otherwise like write").
func Display(v value.Value, w io.Writer) error {
	return NewSession(w).Print(v, Options{Escape: EscapeDisplay, Sharing: SharingScoped})
}
