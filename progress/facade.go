package progress

import (
	"time"

	"github.com/mobanhawi/prodash/unit"
)

// Progress is the capability set library code depends on so it can
// accept progress reporting optionally, without caring whether the
// caller passed a real tree Item or Discard. *Item implements it
// directly; Discard and DoOrDiscard let a caller opt out cheaply.
type Progress interface {
	AddChild(name string) Progress
	Init(max *uint64, u unit.Unit)
	Set(step uint64)
	Inc()
	IncBy(n uint64)
	SetName(name string)
	Name() string
	Message(level Level, content string)
	Blocked(reason string, eta *time.Time)
	Halted(reason string, eta *time.Time)
	Done(msg ...string)
	Fail(msg ...string)
}

// Discard is a Progress implementation whose every method is a no-op.
// It has no fields, so passing it around and calling through the
// Progress interface costs nothing beyond the interface dispatch
// itself — there is no tree, no lock, no allocation anywhere in it.
type Discard struct{}

func (Discard) AddChild(string) Progress   { return Discard{} }
func (Discard) Init(*uint64, unit.Unit)    {}
func (Discard) Set(uint64)                 {}
func (Discard) Inc()                       {}
func (Discard) IncBy(uint64)               {}
func (Discard) SetName(string)             {}
func (Discard) Name() string               { return "" }
func (Discard) Message(Level, string)      {}
func (Discard) Blocked(string, *time.Time) {}
func (Discard) Halted(string, *time.Time)  {}
func (Discard) Done(...string)             {}
func (Discard) Fail(...string)             {}

var _ Progress = Discard{}

// DoOrDiscard delegates to an optional wrapped Progress, falling back
// to Discard's no-ops when none was provided. It's the idiom for
// library functions that take a `*progress.DoOrDiscard` parameter which
// may or may not have been constructed from a real caller-supplied
// Progress.
type DoOrDiscard struct {
	inner Progress
}

// Some wraps p (which may itself be nil) as a DoOrDiscard.
func Some(p Progress) *DoOrDiscard {
	return &DoOrDiscard{inner: p}
}

func (d *DoOrDiscard) active() Progress {
	if d == nil || d.inner == nil {
		return Discard{}
	}
	return d.inner
}

func (d *DoOrDiscard) AddChild(name string) Progress         { return d.active().AddChild(name) }
func (d *DoOrDiscard) Init(max *uint64, u unit.Unit)         { d.active().Init(max, u) }
func (d *DoOrDiscard) Set(step uint64)                       { d.active().Set(step) }
func (d *DoOrDiscard) Inc()                                  { d.active().Inc() }
func (d *DoOrDiscard) IncBy(n uint64)                        { d.active().IncBy(n) }
func (d *DoOrDiscard) SetName(name string)                   { d.active().SetName(name) }
func (d *DoOrDiscard) Name() string                          { return d.active().Name() }
func (d *DoOrDiscard) Message(level Level, content string)   { d.active().Message(level, content) }
func (d *DoOrDiscard) Blocked(reason string, eta *time.Time) { d.active().Blocked(reason, eta) }
func (d *DoOrDiscard) Halted(reason string, eta *time.Time)  { d.active().Halted(reason, eta) }
func (d *DoOrDiscard) Done(msg ...string)                    { d.active().Done(msg...) }
func (d *DoOrDiscard) Fail(msg ...string)                    { d.active().Fail(msg...) }

var _ Progress = (*DoOrDiscard)(nil)
