package exclusions

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// context

// Context describes the environment predicates are evaluated against:
// the backend name, an optional driver sub-identifier and the backend
// version. Arbitrary capability facts can be attached as a json document
// for function predicates to query. A Context must not be mutated while
// an evaluation is in flight.
type Context struct {
	backend   string
	driver    string
	version   Version
	versionFn func() Version
	Facts     Facts `json:"facts"`
}

func NewContext(backend string, driver string, version ...int) *Context {
	return &Context{
		backend: backend,
		driver:  driver,
		version: Version(version),
	}
}

func (ctx *Context) Backend() string {
	return ctx.backend
}

func (ctx *Context) Driver() string {
	return ctx.driver
}

// Version returns the backend version tuple. When a version func is set it is
// consulted on every call; the lookup may block (live backends query their
// connection) and callers needing bounded latency must wrap it themselves.
func (ctx *Context) Version() Version {
	if ctx.versionFn != nil {
		return ctx.versionFn()
	}
	return ctx.version
}

// OnVersion installs a live version lookup, replacing the static tuple.
func (ctx *Context) OnVersion(fn func() Version) {
	ctx.versionFn = fn
}

func (ctx *Context) SetFact(path string, value interface{}) (err error) {
	return ctx.Facts.Set(path, value)
}

func (ctx *Context) GetFact(path string) gjson.Result {
	return ctx.Facts.Get(path)
}

// facts

type Facts []byte

func (f Facts) Get(path string) gjson.Result {
	return gjson.GetBytes(f, path)
}

func (f *Facts) Set(path string, value interface{}) (err error) {
	*f, err = sjson.SetBytes(*f, path, value)
	return
}

func (f Facts) MarshalJSON() ([]byte, error) {
	return f, nil
}

func (f *Facts) UnmarshalJSON(data []byte) error {
	*f = data
	return nil
}

func (f Facts) String() string {
	return string(f)
}
