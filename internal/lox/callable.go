package lox

import "time"

// Callable is anything invocable with `(...)`: user functions, methods and
// classes (class calls construct+initialize an instance) and native
// functions such as clock.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
	String() string
}

// clockFn is the single built-in native function, seeded into globals by
// the Interpreter. It returns the seconds elapsed since the clockFn was
// created (when NewInterpreter ran), read from Go's monotonic clock, which
// is enough for measuring script run time without depending on the system
// clock. It does not return seconds since the Unix epoch.
type clockFn struct {
	start time.Time
}

func newClockFn() *clockFn {
	return &clockFn{start: time.Now()}
}

func (c *clockFn) Arity() int { return 0 }

func (c *clockFn) Call(in *Interpreter, args []any) (any, error) {
	return time.Since(c.start).Seconds(), nil
}

func (c *clockFn) String() string { return "<native fn>" }
