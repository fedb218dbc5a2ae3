package cp

import "fmt"

// Contradiction signals that a domain modification would have emptied a
// domain, i.e. the current partial assignment has no solution.
type Contradiction struct {
	Var   *IntVar    // variable whose domain would become empty, may be nil
	Cause Propagator // propagator requesting the modification, may be nil
	Msg   string
}

func (c *Contradiction) Error() string {
	if c.Var == nil {
		return fmt.Sprintf("contradiction: %s", c.Msg)
	}
	return fmt.Sprintf("contradiction on %s: %s", c.Var.Name(), c.Msg)
}

// Fail creates a contradiction raised by a propagator.
func Fail(cause Propagator, v *IntVar, format string, args ...interface{}) error {
	return &Contradiction{
		Var:   v,
		Cause: cause,
		Msg:   fmt.Sprintf(format, args...),
	}
}
