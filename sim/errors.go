package sim

import "fmt"

// invariantViolation signals a fatal internal-consistency failure: the
// kind spec §7 says must never occur on well-formed input (non-finite
// fitness, depth overflow after crossover, a null byte hit during active
// traversal, an empty active-index set at a required depth layer). These
// are bugs, not expected outcomes, so the library panics rather than
// returning an error a caller might plausibly retry.
type invariantViolation struct {
	msg string
}

func (e invariantViolation) Error() string { return e.msg }

// mustf panics with an invariantViolation if cond is false. Callers at the
// CLI boundary may recover and logrus.Fatalf with the same message; library
// callers may recover and retry with different input.
func mustf(cond bool, format string, args ...any) {
	if !cond {
		panic(invariantViolation{msg: fmt.Sprintf(format, args...)})
	}
}
