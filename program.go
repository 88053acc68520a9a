package orbitcore

// Condition gates a Program step: it is evaluated on every simulation tick
// against the current time and orbit, and the step holds until it reports
// true, whether that's an instantaneous predicate ("periapsis has reached
// X") or a delay ("300 seconds have passed").
type Condition interface {
	Ready(t float64, o *Orbit) bool
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(t float64, o *Orbit) bool

// Ready calls f.
func (f ConditionFunc) Ready(t float64, o *Orbit) bool { return f(t, o) }

// AtTime is satisfied once t reaches target.
func AtTime(target float64) Condition {
	return ConditionFunc(func(t float64, o *Orbit) bool { return t >= target })
}

// Delay is satisfied once `wait` seconds have elapsed since it was first
// evaluated. Its state is private to the single program step holding it.
func Delay(wait float64) Condition {
	var start float64
	var started bool
	return ConditionFunc(func(t float64, o *Orbit) bool {
		if !started {
			start = t
			started = true
		}
		return t-start >= wait
	})
}

// PeriapsisAtLeast is satisfied once the orbit's periapsis reaches r.
func PeriapsisAtLeast(r float64) Condition {
	return ConditionFunc(func(t float64, o *Orbit) bool { return o.Periapsis() >= r })
}

// ApoapsisAtLeast is satisfied once the orbit is closed (e < 1) and its
// apoapsis reaches r; open orbits never satisfy it.
func ApoapsisAtLeast(r float64) Condition {
	return ConditionFunc(func(t float64, o *Orbit) bool { return o.ecc < 1 && o.Apoapsis() >= r })
}

// Step is one entry of a Program: while Condition is not yet Ready, Rocket
// holds Throttle with its orientation aligned to Thrust (a direction in the
// primary's reference frame; the zero vector means coast).
type Step struct {
	Condition Condition
	Thrust    Vec3
	Throttle  float64
}

// Program is an ordered sequence of Steps, advanced one at a time as each
// Step's Condition becomes Ready.
type Program struct {
	steps []Step
	idx   int
}

// NewProgram builds a Program from an ordered list of steps.
func NewProgram(steps ...Step) *Program {
	return &Program{steps: steps}
}

// Current returns the active step and whether one remains; once every step
// has been cleared it returns the zero Step and false, meaning the rocket
// should simply coast under its current orbit.
func (p *Program) Current() (Step, bool) {
	if p.idx >= len(p.steps) {
		return Step{}, false
	}
	return p.steps[p.idx], true
}

// Advance moves to the next step.
func (p *Program) Advance() {
	if p.idx < len(p.steps) {
		p.idx++
	}
}

// Done reports whether every step has been cleared.
func (p *Program) Done() bool {
	return p.idx >= len(p.steps)
}
