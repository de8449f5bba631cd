package som

// RestraintFunc calculates learning rate based on current step
// and overall steps number. The value indicates how much neurons weights
// will change at corresponding step.
type RestraintFunc interface {
	// step => [1, steps]
	Apply(step, steps int) float64
}

// InfluenceFunc calculates the coefficient which indicates how much
// the weights of each neuron will be changed according to the BMU position.
type InfluenceFunc interface {
	// step => [1, steps]
	Apply(bmu Coord, step, steps, row, col int) float64
}

// RadiusFunc is implemented by influence functions with a hard neighbourhood border.
type RadiusFunc interface {
	Radius(step, steps int) int
}

func fractionLeft(step, steps int) float64 {
	return 1 - float64(step)/float64(steps)
}

// LinearRestraintFunc decays the rate linearly: MaxRate * (1 - step/steps).
type LinearRestraintFunc struct {
	MaxRate float64
}

func (lr *LinearRestraintFunc) Apply(step, steps int) float64 {
	return fractionLeft(step, steps) * lr.MaxRate
}

// ManhattanCutoffInfluenceFunc influences with weight 1 every neuron whose
// Manhattan distance to the BMU does not exceed the current radius, and
// nothing outside of it. The radius shrinks linearly from RangeMax to 0.
type ManhattanCutoffInfluenceFunc struct {
	RangeMax int
}

func (mc *ManhattanCutoffInfluenceFunc) Radius(step, steps int) int {
	return int(fractionLeft(step, steps) * float64(mc.RangeMax))
}

func (mc *ManhattanCutoffInfluenceFunc) Apply(bmu Coord, step, steps, row, col int) float64 {
	if Manhattan(bmu.Row, bmu.Col, row, col) > mc.Radius(step, steps) {
		return 0
	}
	return 1
}
