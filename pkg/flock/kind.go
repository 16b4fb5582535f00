package flock

// Kind tells plain flock members and predators apart. It is fixed at construction.
type Kind uint8

const (
	KindPlain Kind = iota
	KindPredator
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// Shape is how an entity is drawn.
type Shape uint8

const (
	ShapePoint Shape = iota // one mark
	ShapeBox                // four marks
)

// Marks is the number of surface marks a Draw call adds for this shape.
func (s Shape) Marks() int {
	if s == ShapeBox {
		return 4
	}
	return 1
}

// traits is the per-kind dispatch table: which rules run and with what weight.
type traits struct {
	cohesionWeight func(requested float64) float64
	separates      bool
	aligns         bool
	seeksNest      bool
	evades         bool
	shape          Shape
}

var kindTraits = [...]traits{
	KindPlain: {
		cohesionWeight: func(requested float64) float64 { return requested },
		separates:      true,
		aligns:         true,
		seeksNest:      true,
		evades:         true,
		shape:          ShapePoint,
	},
	// predators dive into the flock at a fixed pace and ignore everything else
	KindPredator: {
		cohesionWeight: func(float64) float64 { return PredatorCohesionWeight },
		shape:          ShapeBox,
	},
}

func (k Kind) traits() traits {
	if int(k) < len(kindTraits) {
		return kindTraits[k]
	}
	return kindTraits[KindPlain]
}
