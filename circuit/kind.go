package circuit

import "github.com/circuitkit/mna/scalar"

// Kind tags which of the three bipole behaviors a BipoleKind carries.
type Kind int

const (
	// Resistor carries a resistance in ohms; its parameter is the
	// resistance R, not the conductance 1/R.
	Resistor Kind = iota
	// VoltageSource carries an imposed potential difference in volts.
	VoltageSource
	// CurrentSource carries an imposed current in amps, flowing from pos
	// to neg.
	CurrentSource
)

func (k Kind) String() string {
	switch k {
	case Resistor:
		return "Resistor"
	case VoltageSource:
		return "VoltageSource"
	case CurrentSource:
		return "CurrentSource"
	default:
		return "Unknown"
	}
}

// BipoleKind is the sum type {Resistor(R), VoltageSource(V), CurrentSource(I)},
// each carrying one scalar parameter.
type BipoleKind[S scalar.Numeric] struct {
	Kind  Kind
	Value S
}

// NewResistor returns a BipoleKind for a resistor of resistance r ohms.
func NewResistor[S scalar.Numeric](r S) BipoleKind[S] {
	return BipoleKind[S]{Kind: Resistor, Value: r}
}

// NewVoltageSource returns a BipoleKind for an ideal voltage source of v volts.
func NewVoltageSource[S scalar.Numeric](v S) BipoleKind[S] {
	return BipoleKind[S]{Kind: VoltageSource, Value: v}
}

// NewCurrentSource returns a BipoleKind for an ideal current source of i amps.
func NewCurrentSource[S scalar.Numeric](i S) BipoleKind[S] {
	return BipoleKind[S]{Kind: CurrentSource, Value: i}
}
