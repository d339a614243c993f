package analyte

// Status is the qualitative safety classification of a reading.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusDanger
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusDanger:
		return "Danger"
	default:
		return "Unknown"
	}
}

// Interpretation is a qualitative classification with a display label.
type Interpretation struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
}

// Classify maps a concentration to a safety classification using fixed
// per-analyte thresholds. Boundaries are inclusive on the upper end of
// each band.
func Classify(k Kind, value float64) Interpretation {
	switch k {
	case PH:
		return classifyPH(value)
	case Ammonia, Nitrite:
		return classifyToxin(value)
	default:
		return Interpretation{Status: StatusUnknown, Label: "Unknown analyte"}
	}
}

func classifyPH(value float64) Interpretation {
	switch {
	case value < 6.5:
		return Interpretation{Status: StatusDanger, Label: "Dangerously acidic"}
	case value < 6.8:
		return Interpretation{Status: StatusWarning, Label: "Slightly acidic"}
	case value <= 7.4:
		return Interpretation{Status: StatusOK, Label: "Healthy range"}
	case value <= 7.6:
		return Interpretation{Status: StatusWarning, Label: "Slightly alkaline"}
	default:
		return Interpretation{Status: StatusDanger, Label: "Dangerously alkaline"}
	}
}

// Ammonia and nitrite share a rule set: anything above trace levels
// stresses livestock, above 1 ppm is acutely toxic.
func classifyToxin(value float64) Interpretation {
	switch {
	case value <= 0:
		return Interpretation{Status: StatusOK, Label: "None detected"}
	case value <= 0.25:
		return Interpretation{Status: StatusOK, Label: "Trace"}
	case value <= 0.5:
		return Interpretation{Status: StatusWarning, Label: "Elevated"}
	case value <= 1.0:
		return Interpretation{Status: StatusWarning, Label: "Stress levels"}
	default:
		return Interpretation{Status: StatusDanger, Label: "Toxic"}
	}
}
