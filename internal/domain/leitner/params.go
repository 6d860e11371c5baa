package leitner

// Params defines all configurable parameters for the Leitner box algorithm.
type Params struct {
	// BoxIntervals maps each box to its review interval in days. A word
	// promoted into box N comes due again after BoxIntervals[N] days.
	BoxIntervals map[int]int

	// WrongIntervalDays is how soon a word comes back after an incorrect
	// answer, regardless of box.
	WrongIntervalDays int

	// DifficultThreshold is the lifetime wrong count at and above which a
	// word is flagged DIFFICULT.
	DifficultThreshold int

	// MasteredBox is the lowest box considered mastered.
	MasteredBox int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance.
type ParamsConfig struct {
	BoxIntervals       map[int]int
	WrongIntervalDays  int
	DifficultThreshold int
	MasteredBox        int
}

// NewDefaultParams creates a new Params instance with the standard
// five-box schedule: 1, 3, 7, 14 and 30 days.
func NewDefaultParams() *Params {
	return &Params{
		BoxIntervals: map[int]int{
			1: 1,
			2: 3,
			3: 7,
			4: 14,
			5: 30,
		},
		WrongIntervalDays:  1,
		DifficultThreshold: 3,
		MasteredBox:        4,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.BoxIntervals) > 0 {
		for box, days := range config.BoxIntervals {
			if box >= 1 && box <= 5 && days > 0 {
				params.BoxIntervals[box] = days
			}
		}
	}

	if config.WrongIntervalDays > 0 {
		params.WrongIntervalDays = config.WrongIntervalDays
	}

	if config.DifficultThreshold > 0 {
		params.DifficultThreshold = config.DifficultThreshold
	}

	if config.MasteredBox > 0 {
		params.MasteredBox = config.MasteredBox
	}

	return params
}
