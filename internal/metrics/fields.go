package metrics

// Metric attribute keys shared by every instrument.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrStage    = "stage"
	AttrOutcome  = "outcome"
)

// Outcome values for stage and season sync instruments.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
