package render

// Pipeline stage names used in render errors.
const (
	StageParse      = "parse"
	StagePreprocess = "preprocess"
	StageTranspile  = "transpile"
	StageEvaluate   = "evaluate"
	StageEmit       = "emit"
)

// Error wraps any failure of the rendering pipeline together with the stage
// that produced it, so callers can distinguish author mistakes (parse,
// transpile, evaluate) from internal ones.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return "render " + e.Stage + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) *Error {
	return &Error{Stage: stage, Err: err}
}
