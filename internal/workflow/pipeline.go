// Package workflow runs a small sequence of named stages in order, one
// after another on the calling goroutine: no goroutine pools, no
// channels, no retries. The geometry service's resync is the only
// caller.
package workflow

// StageFunc is one unit of work in a pipeline. It takes no arguments; a
// stage runs only if every stage before it returned nil.
type StageFunc func() error

// PipelineStage names a unit of work for logging/diagnostics.
type PipelineStage struct {
	Name string
	Run  StageFunc
}

// Pipeline is an ordered list of stages executed sequentially; the first
// error stops execution and is returned.
type Pipeline struct {
	stages []PipelineStage
}

// NewPipeline returns a pipeline with no stages.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddStage appends a named stage to the pipeline.
func (p *Pipeline) AddStage(name string, run StageFunc) *Pipeline {
	p.stages = append(p.stages, PipelineStage{Name: name, Run: run})
	return p
}

// Execute runs every stage in order, stopping at the first error.
func (p *Pipeline) Execute() error {
	for _, stage := range p.stages {
		if err := stage.Run(); err != nil {
			return &StageError{Stage: stage.Name, Err: err}
		}
	}
	return nil
}

// StageError identifies which stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return "workflow: stage " + e.Stage + " failed: " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
