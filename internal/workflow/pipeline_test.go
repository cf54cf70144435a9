package workflow

import (
	"errors"
	"testing"
)

func TestPipeline_ExecutesInOrder(t *testing.T) {
	var order []string
	p := NewPipeline().
		AddStage("first", func() error { order = append(order, "first"); return nil }).
		AddStage("second", func() error { order = append(order, "second"); return nil })

	if err := p.Execute(); err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v, want [first second]", order)
	}
}

func TestPipeline_StopsOnFirstError(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	p := NewPipeline().
		AddStage("first", func() error { ran = append(ran, "first"); return boom }).
		AddStage("second", func() error { ran = append(ran, "second"); return nil })

	err := p.Execute()
	if err == nil {
		t.Fatal("Execute() = nil, want error")
	}
	if len(ran) != 1 {
		t.Fatalf("ran = %v, want only [first]", ran)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != "first" {
		t.Fatalf("error = %v, want *StageError for stage first", err)
	}
	if !errors.Is(err, boom) {
		t.Fatal("errors.Is(err, boom) = false, want true")
	}
}
