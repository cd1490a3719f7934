// Package wizard implements the multi-step form controller used by the
// registration workflows: a single integer current step, a per-step
// synchronous validation gate, and payload assembly on the final step.
package wizard

import (
	"errors"
	"fmt"
)

// SummaryMessage is the single aggregate error shown alongside the
// field-level errors when a step gate rejects the transition.
const SummaryMessage = "Please correct the highlighted fields before continuing"

// ErrStepOutOfRange is returned when jumping to a step that is not yet
// reachable or does not exist.
var ErrStepOutOfRange = errors.New("step out of range")

// FieldErrors maps field names to validation messages. An empty map means
// the step passed its gate.
type FieldErrors map[string]string

// StepValidator validates the accumulated fields for one step.
type StepValidator func(fields map[string]interface{}) FieldErrors

// Definition describes a wizard: one validator per step, in order.
type Definition struct {
	Steps []StepValidator
}

// Draft is the transient state of one in-progress wizard. It lives only in
// the in-memory draft store for the duration of the flow and is fully
// discarded on successful submission or expiry; it is never partially
// persisted mid-wizard.
type Draft struct {
	ID           string
	Fields       map[string]interface{}
	SummaryError string
	Step         int
	Completed    int

	def *Definition
}

// NewDraft starts a draft at step 1 with no accumulated fields.
func (d *Definition) NewDraft(id string) *Draft {
	return &Draft{
		ID:     id,
		Fields: make(map[string]interface{}),
		Step:   1,
		def:    d,
	}
}

// StepCount returns N, the number of steps.
func (d *Definition) StepCount() int {
	return len(d.Steps)
}

// Merge folds submitted field values into the accumulated form state.
func (dr *Draft) Merge(fields map[string]interface{}) {
	for k, v := range fields {
		dr.Fields[k] = v
	}
}

// Next runs the validation gate for the current step. If the validator
// reports any error the transition is aborted: the step stays put and the
// errors are returned together with the summary message. Otherwise the draft
// advances one step. Next on the final step validates without advancing,
// which is the submission gate.
func (dr *Draft) Next() FieldErrors {
	validate := dr.def.Steps[dr.Step-1]
	if errs := validate(dr.Fields); len(errs) > 0 {
		dr.SummaryError = SummaryMessage
		return errs
	}

	dr.SummaryError = ""
	if dr.Step > dr.Completed {
		dr.Completed = dr.Step
	}
	if dr.Step < dr.def.StepCount() {
		dr.Step++
	}
	return nil
}

// Previous moves one step back. Always allowed (step never drops below 1)
// and clears the summary error.
func (dr *Draft) Previous() {
	dr.SummaryError = ""
	if dr.Step > 1 {
		dr.Step--
	}
}

// Jump moves directly to a previously completed step (or the one right after
// the last completed step). Jumping forward past the current frontier is not
// allowed.
func (dr *Draft) Jump(step int) error {
	if step < 1 || step > dr.def.StepCount() {
		return ErrStepOutOfRange
	}
	if step > dr.Completed+1 {
		return fmt.Errorf("%w: step %d not yet reachable", ErrStepOutOfRange, step)
	}
	dr.SummaryError = ""
	dr.Step = step
	return nil
}

// OnFinalStep reports whether the draft sits on the last step.
func (dr *Draft) OnFinalStep() bool {
	return dr.Step == dr.def.StepCount()
}

// Finalize validates every step against the accumulated state, gating the
// final submission. The draft is left untouched on failure so the user
// keeps all entered data.
func (dr *Draft) Finalize() FieldErrors {
	for _, validate := range dr.def.Steps {
		if errs := validate(dr.Fields); len(errs) > 0 {
			dr.SummaryError = SummaryMessage
			return errs
		}
	}
	dr.SummaryError = ""
	return nil
}

// String returns a string field from the accumulated state, or "".
func (dr *Draft) String(key string) string {
	if v, ok := dr.Fields[key].(string); ok {
		return v
	}
	return ""
}

// Int returns an integer field from the accumulated state, accepting the
// float64 values JSON decoding produces.
func (dr *Draft) Int(key string) int {
	switch v := dr.Fields[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
