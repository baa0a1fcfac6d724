package parse

import (
	"errors"
	"fmt"

	"github.com/JordiGD/Project-Grammar/derivation"
)

// Outcome classifies how a parse ended.
type Outcome int

const (
	// Rejected means the search finished within its bounds without finding
	// a derivation.
	Rejected Outcome = iota
	// Accepted means Result.Tree derives the input.
	Accepted
	// LimitExceeded means the search was aborted by its step or depth bound.
	LimitExceeded
	// Inconsistent means the parser produced a tree that does not derive
	// the input. It always indicates a bug.
	Inconsistent
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case LimitExceeded:
		return "limit exceeded"
	case Inconsistent:
		return "internal inconsistency"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the outcome of one Parse call.
type Result struct {
	Outcome Outcome
	// Tree is set only when the input was accepted.
	Tree    *derivation.Tree
	Message string
	// Steps counts recursive calls for context-free parses and consumed
	// tokens for regular ones.
	Steps  int
	Tokens []string

	err error
}

// Accepted reports whether the input belongs to the language.
func (r Result) Accepted() bool {
	return r.Outcome == Accepted
}

// Err returns nil for accepted input and otherwise one of ErrRejected,
// *LimitError or *ConsistencyError.
func (r Result) Err() error {
	return r.err
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s", r.Outcome, r.Message)
}

// ErrRejected is the error of a Result whose input is not in the language.
var ErrRejected = errors.New("input rejected")

// Bound names the resource bound a LimitError hit.
type Bound string

const (
	StepBound  Bound = "steps"
	DepthBound Bound = "depth"
)

// LimitError reports that a context-free search was aborted.
type LimitError struct {
	Bound Bound
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("parse aborted: maximum %s (%d) exceeded; the grammar may be ambiguous or infinitely recursive", e.Bound, e.Limit)
}

// ConsistencyError reports that an accepted tree does not yield the input.
type ConsistencyError struct {
	Got  string
	Want string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("internal error: derivation yields %q but input is %q", e.Got, e.Want)
}
