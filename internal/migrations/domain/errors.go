package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan marks step declarations that can never run, such as
// duplicate or empty step names.
var ErrInvalidPlan = errors.New("invalid plan")

type (
	// UnresolvedReferenceError is raised before any chain call when an
	// argument names a step that has not been deployed yet, or an
	// environment value the run does not have.
	UnresolvedReferenceError struct {
		Step      string
		Reference string
		Reason    string
	}

	// DeploymentFailure means the chain deployer rejected or failed to
	// confirm the step's deployment.
	DeploymentFailure struct {
		Step  string
		Cause error
	}

	// WiringFailure means a post-deploy call failed. Contracts may be
	// partially wired at this point.
	WiringFailure struct {
		Step   string
		Action string
		Cause  error
	}

	// PersistenceFailure means a record could not be written. It never
	// aborts a run.
	PersistenceFailure struct {
		Step  string
		Key   string
		Cause error
	}
)

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("step '%s': unresolved reference %s: %s", e.Step, e.Reference, e.Reason)
}

func (e *DeploymentFailure) Error() string {
	return fmt.Sprintf("step '%s': deployment failed: %v", e.Step, e.Cause)
}

func (e *DeploymentFailure) Unwrap() error {
	return e.Cause
}

func (e *WiringFailure) Error() string {
	return fmt.Sprintf("step '%s': wiring call %s failed: %v", e.Step, e.Action, e.Cause)
}

func (e *WiringFailure) Unwrap() error {
	return e.Cause
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("step '%s': failed to persist record %s: %v", e.Step, e.Key, e.Cause)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Cause
}
