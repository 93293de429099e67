package domain

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// Step deploys one contract and then runs its wiring calls in order.
	Step struct {
		Name string
		// Artifact is the compiled contract the step deploys. Empty means Name.
		Artifact    string
		Args        []Arg
		PostActions []PostAction
		// Aux fields are resolved once the step is deployed and stored next
		// to the address in the step's record.
		Aux map[string]Arg
	}

	// PostAction calls Method on the contract that Target resolves to.
	PostAction struct {
		Target Arg
		Method string
		Args   []Arg
	}
)

// Deploy declares a step with the given constructor arguments.
func Deploy(name string, args ...Arg) Step {
	return Step{Name: name, Args: args}
}

// DeployAs declares a step named name that deploys the artifact contract.
// Records are keyed by name, so one artifact can back several steps.
func DeployAs(name, artifact string, args ...Arg) Step {
	return Step{Name: name, Artifact: artifact, Args: args}
}

// ArtifactName returns the compiled contract the step deploys.
func (s Step) ArtifactName() string {
	if s.Artifact == "" {
		return s.Name
	}
	return s.Artifact
}

// Then appends a wiring call on the step's own contract.
func (s Step) Then(method string, args ...Arg) Step {
	return s.ThenOn(Self(), method, args...)
}

// ThenOn appends a wiring call on another contract.
func (s Step) ThenOn(target Arg, method string, args ...Arg) Step {
	actions := make([]PostAction, len(s.PostActions), len(s.PostActions)+1)
	copy(actions, s.PostActions)
	s.PostActions = append(actions, PostAction{Target: target, Method: method, Args: args})
	return s
}

// WithAux records an extra field next to the step's address.
func (s Step) WithAux(field string, value Arg) Step {
	aux := make(map[string]Arg, len(s.Aux)+1)
	for k, v := range s.Aux {
		aux[k] = v
	}
	aux[field] = value
	s.Aux = aux
	return s
}

// AuxFields returns the aux field names in a stable order.
func (s Step) AuxFields() []string {
	fields := make([]string, 0, len(s.Aux))
	for field := range s.Aux {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func (p PostAction) String() string {
	args := make([]string, 0, len(p.Args))
	for _, arg := range p.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s.%s(%s)", p.Target, p.Method, strings.Join(args, ", "))
}

func (s Step) String() string {
	args := make([]string, 0, len(s.Args))
	for _, arg := range s.Args {
		args = append(args, arg.String())
	}
	if s.ArtifactName() != s.Name {
		return fmt.Sprintf("%s=%s(%s)", s.Name, s.Artifact, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(args, ", "))
}
