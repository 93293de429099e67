package domain

import (
	"fmt"
	"strings"
)

type ArgKind int

const (
	ArgLiteral ArgKind = iota
	ArgRef
	ArgOverride
	ArgEnv
	ArgDeployed
	ArgSender
	ArgSelf
	ArgList
)

// Arg is a constructor argument, a wiring call argument or a wiring call
// target. It stays symbolic until the orchestrator resolves it against the
// addresses deployed so far and the network context.
type Arg struct {
	Kind  ArgKind
	Value any
	Name  string
	Items []Arg
}

// Literal passes v through unchanged.
func Literal(v any) Arg {
	return Arg{Kind: ArgLiteral, Value: v}
}

// Ref is the address of a step declared earlier in the same plan.
func Ref(step string) Arg {
	return Arg{Kind: ArgRef, Name: step}
}

// Override looks table up by the current network id.
func Override(table string) Arg {
	return Arg{Kind: ArgOverride, Name: table}
}

// Env is a value supplied by the invocation environment, such as the approver address.
func Env(key string) Arg {
	return Arg{Kind: ArgEnv, Name: key}
}

// Deployed is the recorded address of a contract deployed to the same
// network by an earlier migration run.
func Deployed(contract string) Arg {
	return Arg{Kind: ArgDeployed, Name: contract}
}

// Sender is the account the run signs with.
func Sender() Arg {
	return Arg{Kind: ArgSender}
}

// Self is the contract deployed by the enclosing step. Only meaningful as a
// wiring target, a wiring argument or an aux field.
func Self() Arg {
	return Arg{Kind: ArgSelf}
}

// List resolves every item and yields them as a []any.
func List(items ...Arg) Arg {
	return Arg{Kind: ArgList, Items: items}
}

// StepRefs returns the names of the steps this argument depends on, in order.
func (a Arg) StepRefs() []string {
	switch a.Kind {
	case ArgRef:
		return []string{a.Name}
	case ArgList:
		var refs []string
		for _, item := range a.Items {
			refs = append(refs, item.StepRefs()...)
		}
		return refs
	default:
		return nil
	}
}

// UsesSelf reports whether resolving the argument needs the step's own contract.
func (a Arg) UsesSelf() bool {
	switch a.Kind {
	case ArgSelf:
		return true
	case ArgList:
		for _, item := range a.Items {
			if item.UsesSelf() {
				return true
			}
		}
	}
	return false
}

func (a Arg) String() string {
	switch a.Kind {
	case ArgLiteral:
		return fmt.Sprintf("%v", a.Value)
	case ArgRef:
		return "ref(" + a.Name + ")"
	case ArgOverride:
		return "override(" + a.Name + ")"
	case ArgEnv:
		return "env(" + a.Name + ")"
	case ArgDeployed:
		return "deployed(" + a.Name + ")"
	case ArgSender:
		return "sender"
	case ArgSelf:
		return "self"
	case ArgList:
		items := make([]string, 0, len(a.Items))
		for _, item := range a.Items {
			items = append(items, item.String())
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprintf("arg(%d)", a.Kind)
	}
}
