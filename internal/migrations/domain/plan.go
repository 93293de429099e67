package domain

import "fmt"

// ValidatePlan checks that steps can run in declared order: names are set and
// unique, and every step reference points strictly backwards. It reports the
// first violation in declaration order.
func ValidatePlan(steps []Step) error {
	declared := make(map[string]struct{}, len(steps))

	for i, step := range steps {
		if step.Name == "" {
			return fmt.Errorf("%w: step #%d has no name", ErrInvalidPlan, i+1)
		}
		if _, dup := declared[step.Name]; dup {
			return fmt.Errorf("%w: step '%s' is declared twice", ErrInvalidPlan, step.Name)
		}

		if err := checkRefs(step, step.Args, declared); err != nil {
			return err
		}

		for _, action := range step.PostActions {
			if action.Method == "" {
				return fmt.Errorf("%w: step '%s' has a wiring call without a method", ErrInvalidPlan, step.Name)
			}
			if err := checkRefs(step, append([]Arg{action.Target}, action.Args...), declared); err != nil {
				return err
			}
		}

		for _, field := range step.AuxFields() {
			if err := checkRefs(step, []Arg{step.Aux[field]}, declared); err != nil {
				return err
			}
		}

		declared[step.Name] = struct{}{}
	}

	return nil
}

func checkRefs(step Step, args []Arg, declared map[string]struct{}) error {
	for _, arg := range args {
		for _, ref := range arg.StepRefs() {
			if _, ok := declared[ref]; ok {
				continue
			}

			reason := "step is not declared earlier in the plan"
			if ref == step.Name {
				reason = "step references itself, use self"
			}
			return &UnresolvedReferenceError{Step: step.Name, Reference: "ref(" + ref + ")", Reason: reason}
		}
	}

	return nil
}
