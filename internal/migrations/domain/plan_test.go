package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name       string
		steps      []Step
		wantRefErr *UnresolvedReferenceError
		wantPlan   bool
	}{
		{
			name: "backward references",
			steps: []Step{
				Deploy("TokenX"),
				Deploy("Bridge", Env("approver"), Ref("TokenX")).
					Then("setAllowedChains", Literal([]int{97, 42}), Literal(true)),
				Deploy("Pool").ThenOn(Ref("Bridge"), "setPool", Self()),
			},
		},
		{
			name: "forward reference in args",
			steps: []Step{
				Deploy("Bridge", Ref("TokenX")),
				Deploy("TokenX"),
			},
			wantRefErr: &UnresolvedReferenceError{Step: "Bridge", Reference: "ref(TokenX)"},
		},
		{
			name: "forward reference in wiring target",
			steps: []Step{
				Deploy("WhiteList").ThenOn(Ref("LaunchPad"), "setWhiteList", Self()),
				Deploy("LaunchPad"),
			},
			wantRefErr: &UnresolvedReferenceError{Step: "WhiteList", Reference: "ref(LaunchPad)"},
		},
		{
			name: "forward reference nested in a list",
			steps: []Step{
				Deploy("Registry").Then("register", List(Ref("A"), Ref("B"))),
				Deploy("A"),
			},
			wantRefErr: &UnresolvedReferenceError{Step: "Registry", Reference: "ref(A)"},
		},
		{
			name: "forward reference in aux",
			steps: []Step{
				Deploy("NerdBridge").WithAux("nerdaddress", Ref("SampleERC20")),
			},
			wantRefErr: &UnresolvedReferenceError{Step: "NerdBridge", Reference: "ref(SampleERC20)"},
		},
		{
			name:       "self reference by name",
			steps:      []Step{Deploy("Loop", Ref("Loop"))},
			wantRefErr: &UnresolvedReferenceError{Step: "Loop", Reference: "ref(Loop)"},
		},
		{
			name:     "duplicate step",
			steps:    []Step{Deploy("A"), Deploy("A")},
			wantPlan: true,
		},
		{
			name:     "missing name",
			steps:    []Step{Deploy("")},
			wantPlan: true,
		},
		{
			name:     "wiring call without method",
			steps:    []Step{Deploy("A").Then("")},
			wantPlan: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlan(tt.steps)

			switch {
			case tt.wantRefErr != nil:
				var refErr *UnresolvedReferenceError
				require.True(t, errors.As(err, &refErr), "got %v", err)
				assert.Equal(t, tt.wantRefErr.Step, refErr.Step)
				assert.Equal(t, tt.wantRefErr.Reference, refErr.Reference)
			case tt.wantPlan:
				require.ErrorIs(t, err, ErrInvalidPlan)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestStepBuildersDoNotShareState(t *testing.T) {
	base := Deploy("LaunchPad").Then("setA")
	first := base.Then("setB")
	second := base.Then("setC")

	require.Len(t, base.PostActions, 1)
	assert.Equal(t, "setB", first.PostActions[1].Method)
	assert.Equal(t, "setC", second.PostActions[1].Method)

	withAux := base.WithAux("k", Literal("v"))
	assert.Nil(t, base.Aux)
	assert.Len(t, withAux.Aux, 1)
}

func TestStepString(t *testing.T) {
	step := Deploy("NerdBridge", Env("approver"), Ref("SampleERC20")).
		Then("setAllowedChains", Literal([]int{97, 42}), Literal(true))

	assert.Equal(t, "NerdBridge(env(approver), ref(SampleERC20))", step.String())
	assert.Equal(t, "self.setAllowedChains([97 42], true)", step.PostActions[0].String())
}

func TestDeployAs(t *testing.T) {
	step := DeployAs("NerdSampleERC20", "SampleERC20", Literal("N3RD-SAMPLE"))

	assert.Equal(t, "SampleERC20", step.ArtifactName())
	assert.Equal(t, "NerdSampleERC20=SampleERC20(N3RD-SAMPLE)", step.String())
	assert.Equal(t, "SampleERC20", Deploy("SampleERC20").ArtifactName())
}

func TestArgUsesSelf(t *testing.T) {
	assert.True(t, Self().UsesSelf())
	assert.True(t, List(Ref("A"), Self()).UsesSelf())
	assert.False(t, List(Ref("A"), Env("approver")).UsesSelf())
	assert.False(t, Deployed("Brainz").UsesSelf())
}
