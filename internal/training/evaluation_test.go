package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  EvaluationPolicy
		wantErr bool
	}{
		{
			name:   "valid cross-validation",
			policy: CrossValidation(5, 2),
		},
		{
			name:   "single repeat cross-validation",
			policy: CrossValidation(2, 1),
		},
		{
			name:    "too few splits",
			policy:  CrossValidation(1, 1),
			wantErr: true,
		},
		{
			name:    "zero repeats",
			policy:  CrossValidation(5, 0),
			wantErr: true,
		},
		{
			name:   "valid held-out split",
			policy: HeldOutSplit(0.2),
		},
		{
			name:    "zero test fraction",
			policy:  HeldOutSplit(0),
			wantErr: true,
		},
		{
			name:    "full test fraction",
			policy:  HeldOutSplit(1),
			wantErr: true,
		},
		{
			name:    "unknown method",
			policy:  EvaluationPolicy{Method: "bootstrap"},
			wantErr: true,
		},
		{
			name:    "zero value policy",
			policy:  EvaluationPolicy{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
