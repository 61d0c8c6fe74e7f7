package encoder

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/encgen/pkg/isa"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()

	p, err := NewPipeline(DefaultOptions())
	require.NoError(t, err)
	return p
}

// A mix of encodable and rejected instructions
func batch() []*isa.Descriptor {
	descriptors := []*isa.Descriptor{addri(), movti16()}

	thumb := addri()
	thumb.Name = "tADDi8"

	pseudo := addri()
	pseudo.Name = "PHI"
	pseudo.Namespace = "TargetOpcode"

	broken := descriptor("MOVr", "Rd:5", []isa.Argument{out("Rd")}, nil, map[string]int{"Rd": 4})

	quad := descriptor("VADDq", "0", nil, []isa.Argument{in("Qn", "QPR")}, nil)

	descriptors = append(descriptors, thumb, pseudo, broken, quad)

	for i := range 20 {
		d := addri()
		d.Name = fmt.Sprintf("ADDri%v", i)
		d.Template[28] = isa.Constant{Bit: uint8(i % 2)}
		descriptors = append(descriptors, d)
	}

	return descriptors
}

func TestProcess(t *testing.T) {
	result := newPipeline(t).Process(addri())

	require.True(t, result.Ok())
	assert.Len(t, result.Operands, 3)
	assert.Equal(t, uint32(0xe2800000), result.Plan.Constant)
	assert.Equal(t, "ADDri", result.Encoder.Name)
}

func TestProcess_RejectionHasNoEncoder(t *testing.T) {
	d := descriptor("MOVr", "Rd:5", []isa.Argument{out("Rd")}, nil, map[string]int{"Rd": 4})

	result := newPipeline(t).Process(d)

	assert.False(t, result.Ok())
	assert.Nil(t, result.Encoder)
	assert.Nil(t, result.Plan)
	assert.Equal(t, Reason_WidthMismatch, result.Rejection.Reason)
	assert.Same(t, d, result.Descriptor)
}

func TestProcess_ExcludedNeverResolved(t *testing.T) {
	// the template would be a width mismatch if it ever reached the resolver
	d := descriptor("tMOVr", "Rd:5", []isa.Argument{out("Rd")}, nil, map[string]int{"Rd": 4})

	result := newPipeline(t).Process(d)

	assert.Equal(t, Reason_UnsupportedNamePrefix, result.Rejection.Reason)
	assert.Nil(t, result.Operands)
}

func TestProcess_Idempotent(t *testing.T) {
	p := newPipeline(t)

	first := p.Process(movti16())
	second := p.Process(movti16())

	if diff := cmp.Diff(first.Plan, second.Plan); diff != "" {
		t.Errorf("plans differ (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(first.Encoder, second.Encoder); diff != "" {
		t.Errorf("encoders differ (-first +second):\n%s", diff)
	}
}

func TestRun_KeepsInputOrder(t *testing.T) {
	descriptors := batch()

	results, err := newPipeline(t).Run(context.Background(), descriptors, 1)
	require.NoError(t, err)
	require.Len(t, results, len(descriptors))

	for i := range results {
		assert.Same(t, descriptors[i], results[i].Descriptor)
	}
}

func TestRun_ParallelEqualsSequential(t *testing.T) {
	p := newPipeline(t)
	descriptors := batch()

	sequential, err := p.Run(context.Background(), descriptors, 1)
	require.NoError(t, err)

	for _, jobs := range []int{2, 4, 64} {
		t.Run(fmt.Sprintf("jobs=%v", jobs), func(t *testing.T) {
			parallel, err := p.Run(context.Background(), descriptors, jobs)
			require.NoError(t, err)

			if diff := cmp.Diff(sequential, parallel); diff != "" {
				t.Errorf("results differ (-sequential +parallel):\n%s", diff)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, jobs := range []int{1, 4} {
		_, err := newPipeline(t).Run(ctx, batch(), jobs)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRun_Empty(t *testing.T) {
	results, err := newPipeline(t).Run(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewPipeline_InvalidFilter(t *testing.T) {
	opts := DefaultOptions()
	opts.Filter.Exclude = []string{"[a-"}

	_, err := NewPipeline(opts)
	assert.Error(t, err)
}
