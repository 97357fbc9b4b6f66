package opt_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop"
	"jobShop/internal/jobshop/jobshoptest"
	"jobShop/internal/opt"
)

type stub struct {
	res opt.Result
	err error
}

func (s stub) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	return s.res, s.err
}

func TestSolveWithDeadline(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	sched := jobshoptest.RequireValid(t, jobshoptest.AAA1Optimal(t, inst))

	got, err := opt.SolveWithDeadline(stub{res: opt.Result{Schedule: sched}}, inst, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 11, got.Makespan())

	_, err = opt.SolveWithDeadline(stub{}, inst, 0)
	assert.ErrorIs(t, err, opt.ErrNoSolution)

	boom := errors.New("boom")
	_, err = opt.SolveWithDeadline(stub{err: boom}, inst, 0)
	assert.ErrorIs(t, err, boom)
}

func TestInitialOrder(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	sched := jobshoptest.RequireValid(t, jobshoptest.AAA1Suboptimal(t, inst))

	// a base that reports only a schedule gets its order rebuilt
	order, s, err := opt.InitialOrder(context.Background(), stub{res: opt.Result{Schedule: sched}}, inst)
	require.NoError(t, err)
	assert.True(t, order.Equal(jobshoptest.AAA1Suboptimal(t, inst)))
	assert.Equal(t, 12, s.Makespan())

	_, _, err = opt.InitialOrder(context.Background(), stub{}, inst)
	assert.ErrorIs(t, err, opt.ErrNoSolution)

	_, _, err = opt.InitialOrder(context.Background(), nil, inst)
	assert.Error(t, err)
}

func TestResult_Stopped(t *testing.T) {
	assert.Equal(t, opt.StopDeadline, opt.Result{Meta: map[string]any{"stopped": opt.StopDeadline}}.Stopped())
	assert.Empty(t, opt.Result{}.Stopped())
}
