package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/config"
	"jobShop/internal/jobshop/jobshoptest"
	"jobShop/internal/logger"
	"jobShop/internal/render"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c, err := config.Load("")
	require.NoError(t, err)
	c.Tabu.Iterations = 50
	c.Tabu.Tenure = 5
	c.SA.Iterations = 200
	return c
}

func TestSelectAlgorithms(t *testing.T) {
	c := testConfig(t)

	sel, err := selectAlgorithms(c, "est-spt, LRPT,Tabu,descent")
	require.NoError(t, err)
	names := make([]string, len(sel))
	for i, a := range sel {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"EST_SPT", "LRPT", "tabu", "descent"}, names)

	_, err = selectAlgorithms(c, "GA")
	assert.Error(t, err)
	_, err = selectAlgorithms(c, " , ")
	assert.Error(t, err)
}

func TestAlgorithms_SolveAAA1(t *testing.T) {
	c := testConfig(t)
	inst := jobshoptest.AAA1(t)

	want := map[string]int{
		"SPT":      12,
		"EST_SPT":  11,
		"LRPT":     11,
		"EST_LRPT": 11,
		"greedy":   11,
		"descent":  11,
		"tabu":     11,
		"sa":       11,
	}
	available := algorithms(c)
	for name, mk := range want {
		a, ok := available[name]
		require.True(t, ok, name)
		op, err := a.Factory(1)
		require.NoError(t, err, name)
		res, err := op.Solve(context.Background(), inst)
		require.NoError(t, err, name)
		assert.Equal(t, mk, res.Makespan, name)
	}
}

func TestGanttOptions_PlainWithJSONLogs(t *testing.T) {
	prev := logger.JSONOutput
	t.Cleanup(func() { logger.JSONOutput = prev })

	logger.JSONOutput = false
	assert.Equal(t, render.Options{Width: 80, Color: true}, ganttOptions(80, true))

	logger.JSONOutput = true
	assert.Equal(t, render.Options{Width: 80, Color: false}, ganttOptions(80, true))
}
