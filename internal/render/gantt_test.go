package render_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobShop/internal/jobshop/jobshoptest"
	"jobShop/internal/render"
)

func TestGantt_AAA1Optimal(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	s := jobshoptest.RequireValid(t, jobshoptest.AAA1Optimal(t, inst))

	var buf bytes.Buffer
	require.NoError(t, render.Gantt(&buf, s, render.Options{}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "m0 |00011......|", lines[0])
	assert.Equal(t, "m1 |11.000.....|", lines[1])
	assert.Equal(t, "m2 |.....111100|", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "11"))
}

func TestGantt_Scaled(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	s := jobshoptest.RequireValid(t, jobshoptest.AAA1Optimal(t, inst))

	var buf bytes.Buffer
	require.NoError(t, render.Gantt(&buf, s, render.Options{Width: 6}))
	out := buf.String()
	assert.Contains(t, out, "m0 |001...|")
	assert.Contains(t, out, "(1 cell = 2)")
}

func TestGantt_Color(t *testing.T) {
	inst := jobshoptest.FT06(t)
	s := jobshoptest.RequireValid(t, jobshoptest.RandomOrder(inst, rand.New(rand.NewSource(3))))

	var buf bytes.Buffer
	require.NoError(t, render.Gantt(&buf, s, render.Options{Color: true, Width: 40}))
	assert.Equal(t, inst.Machines+1, strings.Count(buf.String(), "\n"))
}

func TestCriticalPath(t *testing.T) {
	inst := jobshoptest.AAA1(t)
	s := jobshoptest.RequireValid(t, jobshoptest.AAA1Optimal(t, inst))
	assert.Equal(t, "(0,0) -> (1,1) -> (1,2) -> (0,2)", render.CriticalPath(s))
}
