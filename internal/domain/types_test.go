package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxDims(t *testing.T) {
	br, bc, ok := BoxDims(6)
	require.True(t, ok)
	require.Equal(t, 2, br)
	require.Equal(t, 3, bc)

	br, bc, ok = BoxDims(9)
	require.True(t, ok)
	require.Equal(t, 3, br)
	require.Equal(t, 3, bc)

	_, _, ok = BoxDims(4)
	require.False(t, ok)
	_, _, ok = BoxDims(12)
	require.False(t, ok)
}

func TestGridCloneIsDeep(t *testing.T) {
	g := NewGrid(6)
	g[2][3] = 5
	c := g.Clone()
	c[2][3] = 1
	require.Equal(t, 5, g[2][3])
}

func TestModeTable(t *testing.T) {
	require.Equal(t, 6, ModeEasy.Size())
	require.Equal(t, 18, ModeEasy.TargetClues())
	require.Equal(t, 9, ModeNormal.Size())
	require.Equal(t, 30, ModeNormal.TargetClues())
	require.False(t, Mode("expert").Valid())
}

func TestGridCounts(t *testing.T) {
	g := NewGrid(6)
	require.Equal(t, 36, g.Empties())
	require.Equal(t, 0, g.Clues())
	g[0][0] = 1
	g[5][5] = 6
	require.Equal(t, 34, g.Empties())
	require.Equal(t, 2, g.Clues())
}
