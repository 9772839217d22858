package ioshim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPort1HasBit4PullUp(t *testing.T) {
	c := Init(&Def{})
	got, err := c.Input(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b0001_0000), got)
}

func TestInitialPort0HighBitsSet(t *testing.T) {
	c := Init(&Def{IncludePort0: true})
	got, err := c.Input(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b1110_0000), got)
}

func TestPort0TrapsWhenNotIncluded(t *testing.T) {
	c := Init(&Def{})
	_, err := c.Input(0)
	assert.Error(t, err)
}

func TestUndefinedInputPortTraps(t *testing.T) {
	c := Init(&Def{})
	_, err := c.Input(7)
	var trap PortTrap
	require.ErrorAs(t, err, &trap)
	assert.Equal(t, uint8(7), trap.Port)
	assert.False(t, trap.Write)
}

func TestUndefinedOutputPortTraps(t *testing.T) {
	c := Init(&Def{})
	err := c.Output(9, 0x00)
	var trap PortTrap
	require.ErrorAs(t, err, &trap)
	assert.True(t, trap.Write)
}

func TestAcceptedButIgnoredOutputPorts(t *testing.T) {
	c := Init(&Def{})
	for _, port := range []uint8{3, 5, 6} {
		assert.NoError(t, c.Output(port, 0xFF))
	}
}

// TestShiftRegisterScenario exercises spec.md's example 5: OUT 4 0xAA;
// OUT 4 0xBB; OUT 2 4; IN 3 -> 0xBA.
func TestShiftRegisterScenario(t *testing.T) {
	c := Init(&Def{})
	require.NoError(t, c.Output(4, 0xAA))
	require.NoError(t, c.Output(4, 0xBB))
	require.NoError(t, c.Output(2, 4))
	got, err := c.Input(3)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xBA), got)
}

func TestUpdateInputMapsActionsToPorts(t *testing.T) {
	c := Init(&Def{})
	c.UpdateInput(Snapshot{
		Coin:   true,
		P1Fire: true,
		P2Left: true,
	})
	p1, err := c.Input(1)
	require.NoError(t, err)
	p2, err := c.Input(2)
	require.NoError(t, err)
	assert.Equal(t, uint8(1<<0|1<<3|1<<4), p1)
	assert.Equal(t, uint8(1<<5), p2)
}

func TestUpdateInputReleasesUnsetActions(t *testing.T) {
	c := Init(&Def{})
	c.UpdateInput(Snapshot{P1Fire: true})
	c.UpdateInput(Snapshot{})
	p1, err := c.Input(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(1<<3), p1)
}
