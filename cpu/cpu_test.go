package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmgcore/mbc"
	"dmgcore/mem"
)

// loadProgram places program at addr inside a blank ROM-only cartridge and
// inserts that cartridge into bus. Bus writes into 0x0000-0x7FFF go to the
// cartridge's control registers, so a program cannot be stored there by
// writing it through the bus.
func loadProgram(bus *mem.Bus, addr uint16, program []byte) {
	rom := make([]byte, 0x8000)
	copy(rom[addr:], program)
	bus.Cartridge = &mbc.Cartridge{Kind: mbc.RomOnly, MBC: mbc.New(mbc.RomOnly, rom, 0)}
}

func runToHalt(t *testing.T, c *Cpu, bus *mem.Bus, maxSteps int) {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if c.Halted {
			return
		}
		require.NoError(t, c.Step(bus))
	}
	t.Fatalf("program did not halt within %d steps", maxSteps)
}

// TestMultiplicationByRepeatedAddition mirrors the classic smoke-test
// program: A is built up by adding C a total of B times, using a
// decrement-and-branch loop. 2 * 4 = 8.
func TestMultiplicationByRepeatedAddition(t *testing.T) {
	bus := mem.NewBus()
	program := []byte{
		0x3E, 0x00, // ld A, 0
		0x0E, 0x02, // ld C, 2
		0x06, 0x04, // ld B, 4
		// loop, at 0x0006:
		0x81,             // add A, C
		0x05,             // dec B
		0xC2, 0x06, 0x00, // jp nz, 0x0006
		0x76, // halt
	}
	loadProgram(bus, 0x0000, program)

	c := New()
	runToHalt(t, c, bus, 1000)

	assert.Equal(t, byte(0x08), c.A)
}

// TestDivisionByRepeatedSubtraction divides 16 by 4 via repeated
// subtraction, counting how many times the subtraction succeeds.
func TestDivisionByRepeatedSubtraction(t *testing.T) {
	bus := mem.NewBus()
	program := []byte{
		0x3E, 0x10, // ld A, 16   ; dividend
		0x06, 0x04, // ld B, 4    ; divisor
		0x0E, 0x00, // ld C, 0    ; quotient
		// loop:
		0x90,       // sub A, B
		0x0C,       // inc C
		0xFE, 0x00, // cp A, 0
		0x20, 0xFA, // jr nz, loop (-6)
		0x76, // halt
	}
	loadProgram(bus, 0x0000, program)

	c := New()
	runToHalt(t, c, bus, 1000)

	assert.Equal(t, byte(0x04), c.C)
	assert.Equal(t, byte(0x00), c.A)
}

func TestPushPopRoundTrip(t *testing.T) {
	bus := mem.NewBus()
	c := New()
	c.SP = 0xFFFE
	c.SetBC(0x1234)

	c.push16(bus, c.BC())
	c.SetBC(0)
	c.SetBC(c.pop16(bus))

	assert.Equal(t, uint16(0x1234), c.BC())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestCallAndReturn(t *testing.T) {
	bus := mem.NewBus()
	program := []byte{
		0xCD, 0x06, 0x00, // call 0x0006
		0x76,       // halt (return target)
		0x00, 0x00, // padding so the subroutine starts at 0x0006
		0x3C, // inc A
		0xC9, // ret
	}
	loadProgram(bus, 0x0000, program)

	c := New()
	c.SP = 0xFFFE
	runToHalt(t, c, bus, 1000)

	assert.Equal(t, byte(0x01), c.A)
}

func TestUndefinedOpcodeIsFatal(t *testing.T) {
	bus := mem.NewBus()
	loadProgram(bus, 0x0000, []byte{0xD3})

	c := New()
	err := c.Step(bus)
	assert.Error(t, err)
}

func TestEIIsDeferredByOneInstruction(t *testing.T) {
	bus := mem.NewBus()
	loadProgram(bus, 0x0000, []byte{0xFB, 0x00, 0x00}) // ei, nop, nop

	c := New()
	// ei: OpRead, then Exec (sets pendingEI, IME still false)
	require.NoError(t, c.Step(bus))
	require.NoError(t, c.Step(bus))
	assert.False(t, c.IME)

	// nop: OpRead, then Exec (IME becomes true only now)
	require.NoError(t, c.Step(bus))
	require.NoError(t, c.Step(bus))
	assert.True(t, c.IME)
}

// TestJRZChargesCyclesByBranchOutcome is spec.md's own boundary example:
// a conditional JR Z charges 12 cycles when the branch is taken and 8
// when it isn't.
func TestJRZChargesCyclesByBranchOutcome(t *testing.T) {
	program := []byte{0x28, 0x02, 0x00, 0x00} // jr z, 2

	notTaken := func() int {
		bus := mem.NewBus()
		loadProgram(bus, 0x0000, program)
		c := New()
		var charged int
		c.SetCycleSink(func(n int) { charged = n })
		require.NoError(t, c.Step(bus)) // OpRead
		require.NoError(t, c.Step(bus)) // DataReadByte
		require.NoError(t, c.Step(bus)) // Exec
		return charged
	}()
	assert.Equal(t, 8, notTaken)

	taken := func() int {
		bus := mem.NewBus()
		loadProgram(bus, 0x0000, program)
		c := New()
		c.SetZero(true)
		var charged int
		c.SetCycleSink(func(n int) { charged = n })
		require.NoError(t, c.Step(bus))
		require.NoError(t, c.Step(bus))
		require.NoError(t, c.Step(bus))
		return charged
	}()
	assert.Equal(t, 12, taken)
}

// TestUnconditionalInstructionAlwaysChargesMaxCycles covers the common
// case: an instruction whose Min and Max agree always reports that
// fixed count regardless of c.branchTaken's stale value.
func TestUnconditionalInstructionAlwaysChargesMaxCycles(t *testing.T) {
	bus := mem.NewBus()
	loadProgram(bus, 0x0000, []byte{0x00}) // nop
	c := New()
	var charged int
	c.SetCycleSink(func(n int) { charged = n })
	require.NoError(t, c.Step(bus))
	require.NoError(t, c.Step(bus))
	assert.Equal(t, 4, charged)
}

func TestHaltStopsStepping(t *testing.T) {
	bus := mem.NewBus()
	loadProgram(bus, 0x0000, []byte{0x76, 0x3C}) // halt, inc A

	c := New()
	require.NoError(t, c.Step(bus)) // fetch halt
	require.NoError(t, c.Step(bus)) // exec halt
	assert.True(t, c.Halted)

	pc := c.PC
	require.NoError(t, c.Step(bus))
	assert.Equal(t, pc, c.PC, "halted cpu should not advance")
}
