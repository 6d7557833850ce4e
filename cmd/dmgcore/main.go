// Command dmgcore loads a Game Boy ROM image, runs the CPU core against
// it for a bounded number of instructions (or until a fatal decode
// fault), and prints the final register state.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dmgcore/cpu"
	"dmgcore/internal/inspector"
	"dmgcore/mbc"
	"dmgcore/mem"
)

func main() {
	var (
		ipsPath  string
		steps    int
		traceOut string
		inspect  bool
	)

	rootCmd := &cobra.Command{
		Use:   "dmgcore [rom]",
		Short: "Run a Game Boy ROM against the dmgcore CPU/MBC/bus emulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading rom: %w", err)
			}

			if ipsPath != "" {
				patch, err := os.ReadFile(ipsPath)
				if err != nil {
					return fmt.Errorf("reading ips patch: %w", err)
				}
				rom, err = mbc.ApplyIPS(rom, patch)
				if err != nil {
					return fmt.Errorf("applying ips patch: %w", err)
				}
			}

			cart, err := mbc.Parse(rom)
			if err != nil {
				return fmt.Errorf("parsing cartridge: %w", err)
			}
			if err := cart.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: cartridge failed validation: %v\n", err)
			}
			fmt.Printf("loaded %q (%s, %d ROM bank(s), %d RAM bank(s))\n",
				cart.Title, cart.Kind, cart.ROMBanks, cart.RAMBanks)

			bus := mem.NewBus()
			bus.Cartridge = cart
			c := cpu.New()

			if inspect {
				return inspector.Run(context.Background(), c, bus)
			}

			runErr := c.Run(bus, steps)

			printState(c)
			if traceOut != "" {
				if err := writeSnapshot(traceOut, c); err != nil {
					return fmt.Errorf("writing trace-out: %w", err)
				}
			}
			return runErr
		},
	}

	rootCmd.Flags().StringVar(&ipsPath, "ips", "", "optional IPS patch to apply before parsing the ROM")
	rootCmd.Flags().IntVar(&steps, "steps", 10000, "maximum number of instructions to execute (0 = unbounded)")
	rootCmd.Flags().StringVar(&traceOut, "trace-out", "", "write a YAML register snapshot to this path after running")
	rootCmd.Flags().BoolVar(&inspect, "inspect", false, "run the interactive single-step inspector instead of free-running")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printState(c *cpu.Cpu) {
	r := c.Registers
	fmt.Printf("PC=%04X SP=%04X A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X IME=%v halted=%v\n",
		c.PC, c.SP, r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, c.IME, c.Halted)
}

// snapshot is the shape written by --trace-out: just enough to diff a
// run's final state across two sessions.
type snapshot struct {
	PC, SP           uint16
	A, F, B, C, D, E byte
	H, L             byte
	IME, Halted      bool
}

func writeSnapshot(path string, c *cpu.Cpu) error {
	r := c.Registers
	s := snapshot{
		PC: c.PC, SP: c.SP,
		A: r.A, F: r.F, B: r.B, C: r.C, D: r.D, E: r.E, H: r.H, L: r.L,
		IME: c.IME, Halted: c.Halted,
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
