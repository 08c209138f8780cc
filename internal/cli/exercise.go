package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-report/internal/exercise"
)

func newExerciseCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Parity and minutes conversion exercises",
		// The exercises need no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parity <n>...",
		Short: "Report whether each integer is even",
		Args:  cobra.MinimumNArgs(1),
		// Negative numbers must not be read as flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			nums, err := parseInts(args)
			if err != nil {
				return err
			}
			for _, n := range nums {
				fmt.Fprintf(out, "%d: %t\n", n, exercise.IsEven(n))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "minutes <m>...",
		Short: "Convert minutes to hours and minutes",
		Args:  cobra.MinimumNArgs(1),
		// Negative numbers must not be read as flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			nums, err := parseInts(args)
			if err != nil {
				return err
			}
			for _, s := range exercise.ConvertMinutesList(nums) {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	})

	return cmd
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", a)
		}
		out = append(out, n)
	}
	return out, nil
}
