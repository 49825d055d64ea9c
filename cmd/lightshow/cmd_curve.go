package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/lightshow/curve"
)

var curveFlags struct {
	points string
	step   float64
}

var curveCmd = &cobra.Command{
	Use:     "curve",
	Short:   "Print a dimming curve as a table",
	Example: `  lightshow curve --points "0:0,50:25,100:100" --step 10`,
	RunE:    runCurve,
}

func init() {
	f := curveCmd.Flags()
	f.StringVar(&curveFlags.points, "points", "", `control points as "x:y,x:y,..." in percent (empty = linear)`)
	f.Float64Var(&curveFlags.step, "step", 10, "input step in percent")
}

func runCurve(cmd *cobra.Command, _ []string) error {
	c, err := curve.Parse(curveFlags.points)
	if err != nil {
		return err
	}
	if c.Len() == 0 {
		c = curve.Linear()
	}
	if curveFlags.step <= 0 {
		return fmt.Errorf("--step must be positive, got %g", curveFlags.step)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "curve: %s\n", c)
	fmt.Fprintf(out, "%7s %7s\n", "in%", "out%")
	for x := 0.0; x < 100; x += curveFlags.step {
		fmt.Fprintf(out, "%7.1f %7.1f\n", x, c.Evaluate(x))
	}
	fmt.Fprintf(out, "%7.1f %7.1f\n", 100.0, c.Evaluate(100))
	return nil
}
