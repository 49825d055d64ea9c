package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/lightshow"
	"github.com/gogpu/lightshow/capture"
)

var recordFlags struct {
	show    string
	frames  int
	pattern string
	out     string
}

var recordCmd = &cobra.Command{
	Use:     "record",
	Short:   "Record a test pattern to a CBOR capture",
	Example: `  lightshow record --show show.toml --frames 120 --pattern rainbow --out show.cbor`,
	RunE:    runRecord,
}

func init() {
	f := recordCmd.Flags()
	f.StringVar(&recordFlags.show, "show", "", "show file (.toml, .yaml)")
	f.IntVar(&recordFlags.frames, "frames", 120, "number of frames")
	f.StringVar(&recordFlags.pattern, "pattern", "chase", "test pattern (chase, rainbow, fade)")
	f.StringVarP(&recordFlags.out, "out", "o", "show.cbor", "output capture")

	_ = recordCmd.MarkFlagRequired("show")
}

func runRecord(cmd *cobra.Command, _ []string) (err error) {
	rig, err := loadRig(recordFlags.show)
	if err != nil {
		return err
	}
	p, err := producer(rig, recordFlags.pattern)
	if err != nil {
		return err
	}

	f, err := os.Create(recordFlags.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	rec := capture.NewRecorder(f)
	for n := range recordFlags.frames {
		if err := rec.Record(uint64(n), p.Frame(n)); err != nil {
			return err
		}
	}
	lightshow.Logger().Info("record: capture written",
		"path", recordFlags.out, "frames", rec.Count(), "pattern", recordFlags.pattern)
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %d frames to %s\n", rec.Count(), recordFlags.out)
	return nil
}
