// Command unicoredec decodes a Unicore-style binary telemetry stream, read
// from a file or a live serial port, and reports each decoded observation
// epoch and ephemeris to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	serial "github.com/tarm/goserial"

	"github.com/unicorecomm/gnssdecode/gnss"
	"github.com/unicorecomm/gnssdecode/satref"
)

var (
	optString string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "unicoredec",
		Short: "Decode a Unicore-style GNSS telemetry stream",
	}
	rootCmd.PersistentFlags().StringVarP(&optString, "opt", "o", "", "receiver options string (-EPHALL -GL1P ...)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace-level logging")

	rootCmd.AddCommand(fileCmd(), serialCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "unicoredec: %v\n", err)
		os.Exit(1)
	}
}

func fileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <path>",
		Short: "Decode a captured telemetry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return run(newDecoder(), f)
		},
	}
}

func serialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serial <device> <baud>",
		Short: "Decode a live telemetry stream from a serial port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baud, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid baud rate %q: %w", args[1], err)
			}
			port, err := serial.OpenPort(&serial.Config{Name: args[0], Baud: baud})
			if err != nil {
				return err
			}
			defer port.Close()
			return run(newDecoder(), port)
		},
	}
}

func newDecoder() *gnss.Decoder {
	nav := gnss.NewNav()
	reg := satref.NewRegistry()
	waves := satref.NewWavelengthTable(reg)
	ura := satref.URAIndexer{}
	d := gnss.NewDecoder(gnss.ParseOptions(optString), nav, reg, waves, ura)
	if verbose {
		d.Log.SetOutput(os.Stderr)
		d.Log.SetLevel(logrus.TraceLevel)
	}
	return d
}

func run(d *gnss.Decoder, r io.Reader) error {
	for {
		stat := d.InputFile(r)
		switch stat {
		case gnss.StatEOF:
			return nil
		case gnss.StatError:
			d.Log.Warn("frame error, resyncing")
		case gnss.StatObs:
			fmt.Printf("obs epoch: %d satellites, msg=%s\n", len(d.Obs.Data), d.MsgType)
		case gnss.StatEphem:
			fmt.Printf("ephemeris updated, msg=%s\n", d.MsgType)
		}
	}
}
