// Command eqproc applies a band equalizer to an audio file offline.
//
// The input is either an audio file (WAV, MP3, or Ogg Vorbis) or a
// generated multi-tone test signal. Bands come from a preset file, from
// --band flags, or both; the processed result is written as a 16-bit
// mono WAV.
//
// Examples:
//
//	eqproc -i in.wav -b 100:160:1.5:Bass -o out.wav
//	eqproc --synthetic 100,1000,8000 --duration 2 -b 1000:1600:0.5 -o out.wav
//	eqproc -i in.mp3 --preset warm.json -o out.wav
//	eqproc -b 100:160:1.5 --curve 16
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-eq/band"
	"github.com/cwbudde/algo-eq/curve"
	"github.com/cwbudde/algo-eq/internal/eqio"
	"github.com/cwbudde/algo-eq/preset"
	"github.com/cwbudde/algo-eq/remote"
	"github.com/cwbudde/algo-eq/session"
)

type cli struct {
	Input     string    `short:"i" type:"existingfile" help:"Input audio file (.wav, .mp3, .ogg)."`
	Synthetic []float64 `help:"Generate a test signal from these component frequencies in Hz instead of reading a file."`
	Duration  float64   `default:"2" help:"Synthetic signal duration in seconds."`
	Rate      float64   `default:"44100" help:"Synthetic signal sample rate in Hz."`

	Preset string   `short:"p" type:"existingfile" help:"Load bands from a preset file."`
	Band   []string `short:"b" help:"Add a band as center:width:gain[:label], repeatable."`

	Output string `short:"o" help:"Write the processed signal to this WAV file."`
	Remote string `help:"Delegate processing to this service URL, falling back to local on failure."`
	Curve  int    `help:"Print the gain curve at N log-spaced points and exit."`
	Quiet  bool   `short:"q" help:"Suppress non-fatal warnings."`
}

func main() {
	args := &cli{}
	kctx := kong.Parse(args,
		kong.Name("eqproc"),
		kong.Description("Offline band equalizer for audio files."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(args))
}

func run(args *cli) error {
	warn := log.New(os.Stderr, "eqproc: ", 0)

	set := band.NewSet(band.WithClampWarning(func(w band.ClampWarning) {
		if !args.Quiet {
			warn.Println(w)
		}
	}))
	if args.Preset != "" {
		settings, err := preset.Load(args.Preset)
		if err != nil {
			return err
		}
		loaded, err := settings.Set()
		if err != nil {
			return err
		}
		for _, b := range loaded.All() {
			if _, err := set.Add(band.Spec{
				CenterFreq: band.Freq(b.CenterFreq),
				Bandwidth:  band.Width(b.Bandwidth),
				Gain:       band.Gain(b.Gain),
				Label:      band.Label(b.Label),
			}); err != nil {
				return err
			}
		}
	}
	for _, raw := range args.Band {
		spec, err := parseBand(raw)
		if err != nil {
			return err
		}
		if _, err := set.Add(spec); err != nil {
			return err
		}
	}

	if args.Curve > 0 {
		return printCurve(set.All(), args.Curve)
	}

	opts := []session.Option{}
	if !args.Quiet {
		opts = append(opts, session.WithWarning(func(msg string) {
			warn.Println(msg)
		}))
	}
	if args.Remote != "" {
		opts = append(opts, session.WithProcessor(remote.NewClient(args.Remote)))
	}

	var (
		s   *session.Session
		err error
	)
	switch {
	case args.Input != "":
		samples, rate, readErr := eqio.ReadFile(args.Input)
		if readErr != nil {
			return readErr
		}
		s, err = session.New(samples, rate, opts...)
	case len(args.Synthetic) > 0:
		s, err = session.Synthetic(args.Synthetic, args.Duration, args.Rate, opts...)
	default:
		return fmt.Errorf("either --input or --synthetic is required")
	}
	if err != nil {
		return err
	}

	out, err := s.Equalize(context.Background(), set.All())
	if err != nil {
		return err
	}

	info := s.Info()
	fmt.Printf("%d samples at %.0f Hz (%.2f s), %d bands applied\n",
		info.Samples, info.SampleRate, info.Duration, set.Len())

	if args.Output != "" {
		if err := eqio.WriteWAV(args.Output, out, info.SampleRate); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", args.Output)
	}
	return nil
}

// parseBand parses a center:width:gain[:label] flag value.
func parseBand(raw string) (band.Spec, error) {
	parts := strings.SplitN(raw, ":", 4)
	if len(parts) < 3 {
		return band.Spec{}, fmt.Errorf("band %q: want center:width:gain[:label]", raw)
	}
	vals := make([]float64, 3)
	for i, name := range []string{"center", "width", "gain"} {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return band.Spec{}, fmt.Errorf("band %q: bad %s: %w", raw, name, err)
		}
		vals[i] = v
	}
	spec := band.Spec{
		CenterFreq: band.Freq(vals[0]),
		Bandwidth:  band.Width(vals[1]),
		Gain:       band.Gain(vals[2]),
	}
	if len(parts) == 4 && parts[3] != "" {
		spec.Label = band.Label(parts[3])
	}
	return spec, nil
}

func printCurve(bands []band.Band, points int) error {
	axis := curve.LogAxis(band.MinFrequency, band.MaxFrequency, points)
	gains := curve.Synthesize(bands, axis)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "freq [Hz]\tgain\t")
	for i, f := range axis {
		fmt.Fprintf(w, "%.1f\t%.4f\t\n", f, gains[i])
	}
	return w.Flush()
}
