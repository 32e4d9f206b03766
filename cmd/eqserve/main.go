// Command eqserve runs the equalizer engine behind a JSON HTTP API.
//
// Signals are uploaded (or generated) into sessions; clients then
// request spectra, apply band layouts, and fetch the processed result.
// Band layouts can be saved to and loaded from a preset directory.
//
// Examples:
//
//	eqserve
//	eqserve --addr :9000 --preset-dir /var/lib/eq/presets
//	eqserve --remote http://dsp-farm.local/process
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-eq/internal/server"
	"github.com/cwbudde/algo-eq/remote"
)

type cli struct {
	Addr      string `default:":8080" help:"Listen address."`
	PresetDir string `default:"presets" help:"Directory for saved band layouts."`
	Remote    string `help:"Delegate processing to this service URL, falling back to local on failure."`
	MaxUpload int64  `default:"67108864" help:"Maximum upload size in bytes."`
}

func main() {
	args := &cli{}
	kong.Parse(args,
		kong.Name("eqserve"),
		kong.Description("HTTP API for the band equalizer engine."),
		kong.UsageOnError(),
	)

	logger := log.New(log.Writer(), "eqserve: ", log.LstdFlags)
	opts := []server.Option{
		server.WithPresetDir(args.PresetDir),
		server.WithMaxUploadBytes(args.MaxUpload),
		server.WithLogger(func(format string, a ...any) {
			logger.Printf(format, a...)
		}),
	}
	if args.Remote != "" {
		opts = append(opts, server.WithProcessor(remote.NewClient(args.Remote)))
	}

	srv := &http.Server{
		Addr:         args.Addr,
		Handler:      server.New(opts...).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Printf("listening on %s", args.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
}
