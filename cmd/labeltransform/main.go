// Command labeltransform builds and inspects label transform artifacts.
//
// Usage:
//
//	labeltransform build   -config transform.yaml -store ./models -name species
//	labeltransform inspect -store ./models -name species [-version 3] [-dump]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hupe1980/labeltransform"
	"github.com/hupe1980/labeltransform/artifact"
	"github.com/hupe1980/labeltransform/blobstore"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "labeltransform:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: labeltransform <build|inspect> [flags]")
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return errors.New("missing command")
	}

	switch args[0] {
	case "build":
		return runBuild(ctx, args[1:], stdout)
	case "inspect":
		return runInspect(ctx, args[1:], stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseCompression(s string) (artifact.Compression, error) {
	switch strings.ToLower(s) {
	case "none":
		return artifact.CompressionNone, nil
	case "lz4":
		return artifact.CompressionLZ4, nil
	case "zstd":
		return artifact.CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

func runBuild(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "configuration file (.yaml, .yml or .json)")
	storeDir := fs.String("store", "./models", "model store directory")
	name := fs.String("name", "", "model name")
	compression := fs.String("compression", "zstd", "artifact compression: none, lz4 or zstd")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *name == "" {
		return errors.New("build: -config and -name are required")
	}

	comp, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	cfg, err := labeltransform.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	t, err := labeltransform.New(cfg, labeltransform.WithLogLevel(level))
	if err != nil {
		return err
	}
	model, err := t.Configured()
	if err != nil {
		return fmt.Errorf("build: %w (the configuration has no label_encoder)", err)
	}
	if !model.NeedRun() {
		fmt.Fprintln(stdout, "note: need_run is false; pipelines will skip this stage")
	}

	store := artifact.NewStore(blobstore.NewLocalStore(*storeDir), artifact.WithCompression(comp))
	version, err := model.Save(ctx, store, *name)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "saved %s version %d (%d labels)\n", *name, version, model.Encoder().Len())
	return nil
}

func runInspect(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stdout)
	storeDir := fs.String("store", "./models", "model store directory")
	name := fs.String("name", "", "model name")
	version := fs.Uint64("version", 0, "version to inspect (0 for current)")
	dump := fs.Bool("dump", false, "dump the raw bundle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("inspect: -name is required")
	}

	store := artifact.NewStore(blobstore.NewLocalStore(*storeDir))

	v := *version
	if v == 0 {
		var err error
		if v, err = store.Current(ctx, *name); err != nil {
			return err
		}
	}
	b, err := store.LoadVersion(ctx, *name, v)
	if err != nil {
		return err
	}

	if *dump {
		cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		cfg.Fdump(stdout, b)
		return nil
	}

	model, err := labeltransform.Load(b)
	if err != nil {
		return err
	}

	versions, err := store.Versions(ctx, *name)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetTitle("Model")
	t.AppendRows([]table.Row{
		{"Name", *name},
		{"Version", fmt.Sprintf("%d of %d", v, len(versions))},
		{"Need Run", model.NeedRun()},
		{"Labels", model.Encoder().Len()},
		{"Dense Ids", model.Encoder().Dense()},
	})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetTitle("Label Encoder")
	t.AppendHeader(table.Row{"Label", "Type", "Id", "Type"})
	for _, p := range model.Encoder().Pairs() {
		t.AppendRow(table.Row{p.Key.String(), p.Key.Tag(), p.Value.String(), p.Value.Tag()})
	}
	t.Render()
	return nil
}
