package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/geoschema/pkg/config"
	"github.com/chazu/geoschema/pkg/format"
	"github.com/chazu/geoschema/pkg/scene"
	"github.com/chazu/geoschema/pkg/schema"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "config/export_test.json"

const exportLongDescription = `Command "export"

Load the scene named by the configuration file, resolve the configured node
and write its attributes, topology and metadata under the output directory.
--frame and --format override the configuration.
`

type rootCommand struct {
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

func (r *rootCommand) logger() *zap.SugaredLogger {
	return newLogger(r.stderr, r.verbose)
}

func newRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	root := &rootCommand{fs: fs, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "geoschema",
		Short:         "Export scene geometry into a portable attribute schema",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "print debug logs")

	cmd.AddCommand(exportCommand(root), nodesCommand(root))
	return cmd
}

func exportCommand(root *rootCommand) *cobra.Command {
	var (
		configPath string
		frame      int
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one scene node",
		Long:  exportLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger()
			defer logger.Sync() //nolint:errcheck

			cfg, err := config.Load(root.fs, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("frame") {
				cfg.Frame = &frame
			}
			if cmd.Flags().Changed("format") {
				f, err := format.Normalize(formatName)
				if err != nil {
					return err
				}
				cfg.Format = string(f)
			}
			logger.Debugw("configuration loaded", "path", configPath, "source", cfg.Source, "node", cfg.Node, "format", cfg.Format)

			sc, err := scene.Load(root.fs, cfg.Source, cfg.Frame, scene.WithLogger(logger))
			if err != nil {
				return err
			}
			node, err := sc.Node(cfg.Node)
			if err != nil {
				return err
			}

			exp := schema.NewExporter(root.fs, schema.Context{
				Source:          sc.Path(),
				Node:            cfg.Node,
				Frame:           sc.Frame(),
				ProducerVersion: "geoschema " + version,
			}, schema.WithLogger(logger))

			path, err := exp.Export(node, cfg.Output, cfg.Name, nil, cfg.Format)
			if err != nil {
				return err
			}
			fmt.Fprintf(root.stdout, "[OK] Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to the export configuration")
	cmd.Flags().IntVar(&frame, "frame", 0, "frame to export, overrides the configuration")
	cmd.Flags().StringVar(&formatName, "format", "", "ascii, npy (binary) or single, overrides the configuration")
	return cmd
}

func nodesCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes <scene>",
		Short: "List the node paths a scene defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger()
			defer logger.Sync() //nolint:errcheck

			sc, err := scene.Load(root.fs, args[0], nil, scene.WithLogger(logger))
			if err != nil {
				return err
			}
			for _, p := range sc.Paths() {
				fmt.Fprintln(root.stdout, p)
			}
			return nil
		},
	}
}
