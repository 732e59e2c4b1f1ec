// Copyright (c) 2020 Mercari, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/spf13/cobra"
	"go.mercari.io/reveng/internal"
	"go.mercari.io/reveng/loader"
	"go.mercari.io/reveng/override"
	"go.mercari.io/reveng/strategy"
)

const exampleUsage = `
  # Show the decisions for a DDL file with overrides applied
  reveng schema.sql --overrides overrides.yml

  # Include per column decisions and log every override hit
  reveng $SPANNER_PROJECT_NAME $SPANNER_INSTANCE_NAME $SPANNER_DATABASE_NAME --overrides overrides.yml --columns --verbose
`

var version string

var (
	rootOpts = internal.ArgType{}
	rootCmd  = &cobra.Command{
		Use:   "reveng (DDL_FILE | PROJECT_NAME INSTANCE_NAME DATABASE_NAME)",
		Short: "reveng shows how override files change reverse engineering decisions for a Cloud Spanner schema.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("must specify 1 or 3 arguments")
			}
			return nil
		},
		Example: strings.Trim(exampleUsage, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			processArgs(&rootOpts, args)
			return run(cmd.Context(), &rootOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionInfo(),
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setRootOpts(rootCmd, &rootOpts)
}

func setRootOpts(cmd *cobra.Command, opts *internal.ArgType) {
	cmd.Flags().StringArrayVar(&opts.OverrideFiles, "overrides", nil, "override file, may be repeated; later files win")
	cmd.Flags().StringVar(&opts.InflectionRuleFile, "inflection-rule-file", "", "custom inflection rule file")
	cmd.Flags().BoolVar(&opts.Columns, "columns", false, "print per column decisions")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every override hit")
}

func processArgs(args *internal.ArgType, argv []string) {
	if len(argv) == 3 {
		args.Project = argv[0]
		args.Instance = argv[1]
		args.Database = argv[2]
	} else {
		args.DDLFilepath = argv[0]
	}
}

func run(ctx context.Context, args *internal.ArgType) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.NewLogger(os.Stderr, args.Verbose)

	inflector, err := internal.NewInflector(args.InflectionRuleFile)
	if err != nil {
		return fmt.Errorf("load inflection rule failed: %v", err)
	}

	repo := override.New(override.WithLogger(logger))
	for _, f := range args.OverrideFiles {
		if err := repo.AddFile(f); err != nil {
			return err
		}
	}
	s := repo.Strategy(strategy.NewDefaultStrategy(inflector))

	source, cleanup, err := newSchemaSource(ctx, args)
	if err != nil {
		return fmt.Errorf("error: %v", err)
	}
	defer cleanup()

	selections, err := s.SchemaSelections()
	if err != nil {
		return err
	}
	tables, err := loader.NewTableLoader(source).LoadTables(selections)
	if err != nil {
		return fmt.Errorf("error: %v", err)
	}
	logger.Info().Int("tables", len(tables)).Msg("schema loaded")

	return writeReport(os.Stdout, s, tables, args.Columns)
}

func newSchemaSource(ctx context.Context, args *internal.ArgType) (loader.SchemaSource, func(), error) {
	if args.DDLFilepath != "" {
		source, err := loader.NewDDLSource(args.DDLFilepath)
		return source, func() {}, err
	}

	client, err := connectSpanner(ctx, args)
	if err != nil {
		return nil, nil, err
	}
	source, err := loader.NewInformationSchemaSource(ctx, client)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return source, client.Close, nil
}

func connectSpanner(ctx context.Context, args *internal.ArgType) (*spanner.Client, error) {
	databaseName := fmt.Sprintf("projects/%s/instances/%s/databases/%s",
		args.Project, args.Instance, args.Database)
	spannerClient, err := spanner.NewClient(ctx, databaseName)
	if err != nil {
		return nil, err
	}

	return spannerClient, nil
}

func versionInfo() string {
	if version != "" {
		return version
	}

	// For those who "go install" reveng
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return info.Main.Version
}
