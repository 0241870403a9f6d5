package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/config"
	"github.com/loftworks/birail/export"
	"github.com/loftworks/birail/loft"
)

type buildOpts struct {
	output    string
	format    string
	smoothing int
}

func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [job]",
		Short: "Run a loft job and write the result",
		Long: `Run a loft job file (.toml, .yaml or .yml) and write the surface as
Wavefront OBJ or binary STL, or the placed cross-sections as JSON.`,
		Example: `  birail build ring.toml -o ring.obj
  birail build ring.yaml -o ring.stl --smoothing 4
  birail build ring.toml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("smoothing") {
				opts.smoothing = -1
			}
			return runBuild(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: obj, stl, json (default: from output extension, else obj)")
	cmd.Flags().IntVar(&opts.smoothing, "smoothing", 0, "smoothing iterations, overriding the job")

	return cmd
}

func runBuild(ctx context.Context, jobPath string, opts buildOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	job, res, err := runJob(ctx, jobPath, opts.smoothing)
	if err != nil {
		return err
	}

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	name := job.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
	}

	switch format {
	case "obj":
		err = export.WriteOBJ(w, name, res.Mesh)
	case "stl":
		err = export.WriteSTL(w, name, res.Mesh)
	case "json":
		err = export.WriteProfilesJSON(w, res.Profiles, res.Mesh.CyclicU)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		logger.Infof("Wrote %s", opts.output)
	}
	return nil
}

// runJob loads and runs a loft job. smoothing overrides the job's value
// unless it is negative.
func runJob(ctx context.Context, jobPath string, smoothing int) (*config.Job, *loft.Result, error) {
	logger := loggerFromContext(ctx)

	job, err := config.Load(jobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load job: %w", err)
	}

	lopts, err := job.Options()
	if err != nil {
		return nil, nil, err
	}
	if smoothing >= 0 {
		lopts.Smoothing = smoothing
	}

	railA, railB, profiles, err := job.Curves()
	if err != nil {
		return nil, nil, err
	}

	prog := newProgress(logger)
	res, err := loft.BiRail(railA, railB, profiles, lopts)
	if err != nil {
		return nil, nil, err
	}
	prog.done(fmt.Sprintf("Lofted %d x %d grid", res.Mesh.Rows, res.Mesh.Cols))

	for _, w := range res.Warnings {
		logger.Warn(birail.UserMessage(w))
	}

	return job, res, nil
}

func outputFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = "obj"
		}
	}

	switch format {
	case "obj", "stl", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: want obj, stl or json", format)
	}
}
