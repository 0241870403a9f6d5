package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [job]",
		Short: "Print the resolved stations of a loft job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func runInspect(ctx context.Context, jobPath string, out io.Writer) error {
	_, res, err := runJob(ctx, jobPath, -1)
	if err != nil {
		return err
	}

	mesh := res.Mesh
	fmt.Fprintf(out, "grid: %d stations x %d profile points, %d quads\n", mesh.Rows, mesh.Cols, len(mesh.Quads))
	fmt.Fprintf(out, "cyclic: sweep=%t profile=%t\n", mesh.CyclicU, mesh.CyclicV)
	fmt.Fprintf(out, "warnings: %d\n\n", len(res.Warnings))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATION\tGAP\tSPAN\tWIDTH\tTILT\tDEGENERATE")
	for _, st := range res.Stations {
		fmt.Fprintf(tw, "%d\t%.4g\t%.4g\t%.4g\t%.4g\t%t\n",
			st.Index, st.Gap, st.SpanScale, st.WidthScale, st.Tilt*180/math.Pi, st.Degenerate)
	}

	return tw.Flush()
}
