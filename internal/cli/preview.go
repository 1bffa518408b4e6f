package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/paper"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
)

// previewCommand creates the preview command, which renders a single
// page of a paper document.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		page    int
		format  string
		output  string
		noCache bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "preview [paper.json]",
		Short: "Render a single page of a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatSVG && format != pipeline.FormatPNG {
				return errors.New(errors.ErrCodeInvalidInput, "format must be svg or png")
			}
			opts.Formats = []string{format}
			opts.Pages = []int{page}
			return c.runPreview(cmd.Context(), args[0], opts, page, format, output, noCache)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number to render")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>-page<N>.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Estimator, "estimator", opts.Estimator, "height estimator: measure (default), analytic")
	cmd.Flags().BoolVar(&opts.Guides, "guides", false, "draw margin and column guides")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale for png output")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, page int, format, output string, noCache bool) error {
	if page < 1 {
		return errors.New(errors.ErrCodeInvalidPage, "page must be a positive integer")
	}

	doc, err := paper.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering page %d...", page))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, ok := result.Artifacts[fmt.Sprintf("%s:%d", format, page)]
	if !ok {
		return errors.New(errors.ErrCodePageNotFound,
			"page %d does not exist (document has %d pages)", page, len(result.Pages))
	}

	path := output
	if path == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		path = fmt.Sprintf("%s-page%d.%s", base, page, format)
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered page %d of %d", page, len(result.Pages))
	printFile(path)
	return nil
}
