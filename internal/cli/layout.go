package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/paper"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
)

// layoutCommand creates the layout command, which paginates a paper
// document and writes the rendered pages.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [paper.json]",
		Short: "Paginate a paper and render its pages",
		Long: `Paginate a paper document and render its pages.

The layout command takes a paper.json document, flattens it into layout
elements, distributes them across pages, and writes one artifact per page
(plus a pages.json with the full pagination result when json is among the
formats).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: directory of the input file)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats, comma-separated: svg, png, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Estimator, "estimator", opts.Estimator, "height estimator: measure (default), analytic")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.Guides, "guides", false, "draw margin and column guides")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale for png output")

	return cmd
}

// runLayout loads the document, runs the pipeline, and writes artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := paper.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Paginating document...")
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outDir := output
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := errors.ValidateOutputPath(outDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	files, err := writeArtifacts(outDir, base, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, f := range files {
		printFile(f)
	}
	printStats(result.Stats.PageCount, result.Stats.ElementCount, result.CacheInfo.PagesHit)
	printNewline()
	printNextStep("Preview a page", fmt.Sprintf("pageflow preview %s --page 1", input))

	return nil
}

// writeArtifacts writes one file per artifact and returns the paths
// in stable order. Page images are named <base>-page<N>.<format>; the
// JSON result is <base>.pages.json.
func writeArtifacts(dir, base string, artifacts map[string][]byte) ([]string, error) {
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	var files []string
	for _, name := range names {
		var filename string
		if name == pipeline.FormatJSON {
			filename = base + ".pages.json"
		} else {
			format, page, ok := strings.Cut(name, ":")
			if !ok {
				continue
			}
			filename = fmt.Sprintf("%s-page%s.%s", base, page, format)
		}
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, artifacts[name], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
