package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/ctmlc/internal/export"
	"github.com/leapstack-labs/ctmlc/internal/fsutil"
	"github.com/leapstack-labs/ctmlc/internal/loader"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CompileOptions controls where compiled documents go.
type CompileOptions struct {
	Out    string // explicit output file, single input only
	Stdout bool
	Jobs   int

	// DryRun compiles without writing documents or species exports.
	DryRun bool
}

// compileReport is the structured form of one compiled input.
type compileReport struct {
	Input     string `json:"input" yaml:"input"`
	Dataset   string `json:"dataset" yaml:"dataset"`
	Output    string `json:"output,omitempty" yaml:"output,omitempty"`
	Export    string `json:"export,omitempty" yaml:"export,omitempty"`
	Species   int    `json:"species" yaml:"species"`
	Phases    int    `json:"phases" yaml:"phases"`
	Reactions int    `json:"reactions" yaml:"reactions"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var (
		opts  CompileOptions
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "compile <input.cti|dir>...",
		Short: "Compile input files to CTML documents",
		Long: `Compile each input file to <dataset>.xml in the output directory.

The dataset defaults to the input file stem and can be changed with the
dataset() directive. Directories are searched for *.cti files.`,
		Example: `  ctmlc compile h2o2.cti
  ctmlc compile mech/ --jobs 4 --output-dir build
  ctmlc compile gri30.cti --out gri30.xml
  ctmlc compile gri30.cti --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			if !cmd.Flags().Changed("jobs") {
				opts.Jobs = c.Cfg.Jobs
			}

			inputs, err := discover(args)
			if err != nil {
				return err
			}
			if opts.Out != "" && len(inputs) > 1 {
				return fmt.Errorf("--out requires a single input, got %d", len(inputs))
			}

			if watch {
				return runWatch(cmd.Context(), c, inputs, opts)
			}
			reports, err := runCompile(cmd.Context(), c, inputs, opts)
			if opts.Stdout {
				return err
			}
			if rerr := renderCompile(c, reports); rerr != nil && err == nil {
				err = rerr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (single input only)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print documents instead of writing files")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "Number of inputs to compile concurrently")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile inputs when they change")

	return cmd
}

func discover(args []string) ([]string, error) {
	inputs, err := loader.Discover(args)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.New("no input files found")
	}
	return inputs, nil
}

// runCompile compiles inputs with at most opts.Jobs in flight. Every input has
// its own compilation context. Reports are returned in input order for the
// inputs that succeeded; the first failure cancels the rest.
func runCompile(ctx context.Context, c *CommandContext, inputs []string, opts CompileOptions) ([]compileReport, error) {
	jobs := opts.Jobs
	if jobs < 1 || opts.Stdout {
		// documents on stdout must not interleave
		jobs = 1
	}

	results := make([]*compileReport, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, in := range inputs {
		g.Go(func() error {
			rep, err := compileOne(gctx, c, in, opts)
			if err != nil {
				return err
			}
			results[i] = rep
			return nil
		})
	}
	err := g.Wait()

	reports := make([]compileReport, 0, len(results))
	for _, r := range results {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports, err
}

func compileOne(ctx context.Context, c *CommandContext, input string, opts CompileOptions) (*compileReport, error) {
	comp, err := c.Compile(ctx, input)
	if err != nil {
		return nil, err
	}
	cc := comp.CC
	_, ns, np, nr := cc.Counts()
	rep := &compileReport{Input: input, Dataset: cc.Dataset, Species: ns, Phases: np, Reactions: nr}

	switch {
	case opts.DryRun:
		c.Logger.Info("checked", "file", input, "reactions", nr)
		return rep, nil
	case opts.Stdout:
		if err := comp.Result.Document.Write(c.Renderer.Writer()); err != nil {
			return nil, err
		}
	default:
		rep.Output = opts.Out
		if rep.Output == "" {
			rep.Output = c.resolve(cc.Dataset + ".xml")
		}
		if err := fsutil.WriteFileAtomic(rep.Output, func(w io.Writer) error {
			return comp.Result.Document.Write(w)
		}); err != nil {
			return nil, fmt.Errorf("writing %s: %w", rep.Output, err)
		}
	}

	if cc.Export != nil {
		rep.Export = c.resolve(cc.Export.File)
		if err := export.WriteSpeciesFile(rep.Export, cc.Export.Format, cc); err != nil {
			return nil, fmt.Errorf("exporting species: %w", err)
		}
	}

	c.Logger.Info("compiled", "file", input, "output", rep.Output, "reactions", nr)
	return rep, nil
}

func renderCompile(c *CommandContext, reports []compileReport) error {
	r := c.Renderer
	if ok, err := r.Structured(reports); ok {
		return err
	}
	for _, rep := range reports {
		detail := fmt.Sprintf("%s (%d species, %d reactions)", rep.Output, rep.Species, rep.Reactions)
		r.StatusLine(rep.Input, "ok", detail)
		if rep.Export != "" {
			r.Muted("  species exported to " + rep.Export)
		}
	}
	return nil
}
