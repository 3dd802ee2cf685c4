package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/voxelspace/mgcbgen/internal/config"
	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/manifest"
	"github.com/voxelspace/mgcbgen/internal/scanner"
	"github.com/voxelspace/mgcbgen/internal/template"
	"github.com/voxelspace/mgcbgen/internal/utils"
	"github.com/voxelspace/mgcbgen/pkg/version"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	showSrc bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mgcbgen [content-root] [output]",
	Short: "Generate a MonoGame content manifest from an asset tree",
	Long: `mgcbgen walks a content directory and writes a MonoGame content-builder
manifest (.mgcb) with one build block per texture (.png) and effect (.fx).

Files with other extensions are ignored. The manifest is overwritten on
every run.`,
	Version:       version.Short(),
	Args:          cobra.MaximumNArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mgcbgen.yaml or ~/.mgcbgen/mgcbgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.PersistentFlags().StringP("root", "r", config.DefaultContentRoot, "Content root to scan")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultManifestPath, "Manifest file to write")
	rootCmd.PersistentFlags().String("order", config.DefaultOrder, "Traversal order: filesystem or lexical")
	rootCmd.PersistentFlags().String("path-mode", config.DefaultPathMode, "Relative path computation: literal or relative")
	rootCmd.PersistentFlags().Bool("atomic", false, "Write to a temporary file and rename on success")
	rootCmd.PersistentFlags().Bool("progress", false, "Show a spinner while scanning")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the manifest to stdout instead of writing it")
	templatesCmd.Flags().BoolVar(&showSrc, "source", false, "Also print each template's handlebars source")

	_ = viper.BindPFlag("content.root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("content.manifest", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("traversal.order", rootCmd.PersistentFlags().Lookup("order"))
	_ = viper.BindPFlag("traversal.path_mode", rootCmd.PersistentFlags().Lookup("path-mode"))
	_ = viper.BindPFlag("output.atomic", rootCmd.PersistentFlags().Lookup("atomic"))
	_ = viper.BindPFlag("output.progress", rootCmd.PersistentFlags().Lookup("progress"))

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Positional arguments win over flags and config
	if len(args) > 0 {
		cfg.Content.Root = args[0]
	}
	if len(args) > 1 {
		cfg.Content.Manifest = args[1]
	}

	log = newLogger(cfg, cmd.ErrOrStderr())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Interrupted, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := domain.CommonOptions{
		DryRun:   dryRun,
		Atomic:   cfg.Output.Atomic,
		Progress: cfg.Output.Progress,
	}

	if _, err := generate(ctx, cfg, opts, cmd.OutOrStdout()); err != nil {
		return describeFailure(err)
	}
	return nil
}

// describeFailure says which side of the run failed
func describeFailure(err error) error {
	switch {
	case domain.IsTraversalFailure(err):
		return fmt.Errorf("cannot scan content root: %w", err)
	case errors.Is(err, domain.ErrWriteFailed):
		return fmt.Errorf("cannot write manifest: %w", err)
	default:
		return err
	}
}

func newLogger(cfg *config.Config, w io.Writer) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  w,
		Verbose: verbose,
	})
}

// generate builds the scanner and generator from cfg and runs one pass.
// In dry-run mode the manifest goes to stdout.
func generate(ctx context.Context, cfg *config.Config, opts domain.CommonOptions, stdout io.Writer) (*manifest.Result, error) {
	if log == nil {
		log = utils.NewNopLogger()
	}

	root := utils.ExpandPath(cfg.Content.Root)
	output := utils.ExpandPath(cfg.Content.Manifest)

	src := scanner.New(scanner.Options{
		Root:     root,
		Order:    cfg.Order(),
		PathMode: cfg.PathMode(),
		Logger:   log,
	})

	genOpts := manifest.GeneratorOptions{
		Source: src,
		Table:  template.DefaultTable(),
		Output: output,
		Writer: manifest.WriterOptions{
			Atomic:  opts.Atomic,
			DryRun:  opts.DryRun,
			Preview: stdout,
		},
		Logger: log,
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = utils.NewProgressBar(-1, utils.DescScanning)
		genOpts.OnFile = func(domain.AssetFile) { _ = bar.Add(1) }
	}

	result, err := manifest.NewGenerator(genOpts).Generate(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return result, err
	}

	log.Debug().
		Interface("by_ext", result.CountByExt()).
		Int64("bytes", result.Bytes).
		Msg("Generation summary")
	return result, nil
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the supported asset extensions",
	Run: func(cmd *cobra.Command, args []string) {
		table := template.DefaultTable()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-6s %-16s %s\n", "EXT", "IMPORTER", "PROCESSOR")
		for _, ext := range table.Extensions() {
			tpl, _ := table.Lookup(ext)
			fmt.Fprintf(out, "%-6s %-16s %s\n", ext, tpl.Importer, tpl.Processor)
		}
		if !showSrc {
			return
		}
		for _, ext := range table.Extensions() {
			tpl, _ := table.Lookup(ext)
			fmt.Fprintf(out, "\n--- %s ---\n%s", ext, tpl.Source())
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the content root and output location are usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		out := cmd.OutOrStdout()
		allPassed := true

		root := utils.ExpandPath(cfg.Content.Root)
		fmt.Fprint(out, "  Content root: ")
		if err := checkContentRoot(root); err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(out, "OK (%s)\n", root)
		}

		output := utils.ExpandPath(cfg.Content.Manifest)
		fmt.Fprint(out, "  Write permissions: ")
		if checkWritePermissions(filepath.Dir(output)) {
			fmt.Fprintf(out, "OK (%s)\n", filepath.Dir(output))
		} else {
			fmt.Fprintln(out, "FAILED")
			allPassed = false
		}

		fmt.Fprintf(out, "  Config file: %s\n", configFileStatus(viper.ConfigFileUsed()))

		fmt.Fprintln(out)
		if !allPassed {
			return fmt.Errorf("some checks failed")
		}
		fmt.Fprintln(out, "All checks passed!")
		return nil
	},
}

// configFileStatus describes the config file in use, or where one would be
// picked up from when none is
func configFileStatus(used string) string {
	if used != "" && utils.Exists(used) {
		return fmt.Sprintf("OK (%s)", used)
	}
	return fmt.Sprintf("none (using defaults; create ./%s.yaml or %s)", config.ConfigName, config.ConfigFilePath())
}

// checkContentRoot reports why root cannot be scanned, if it cannot
func checkContentRoot(root string) error {
	if !utils.Exists(root) {
		return domain.ErrContentRootNotFound
	}
	if !utils.IsDir(root) {
		return domain.ErrContentRootNotDir
	}
	return nil
}

// checkWritePermissions checks if a file can be created in dir
func checkWritePermissions(dir string) bool {
	f, err := os.CreateTemp(dir, ".mgcbgen_test_write-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
