// File: cmd/root.go
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"srcpress/pkg/logging"
	"srcpress/pkg/merge"
	"srcpress/pkg/version"
)

var (
	// Output
	outputFile    string
	copyClipboard bool

	// Filtering
	ignoreFile      string
	excludePatterns []string

	// Transformation
	compressOutput bool
	keepComments   bool
	addDirective   bool
	addTree        bool

	// Processing
	workerCount  int
	showProgress bool

	// Token counting
	countTokens    bool
	tokenizerType  string
	tokenizerModel string

	debugMode bool
	cfgFile   string
)

// rootLogger is injected by Execute; runRoot swaps it for a development
// logger when --debug is set.
var rootLogger *zap.Logger

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "srcpress [PATHS...]",
	Short: "srcpress merges a source tree into a single compressed text file",
	Long: `srcpress walks one or more directories (or shallow-clones git URLs),
filters out binary, oversized, hidden, and ignored files, strips the
whitespace and comments the grammar allows, and writes every surviving
file into one annotated text file suitable for large language model
context windows.`,
	Version:      version.Get().Version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command with the given context and logger.
func Execute(ctx context.Context, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	rootLogger = logger
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/srcpress/config.toml)")

	// Output
	RootCmd.Flags().StringVarP(&outputFile, "output", "o", merge.DefaultOutput, `Destination file, or "-" for stdout`)
	viper.BindPFlag("output", RootCmd.Flags().Lookup("output"))
	RootCmd.Flags().BoolVarP(&copyClipboard, "clipboard", "c", false, "Copy the merged output to the clipboard instead of a file")
	viper.BindPFlag("clipboard", RootCmd.Flags().Lookup("clipboard"))

	// Filtering
	RootCmd.Flags().StringVarP(&ignoreFile, "ignore-file", "i", "", "Ignore pattern file (default is <first path>/"+merge.DefaultIgnoreName+")")
	viper.BindPFlag("ignore_file", RootCmd.Flags().Lookup("ignore-file"))
	RootCmd.Flags().StringArrayVarP(&excludePatterns, "exclude", "e", nil, "Additional exclusion pattern (repeatable, e.g. -e '*.log' -e 'build/*')")
	viper.BindPFlag("exclude", RootCmd.Flags().Lookup("exclude"))

	// Transformation
	RootCmd.Flags().BoolVarP(&compressOutput, "compress", "z", true, "Strip redundant whitespace and comments")
	viper.BindPFlag("compress", RootCmd.Flags().Lookup("compress"))
	RootCmd.Flags().BoolVar(&keepComments, "keep-comments", false, "Keep comments when compressing")
	viper.BindPFlag("keep_comments", RootCmd.Flags().Lookup("keep-comments"))
	RootCmd.Flags().BoolVar(&addDirective, "directive", false, "Prefix the output with an instruction block for LLM consumers")
	viper.BindPFlag("directive", RootCmd.Flags().Lookup("directive"))
	RootCmd.Flags().BoolVar(&addTree, "tree", false, "Prefix the output with a tree of the included files")
	viper.BindPFlag("tree", RootCmd.Flags().Lookup("tree"))

	// Processing
	RootCmd.Flags().IntVarP(&workerCount, "workers", "j", 0, "Number of transform workers (0 for one per CPU)")
	viper.BindPFlag("workers", RootCmd.Flags().Lookup("workers"))
	RootCmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar on stderr")
	viper.BindPFlag("progress", RootCmd.Flags().Lookup("progress"))

	// Token counting
	RootCmd.Flags().BoolVar(&countTokens, "tokens", false, "Estimate the token count of the merged output")
	viper.BindPFlag("tokens", RootCmd.Flags().Lookup("tokens"))
	RootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer backend: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", RootCmd.Flags().Lookup("tokenizer"))
	RootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	viper.BindPFlag("model", RootCmd.Flags().Lookup("model"))

	RootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	viper.BindPFlag("debug", RootCmd.Flags().Lookup("debug"))
}

// initConfig reads the config file and SRCPRESS_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "srcpress"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("SRCPRESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := rootLogger
	if viper.GetBool("debug") {
		if err := logging.Setup(true, "srcpress", version.Version); err == nil {
			logger = logging.Logger
		}
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	resolved, cleanup, err := merge.ResolvePaths(paths, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := &merge.Config{
		Paths:        resolved,
		Output:       viper.GetString("output"),
		Clipboard:    viper.GetBool("clipboard"),
		IgnoreFile:   viper.GetString("ignore_file"),
		Patterns:     viper.GetStringSlice("exclude"),
		Compress:     viper.GetBool("compress"),
		KeepComments: viper.GetBool("keep_comments"),
		Directive:    viper.GetBool("directive"),
		Tree:         viper.GetBool("tree"),
		Workers:      viper.GetInt("workers"),
		Progress:     viper.GetBool("progress") && term.IsTerminal(int(os.Stderr.Fd())),
		Tokens:       viper.GetBool("tokens"),
		Tokenizer:    viper.GetString("tokenizer"),
		Model:        viper.GetString("model"),
	}

	sink, capture, dest, closeSink, err := openSink(cfg)
	if err != nil {
		return err
	}

	session, runErr := merge.Run(cmd.Context(), cfg, sink, logger)
	if err := closeSink(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("interrupted: %w", runErr)
		}
		return runErr
	}

	if cfg.Clipboard {
		if err := clipboard.WriteAll(capture.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}

	if cfg.Tokens && capture != nil {
		countOutputTokens(session, cfg, capture.String(), logger)
	}

	merge.Report(os.Stderr, session, dest)
	return nil
}

// openSink resolves the output destination: a capture buffer for clipboard
// mode, stdout for "-", otherwise a freshly created file. The capture
// buffer is also filled when token counting needs the final text. A
// destination file that cannot be created fails the run before any work
// starts.
func openSink(cfg *merge.Config) (io.Writer, *bytes.Buffer, string, func() error, error) {
	noClose := func() error { return nil }

	if cfg.Clipboard {
		var buf bytes.Buffer
		return &buf, &buf, "clipboard", noClose, nil
	}

	var sink io.Writer
	var dest string
	closeSink := noClose

	if cfg.Output == "-" {
		sink = os.Stdout
		dest = "stdout"
	} else {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, nil, "", nil, fmt.Errorf("failed to create output file %s: %w", cfg.Output, err)
		}
		sink = f
		dest = cfg.Output
		closeSink = f.Close
	}

	if cfg.Tokens {
		var buf bytes.Buffer
		return io.MultiWriter(sink, &buf), &buf, dest, closeSink, nil
	}
	return sink, nil, dest, closeSink, nil
}

// countOutputTokens estimates the token count of the merged text and
// stores it on the session. Tokenizer failures degrade to a warning; the
// merge itself already succeeded.
func countOutputTokens(session *merge.Session, cfg *merge.Config, text string, logger *zap.Logger) {
	tok, err := merge.NewTokenizer(cfg.Tokenizer, cfg.Model)
	if err != nil {
		logger.Warn("Failed to initialize tokenizer", zap.Error(err))
		return
	}
	n, err := tok.Count(text)
	if err != nil {
		logger.Warn("Token counting failed", zap.Error(err))
		return
	}
	session.Tokens = n
	session.TokensBy = tok.Name()
}
