package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	sentsplit "github.com/jamesainslie/go-sentsplit"
	"github.com/jamesainslie/go-sentsplit/internal/config"
	"github.com/jamesainslie/go-sentsplit/internal/frame"
)

// formatLines prints one segment per line with no terminating record.
const formatLines = "lines"

var errNoText = errors.New("no text provided")

type splitOptions struct {
	maxLength int
	format    string
	normalize bool
}

// NewSplitCmd creates the split command
func NewSplitCmd(root *rootOptions) *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split [text...]",
		Short: "Split text from arguments or stdin",
		Long: `Split text once and print the segments.

Arguments are joined with single spaces. With no arguments the text is
read from standard input. Output is one segment per line by default, or
the same framed records the HTTP endpoint streams with --format ndjson or
--format protobuf.`,
		Example: `  sentsplit split "First sentence. Second, shorter clause"
  cat article.txt | sentsplit split --max-length 128 --format ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd, func(c *config.Config) {
				if cmd.Flags().Changed("max-length") {
					c.MaxSegmentLength = opts.maxLength
				}
				if cmd.Flags().Changed("normalize") {
					c.NormalizeInput = opts.normalize
				}
			})
			if err != nil {
				return err
			}

			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if n := utf8.RuneCountInString(text); n > cfg.MaxInputLength {
				return fmt.Errorf("text has %d characters, maximum is %d", n, cfg.MaxInputLength)
			}
			if cfg.NormalizeInput {
				text = norm.NFC.String(text)
			}

			splitter, err := sentsplit.New(
				sentsplit.WithMaxLength(cfg.MaxSegmentLength),
				sentsplit.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			return writeSegments(cmd.OutOrStdout(), splitter, text, opts.format)
		},
	}

	cmd.Flags().IntVarP(&opts.maxLength, "max-length", "m", 0, "Maximum segment length in characters")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatLines, "Output format: lines, ndjson or protobuf")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "Apply Unicode NFC normalization before splitting")

	return cmd
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if text == "" {
		return "", errNoText
	}
	return text, nil
}

func writeSegments(w io.Writer, s *sentsplit.Splitter, text, format string) error {
	if format == formatLines {
		for seg := range s.All(text) {
			if _, err := fmt.Fprintln(w, seg.Text); err != nil {
				return err
			}
		}
		return nil
	}

	f, err := frame.ParseFormat(format)
	if err != nil {
		return err
	}

	enc := frame.NewEncoder(f, w)
	for seg := range s.All(text) {
		if err := enc.Encode(frame.Record{Text: seg.Text}); err != nil {
			return err
		}
	}
	return enc.Encode(frame.Done())
}
