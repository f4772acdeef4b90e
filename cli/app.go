// Package cli contains the splitter command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.viam.com/splitters/logging"
)

const (
	// Global flags.
	flagConfig   = "config"
	flagDebug    = "debug"
	flagLogLevel = "log-level"

	// Split flags.
	flagLength      = "length"
	flagCSV         = "csv"
	flagHeader      = "header"
	flagFracTrain   = "frac-train"
	flagFracValid   = "frac-valid"
	flagFracTest    = "frac-test"
	flagSeed        = "seed"
	flagOutputDir   = "output-dir"
	flagLabelColumn = "label-column"
	flagJSON        = "json"
)

func splitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  flagLength,
			Usage: "number of items to split when no dataset file is given",
		},
		&cli.StringFlag{
			Name:  flagCSV,
			Usage: "split the rows of the CSV `FILE`",
		},
		&cli.BoolFlag{
			Name:  flagHeader,
			Usage: "treat the first CSV row as a header",
		},
		&cli.Float64Flag{
			Name:  flagFracTrain,
			Usage: "fraction of items used for training (default 0.8)",
		},
		&cli.Float64Flag{
			Name:  flagFracValid,
			Usage: "fraction of items used for validation (default 0.1)",
		},
		&cli.Float64Flag{
			Name:  flagFracTest,
			Usage: "fraction of items used for testing (default 0.1)",
		},
		&cli.Int64Flag{
			Name:  flagSeed,
			Usage: "seed for a reproducible split",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "splitter",
		Usage:           "split datasets into training, validation and test subsets",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load split configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "log `LEVEL` (debug, info, warn or error) for messages written to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logging.GlobalLogLevel.SetLevel(zapcore.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "split",
				Usage:     "print the indices of each subset as JSON",
				UsageText: "splitter split (--length N | --csv FILE) [--seed S] [--output-dir DIR]",
				Flags: append(splitFlags(), &cli.StringFlag{
					Name:  flagOutputDir,
					Usage: "write train.csv, valid.csv and test.csv with the selected rows to `DIR`",
				}),
				Action: SplitAction,
			},
			{
				Name:      "summarize",
				Usage:     "print the size and label distribution of each subset",
				UsageText: "splitter summarize --csv FILE --label-column COLUMN [--seed S]",
				Flags: append(splitFlags(),
					&cli.StringFlag{
						Name:     flagLabelColumn,
						Usage:    "name (with --header) or zero based index of the numeric label column",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  flagJSON,
						Usage: "print the summary as JSON",
					},
				),
				Action: SummarizeAction,
			},
		},
	}
}
