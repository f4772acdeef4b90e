package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/splitters/config"
	"go.viam.com/splitters/logging"
	"go.viam.com/splitters/ml"
	"go.viam.com/splitters/ml/dataset"
	"go.viam.com/splitters/ml/splitters"
)

// csvTable is a CSV file held in memory.
type csvTable struct {
	header []string
	rows   dataset.Slice[[]string]
}

// SplitAction is the corresponding action for 'split'.
func SplitAction(c *cli.Context) error {
	conf, err := splitConfigFromContext(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, conf)

	var (
		table *csvTable
		ds    splitters.Dataset
	)
	switch {
	case c.IsSet(flagCSV):
		if table, err = readCSV(c.String(flagCSV), c.Bool(flagHeader)); err != nil {
			return err
		}
		ds = table.rows
	case c.IsSet(flagLength):
		ds = splitters.Length(c.Int(flagLength))
	default:
		return errors.Errorf("one of --%s or --%s is required", flagLength, flagCSV)
	}

	splitter := splitters.NewRandomSplitter(logger.Sublogger("random"))
	split, err := splitter.Split(ds, conf.Fractions(), conf.Options()...)
	if err != nil {
		return err
	}

	if dir := c.String(flagOutputDir); dir != "" {
		if table == nil {
			return errors.Errorf("--%s requires --%s", flagOutputDir, flagCSV)
		}
		if err := writeSplitCSVs(dir, table, split); err != nil {
			return err
		}
		logger.Infow("wrote split", "dir", dir, "train", len(split.Train), "valid", len(split.Valid), "test", len(split.Test))
	}

	encoder := json.NewEncoder(c.App.Writer)
	return encoder.Encode(split)
}

// SummarizeAction is the corresponding action for 'summarize'.
func SummarizeAction(c *cli.Context) error {
	conf, err := splitConfigFromContext(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, conf)

	if !c.IsSet(flagCSV) {
		return errors.Errorf("--%s is required", flagCSV)
	}
	table, err := readCSV(c.String(flagCSV), c.Bool(flagHeader))
	if err != nil {
		return err
	}
	labels, err := table.floatColumn(c.String(flagLabelColumn))
	if err != nil {
		return err
	}

	splitter := splitters.NewRandomSplitter(logger.Sublogger("random"))
	split, err := splitter.Split(table.rows, conf.Fractions(), conf.Options()...)
	if err != nil {
		return err
	}
	summary, err := ml.Summarize(split, labels)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		return json.NewEncoder(c.App.Writer).Encode(summary)
	}
	fmt.Fprintln(c.App.Writer, summary.String())
	return nil
}

// splitConfigFromContext loads the config file, if any, and applies flag overrides on top of it.
func splitConfigFromContext(c *cli.Context) (*config.SplitConfig, error) {
	conf := &config.SplitConfig{}
	if path := c.String(flagConfig); path != "" {
		var err error
		if conf, err = config.Read(path); err != nil {
			return nil, err
		}
	}

	overrides := config.AttributeMap{}
	for flag, key := range map[string]string{
		flagFracTrain: "frac_train",
		flagFracValid: "frac_valid",
		flagFracTest:  "frac_test",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.Float64(flag)
		}
	}
	if len(overrides) > 0 {
		// overriding one fraction keeps the defaults for the others
		fracs := conf.Fractions()
		conf.FracTrain, conf.FracValid, conf.FracTest = fracs.Train, fracs.Valid, fracs.Test
	}
	if c.IsSet(flagSeed) {
		overrides["seed"] = c.Int64(flagSeed)
	}
	if c.IsSet(flagLogLevel) {
		overrides["log_level"] = c.String(flagLogLevel)
	}
	if err := conf.Apply(overrides); err != nil {
		return nil, err
	}

	if err := conf.Validate("flags"); err != nil {
		return nil, err
	}
	return conf, nil
}

// newLogger logs to the app's error writer so that command output stays machine readable.
// --debug raises logging.GlobalLogLevel, which overrides the level set here.
func newLogger(c *cli.Context, conf *config.SplitConfig) logging.Logger {
	logger := logging.NewBlankLogger("splitter")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if conf.LogLevel != nil {
		logger.SetLevel(*conf.LogLevel)
	} else {
		logger.SetLevel(logging.WARN)
	}
	return logger
}

func readCSV(path string, hasHeader bool) (*csvTable, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read csv %q", path)
	}
	table := &csvTable{}
	if hasHeader && len(records) > 0 {
		table.header = records[0]
		records = records[1:]
	}
	table.rows = records
	return table, nil
}

// floatColumn parses one column as floats. column is a header name or a zero based index.
func (table *csvTable) floatColumn(column string) ([]float64, error) {
	idx := -1
	for i, name := range table.header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		parsed, err := strconv.Atoi(column)
		if err != nil {
			return nil, errors.Errorf("no column named %q", column)
		}
		idx = parsed
	}

	values := make([]float64, 0, len(table.rows))
	for rowNum, row := range table.rows {
		if idx < 0 || idx >= len(row) {
			return nil, errors.Errorf("row %d has no column %d", rowNum, idx)
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d column %d", rowNum, idx)
		}
		values = append(values, v)
	}
	return values, nil
}

func writeSplitCSVs(dir string, table *csvTable, split *splitters.Split) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	for _, subset := range []struct {
		name    string
		indices []int
	}{
		{"train", split.Train},
		{"valid", split.Valid},
		{"test", split.Test},
	} {
		rows, err := table.rows.Subset(subset.indices)
		if err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(dir, subset.name+".csv"), table.header, rows.(dataset.Slice[[]string])); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if header != nil {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write csv %q", path)
	}
	return nil
}
