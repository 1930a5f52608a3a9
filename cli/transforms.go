package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/robotstate"
)

// TransformsAction is the corresponding Action for 'transforms'.
func TransformsAction(c *cli.Context) error {
	format := c.String(flagFormat)
	switch format {
	case formatTable, formatJSON, formatMatrix:
	default:
		return errors.Errorf("unknown format %q, expected one of table, json or matrix", format)
	}
	js, err := parsePositions(c.StringSlice(flagPosition))
	if err != nil {
		return err
	}

	logger := newLogger(c)
	engine, err := loadEngineFromFlags(c, logger)
	if err != nil {
		return err
	}
	records := engine.ComputeFromValues(js, robotstate.WithPublishTime(c.Int64(flagTime)))
	return writeTransforms(c.App.Writer, format, records)
}

func writeTransforms(w io.Writer, format string, records []robotstate.TransformRecord) error {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(robotstate.TransformSet(records), "", "  ")
		if err != nil {
			return err
		}
		printf(w, "%s", b)
	case formatMatrix:
		printf(w, "%s", matrixString(records))
	default:
		printf(w, "%s", transformTable(records))
	}
	return nil
}

func transformTable(records []robotstate.TransformRecord) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Parent", "Child", "X", "Y", "Z", "QX", "QY", "QZ", "QW"})
	for _, rec := range records {
		tra, rot := rec.Transform.Translation, rec.Transform.Rotation
		t.AppendRow(table.Row{
			rec.Parent,
			rec.Child,
			fmt.Sprintf("%.6f", tra.X),
			fmt.Sprintf("%.6f", tra.Y),
			fmt.Sprintf("%.6f", tra.Z),
			fmt.Sprintf("%.6f", rot.Imag),
			fmt.Sprintf("%.6f", rot.Jmag),
			fmt.Sprintf("%.6f", rot.Kmag),
			fmt.Sprintf("%.6f", rot.Real),
		})
	}
	return t.Render()
}

func matrixString(records []robotstate.TransformRecord) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s -> %s\n", rec.Parent, rec.Child)
		m := rec.Transform.Matrix()
		for row := 0; row < 4; row++ {
			fmt.Fprintf(&sb, "%10.6f %10.6f %10.6f %10.6f\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
