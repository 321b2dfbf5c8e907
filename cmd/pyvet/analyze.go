package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/abdulrahman-code/pyvet/internal/output"
	"github.com/abdulrahman-code/pyvet/pkg/pipeline"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"static"},
		Usage:     "Run static analysis only; the file is never executed",
		ArgsUsage: "<file.py>",
		Action:    runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	path, err := singlePath(c)
	if err != nil {
		return err
	}

	cfg := loadConfig(c)

	rep, err := pipeline.New(pipeline.WithoutSandbox()).Run(c.Context, path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(c, cfg)), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(rep)
}
