package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/abdulrahman-code/pyvet/internal/output"
	"github.com/abdulrahman-code/pyvet/internal/progress"
	"github.com/abdulrahman-code/pyvet/pkg/pipeline"
	"github.com/abdulrahman-code/pyvet/pkg/sandbox"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run the full pipeline: static analysis, sandboxed smoke test, verdict",
		ArgsUsage: "<file.py>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Sandbox wall-clock budget in seconds",
			},
			&cli.IntFlag{
				Name:  "tail-bytes",
				Usage: "Bytes of captured stdout/stderr to keep",
			},
			&cli.StringFlag{
				Name:  "python",
				Usage: "Python interpreter to use for the sandbox run",
			},
			&cli.BoolFlag{
				Name:  "no-sandbox",
				Usage: "Skip the execution stage",
			},
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	path, err := singlePath(c)
	if err != nil {
		return err
	}

	cfg := loadConfig(c)

	timeout := cfg.Sandbox.Timeout()
	if c.IsSet("timeout") {
		timeout = time.Duration(c.Int("timeout")) * time.Second
	}
	tailBytes := cfg.Sandbox.TailBytes
	if c.IsSet("tail-bytes") {
		tailBytes = c.Int("tail-bytes")
	}
	interpreter := cfg.Sandbox.Interpreter
	if c.IsSet("python") {
		interpreter = c.String("python")
	}

	opts := []pipeline.Option{
		pipeline.WithRunner(sandbox.New(
			sandbox.WithTimeout(timeout),
			sandbox.WithTailBytes(tailBytes),
			sandbox.WithInterpreter(interpreter),
		)),
	}
	if c.Bool("no-sandbox") || !cfg.Sandbox.Enabled {
		opts = append(opts, pipeline.WithoutSandbox())
	}

	spinner := progress.StartSpinner("Analyzing " + path + "...")
	rep, err := pipeline.New(opts...).Run(c.Context, path)
	spinner.Stop()
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
