package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/ops"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/runner"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *ops.Env) *cli.App {
	app := &cli.App{
		Name:    "pyopt",
		Usage:   "Python source compactor with run records",
		Version: Version,
		Commands: []*cli.Command{
			optimizeCmd(env),
			dualCmd(env),
			runCmd(env),
			runsCmd(env),
			serveCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// optimizeCmd creates the optimize command.
func optimizeCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "Compact Python source (reads source from stdin)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit the full result as JSON instead of the compacted text"},
		},
		Action: func(c *cli.Context) error {
			source, err := requireStdin("source")
			if err != nil {
				return err
			}

			output, err := ops.Optimize(context.Background(), env, ops.OptimizeInput{
				Source: source,
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Println(output.MRText)
			return nil
		},
	}
}

// dualCmd creates the dual command.
func dualCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "dual",
		Usage: "Compact source, persist HR/MR artifacts, and record a run (reads source from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "module", Aliases: []string{"m"}, Required: true, Usage: "Module name used for the artifact files"},
		},
		Action: func(c *cli.Context) error {
			source, err := requireStdin("source")
			if err != nil {
				return err
			}

			output, err := ops.DualVersions(context.Background(), env, ops.DualVersionsInput{
				Source:     source,
				ModuleName: c.String("module"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runCmd creates the run command.
func runCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Compact source and execute the compacted form once (reads source from stdin)",
		Action: func(c *cli.Context) error {
			source, err := requireStdin("source")
			if err != nil {
				return err
			}

			r, ok := env.Exec.(*runner.Runner)
			if !ok {
				return outputError(errors.NewInternal(fmt.Errorf("no interpreter runner configured")))
			}

			result, err := r.OptimizeAndRun(context.Background(), env.Opt, source)
			if err != nil {
				return outputError(err)
			}

			if result.Stdout != "" {
				fmt.Print(result.Stdout)
			}
			fmt.Fprintf(os.Stderr, "peak memory: %.2f MB\n", result.MemoryUsageMB)
			return nil
		},
	}
}

// runsCmd groups the run-store subcommands.
func runsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect and manage recorded runs",
		Subcommands: []*cli.Command{
			runsListCmd(env),
			runsFetchCmd(env),
			runsDeleteCmd(env),
			runsPurgeCmd(env),
		},
	}
}

// runsListCmd creates the runs list command.
func runsListCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recorded runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum runs to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Runs to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(env, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runsFetchCmd creates the runs fetch command.
func runsFetchCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a run by ID or source fingerprint",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fingerprint", Aliases: []string{"f"}, Usage: "Source fingerprint (latest match wins)"},
			&cli.BoolFlag{Name: "no-text", Usage: "Exclude the stored HR/MR texts from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				Fingerprint: c.String("fingerprint"),
			}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}
			if c.Bool("no-text") {
				includeText := false
				input.IncludeText = &includeText
			}

			output, err := ops.Fetch(env, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runsDeleteCmd creates the runs delete command.
func runsDeleteCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a recorded run",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "remove-artifacts", Usage: "Also delete the persisted HR and MR files"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id argument is required"))
			}

			output, err := ops.Delete(env, ops.DeleteInput{
				ID:              c.Args().First(),
				RemoveArtifacts: c.Bool("remove-artifacts"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runsPurgeCmd creates the runs purge command.
func runsPurgeCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete recorded runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge runs recorded more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(env, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the run viewer web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8642, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(env, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// requireStdin reads piped input, failing when stdin is a terminal.
func requireStdin(what string) (string, error) {
	if !stdinHasData() {
		return "", outputError(errors.NewInvalidRequest(what + " must be piped via stdin"))
	}
	data, err := readStdin()
	if err != nil {
		return "", outputError(errors.NewInternal(err))
	}
	if data == "" {
		return "", outputError(errors.NewInvalidRequest(what + " is required"))
	}
	return data, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if optErr, ok := err.(*errors.OptError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", optErr.Code, optErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
