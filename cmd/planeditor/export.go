package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/log"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/otelhelper"
	"github.com/dukex/planeditor/pkg/projection"
	json "github.com/goccy/go-json"
	cli "github.com/urfave/cli/v3"
)

var errPlanArgument = errors.New("plan name or ID argument is required")

// graphExport is the document written by the export command in graph format.
type graphExport struct {
	Plan         *models.Plan          `json:"plan"`
	Nodes        []*models.Node        `json:"nodes"`
	Edges        []*models.Edge        `json:"edges"`
	CommandTypes []*models.CommandType `json:"command_types"`
}

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"e"},
		Usage:     "Fetch a plan from the backend and print it as a canvas graph",
		ArgsUsage: "<plan name or ID>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend-url",
				Usage:   "Base URL of the workflow backend API",
				Value:   gateway.DefaultBaseURL,
				Sources: cli.EnvVars("BACKEND_URL"),
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output document (graph, plan)",
				Value: "graph",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.Setup(command.String("log-level"), log.FormatText)

			nameOrID := command.Args().First()
			if nameOrID == "" {
				return errPlanArgument
			}

			client := gateway.NewClient(command.String("backend-url"),
				gateway.WithTracer(otelhelper.NewNoopTracer()),
				gateway.WithLogger(logger),
			)

			full, err := client.GetFullPlan(ctx, nameOrID)
			if err != nil {
				return err
			}

			out := io.Writer(os.Stdout)

			if path := command.String("output"); path != "" {
				file, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}

				defer func() {
					if err := file.Close(); err != nil {
						logger.Error("Failed to close output file", "error", err)
					}
				}()

				out = file
			}

			return writeExport(out, full, command.String("format"))
		},
	}
}

func writeExport(w io.Writer, full *gateway.FullPlanResponse, format string) error {
	plan := gateway.ConvertToPlan(full)

	var document any

	switch format {
	case "plan":
		document = plan
	case "graph":
		catalog := gateway.ConvertCommandTypes(full)
		nodes, edges := projection.ToGraph(plan, catalog)

		document = graphExport{
			Plan:         plan.Metadata(),
			Nodes:        nodes,
			Edges:        edges,
			CommandTypes: catalog,
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s export: %w", format, err)
	}

	_, err = w.Write(append(data, '\n'))

	return err
}
