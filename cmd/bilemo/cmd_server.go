package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bilemo/api/app/docs"
	"github.com/bilemo/api/app/routes"
	"github.com/bilemo/api/internal/server"
	"github.com/bilemo/api/pkg/openapi"
	"github.com/bilemo/api/pkg/router"
)

// bilemo serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// bilemo route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are never invoked, so no database is needed.
		app, err := routes.New(nil, nil)
		if err != nil {
			return err
		}
		r := router.New()
		routes.RegisterAPI(r, app)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

var docsFormat string

// bilemo docs
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the OpenAPI document",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := openapi.Encode(docs.Build(), openapi.Format(docsFormat))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsFormat, "format", "f", "json", "output format: json or yaml")
}
