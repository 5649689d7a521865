package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/models"
)

var errNoCollection = errors.New("no collection given, use -c or provision.collection")

func runCmd(configPath *string, d *deps) *cobra.Command {
	var (
		collection string
		vars       []string
		token      string
		verbose    bool
	)

	c := &cobra.Command{
		Use:   "run",
		Short: "Send the requests of a collection to the CSE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadProvisionConfig(*configPath)
			if err != nil {
				return err
			}

			if collection == "" {
				collection = cfg.Provision.Collection
			}
			if collection == "" {
				return errNoCollection
			}
			if token != "" {
				cfg.Provision.Token = token
			}

			overrides, err := collectVars(d.environ(), vars)
			if err != nil {
				return err
			}

			col, err := d.loader.LoadCollection(collection)
			if err != nil {
				return err
			}

			level := "off"
			if verbose {
				level = cfg.Logging.Level
			}
			log := logger.NewLogger("provision", level)

			svc, err := d.newService(cfg, log)
			if err != nil {
				return err
			}

			run, runErr := svc.Run(cmd.Context(), col, overrides)
			printRun(d.out, run)
			if runErr != nil {
				return fmt.Errorf("collection %q failed: %w", col.Name, runErr)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&collection, "collection", "c", "", "collection file (defaults to provision.collection)")
	c.Flags().StringArrayVar(&vars, "var", nil, "set a collection variable, name=value (repeatable)")
	c.Flags().StringVar(&token, "token", "", "bearer token for a CSE with token authentication")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every request")
	return c
}

func printRun(w io.Writer, run models.CollectionRun) {
	fmt.Fprintf(w, "Collection: %s\n\n", run.Collection)

	for _, r := range run.Results {
		status := "OK"
		if r.Err != nil {
			status = "FAIL"
		}

		fmt.Fprintf(w, "- [%s] %s (%s %s) %dms\n", status, r.Name, r.Method, r.URL, r.Duration.Milliseconds())
		if r.StatusCode != 0 {
			fmt.Fprintf(w, "  status: %d rsc: %s\n", r.StatusCode, r.RSC)
		}
		if r.Err != nil {
			fmt.Fprintf(w, "  error: %s\n", r.Err)
		}

		names := make([]string, 0, len(r.Extracted))
		for k := range r.Extracted {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(w, "  %s = %s\n", k, r.Extracted[k])
		}
	}

	ok := 0
	for _, r := range run.Results {
		if r.Err == nil {
			ok++
		}
	}
	fmt.Fprintf(w, "\n%d/%d requests succeeded\n", ok, len(run.Results))
}
