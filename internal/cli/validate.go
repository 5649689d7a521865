package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-acme-cse/internal/validators"
)

func validateCmd(d *deps) *cobra.Command {
	var collection string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a collection without sending requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			col, err := d.loader.LoadCollection(collection)
			if err != nil {
				return err
			}

			if err = validators.NewCollectionValidator().Validate(cmd.Context(), col); err != nil {
				return err
			}

			fmt.Fprintf(d.out, "OK: %s (%d requests)\n", col.Name, len(col.Requests))
			return nil
		},
	}

	c.Flags().StringVarP(&collection, "collection", "c", "", "collection file (required)")
	_ = c.MarkFlagRequired("collection")
	return c
}
