package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/spf13/cobra"
)

// list: print every county with its contact, if any.
func listCmd() *cobra.Command {
	var (
		asJSON   bool
		withOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List counties and their contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counties := appCtx.Service.ListAll(cmd.Context())
			if withOnly {
				filtered := counties[:0]
				for _, c := range counties {
					if c.Contact != nil {
						filtered = append(filtered, c)
					}
				}
				counties = filtered
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, map[string]any{"counties": counties})
			}
			return printCounties(out, counties)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&withOnly, "with-contact", false, "only counties that have a contact")
	return cmd
}

// get <county>: print one county.
func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <county>",
		Short: "Show the contact for a county",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			county, err := appCtx.Service.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), county)
		},
	}
}

// put <county>: replace a county's contact; no flags clears it.
func putCmd() *cobra.Command {
	var c core.Contact
	cmd := &cobra.Command{
		Use:   "put <county>",
		Short: "Set or clear the contact for a county",
		Long:  "Replace the contact for a county. Omitting every field removes the contact.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			county, err := appCtx.Service.Put(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), county)
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&c.Email, "email", "", "contact email")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCounties(w io.Writer, counties []core.County) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTY\tNAME\tPHONE\tEMAIL")
	for _, c := range counties {
		var contact core.Contact
		if c.Contact != nil {
			contact = *c.Contact
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, contact.Name, contact.Phone, contact.Email)
	}
	return tw.Flush()
}
