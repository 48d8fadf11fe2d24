package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gulfstar-ops/vesselkpi/internal/geo"
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List the known facilities and vessels",
	Long: `Prints the facility registry: display name, type, allocation codes and
the one-way transit distance from the Port Fourchon shore base, followed by
the supply vessel fleet.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		facilities := reg.Facilities()
		sort.Slice(facilities, func(i, j int) bool {
			return facilities[i].DisplayName < facilities[j].DisplayName
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FACILITY\tTYPE\tDRILLING CODES\tPRODUCTION CODES\tTRANSIT (NM)")
		for _, f := range facilities {
			transit := "-"
			if nm, ok := geo.TransitNM(f); ok {
				transit = fmt.Sprintf("%.0f", nm)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				f.DisplayName, f.Type, f.DrillingCodes, f.ProductionCodes, transit)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		vessels := reg.Vessels()
		sort.Slice(vessels, func(i, j int) bool {
			return vessels[i].Name < vessels[j].Name
		})
		fmt.Printf("\nVessels (%d):\n", len(vessels))
		for _, v := range vessels {
			fmt.Printf("  %s (%s)\n", v.Name, v.Company)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(facilitiesCmd)
}
