package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fachschaft/dms/src/api"
)

var showDays int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List users, products, sales, orders, events or comments",
}

var showUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Show your own profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := apiClient.Profile(api.CurrentProfile())
		if err != nil {
			return err
		}
		return printProfiles([]api.Profile{*profile})
	},
}

var showUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := apiClient.Profiles()
		if err != nil {
			return err
		}
		return printProfiles(profiles)
	},
}

var showProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := apiClient.Products()
		if err != nil {
			return err
		}
		return printProducts(products)
	},
}

var showOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List open orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := apiClient.Orders()
		if err != nil {
			return err
		}
		return printSaleEntries(orders)
	},
}

var showSaleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Show sale history",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := apiClient.SaleHistory(showDays)
		if err != nil {
			return err
		}
		return printSaleEntries(entries)
	},
}

var showEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := apiClient.Events()
		if err != nil {
			return err
		}
		return printEvents(events)
	},
}

var showCommentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		comments, err := apiClient.Comments()
		if err != nil {
			return err
		}
		return printComments(comments)
	},
}

func init() {
	showSaleCmd.Flags().IntVarP(&showDays, "days", "d", 1, "number of days to show")

	showCmd.AddCommand(showUserCmd)
	showCmd.AddCommand(showUsersCmd)
	showCmd.AddCommand(showProductsCmd)
	showCmd.AddCommand(showOrdersCmd)
	showCmd.AddCommand(showSaleCmd)
	showCmd.AddCommand(showEventsCmd)
	showCmd.AddCommand(showCommentsCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProfiles(profiles []api.Profile) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(profiles)
	case "plain":
		for _, p := range profiles {
			fmt.Println(p.Name())
		}
		return nil
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name() < profiles[j].Name()
	})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIRST NAME\tLAST NAME\tUSER NAME\tALLOWED TO BUY")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t(%s)\t%t\n", p.FirstName, p.LastName, p.UserName, p.AllowedBuy)
	}
	return w.Flush()
}

func printProducts(products []api.Product) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(products)
	case "plain":
		for _, p := range products {
			fmt.Println(p.Name)
		}
		return nil
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQUANTITY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.Quantity, p.FormatPrice())
	}
	return w.Flush()
}

func printSaleEntries(entries []api.SaleEntry) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(entries)
	case "plain":
		for _, e := range entries {
			fmt.Printf("%s %s\n", e.Product.Name, e.Profile.Name())
		}
		return nil
	}

	// Newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPRODUCT\tPROFILE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Date.Format("02.01.2006 15:04"), e.Product.Name, e.Profile.Name())
	}
	return w.Flush()
}

func printEvents(events []api.Event) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(events)
	case "plain":
		for _, e := range events {
			fmt.Println(e.Name)
		}
		return nil
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Name < events[j].Name
	})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRICE GROUP\tACTIVE")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%t\n", e.Name, e.PriceGroup, e.Active)
	}
	return w.Flush()
}

func printComments(comments []api.Comment) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(comments)
	case "plain":
		for _, c := range comments {
			fmt.Printf("%s: %s\n", c.Profile.Name(), c.Comment)
		}
		return nil
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Profile.Name() < comments[j].Profile.Name()
	})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tTEXT")
	for _, c := range comments {
		fmt.Fprintf(w, "%s\t%s\n", c.Profile.Name(), c.Comment)
	}
	return w.Flush()
}
