package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/fachschaft/dms/src/api"
	"github.com/fachschaft/dms/src/search"
)

var (
	txForce  bool
	txNumber int
	txUser   string
)

var orderCmd = &cobra.Command{
	Use:   "order <product>...",
	Short: "Order drinks for later payment",
	Long: `Order one or more bottles of a product. The product query may be a
partial name, a '*' wildcard pattern or a configured alias.

Examples:
  ` + getBinaryName() + ` order mate
  ` + getBinaryName() + ` order -n 2 -u stef wasser`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction("Order", args, apiClient.AddOrder)
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <product>...",
	Short: "Buy drinks, paying immediately",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction("Buy", args, apiClient.AddSale)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{orderCmd, buyCmd} {
		cmd.Flags().BoolVarP(&txForce, "force", "f", false, "don't ask for confirmation")
		cmd.Flags().IntVarP(&txNumber, "number", "n", 1, "number of bottles")
		cmd.Flags().StringVarP(&txUser, "user", "u", "", "(partial) user name, e.g. 'stef' for 'Stefan'")
	}
}

// runTransaction resolves product and target profile, confirms with
// the operator and issues one create per bottle. Both order and buy
// only offer products that are in stock.
func runTransaction(verb string, args []string, create func(productID, profileID int) error) error {
	if txNumber < 1 {
		return fmt.Errorf("number of bottles must be at least 1")
	}

	products, profiles, current, err := fetchTransactionData()
	if err != nil {
		return err
	}

	sel := search.NewSelector(os.Stdin, os.Stdout)

	inStock := products[:0:0]
	for _, p := range products {
		if p.Quantity > 0 {
			inStock = append(inStock, p)
		}
	}
	productQuery := strings.Join(args, " ")
	product, err := sel.Product(inStock, productQuery, loadAliases())
	if err != nil {
		return err
	}

	target := *current
	if txUser != "" {
		allowed := profiles[:0:0]
		for _, p := range profiles {
			if p.AllowedBuy {
				allowed = append(allowed, p)
			}
		}
		target, err = sel.Profile(allowed, txUser)
		if err != nil {
			return err
		}
	}

	targetName := target.Name()
	if target.ID == current.ID {
		targetName = "yourself"
	}

	if !txForce {
		ok, err := sel.YesNo(confirmQuestion(verb, txNumber, product, targetName), true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Bye.")
			return nil
		}
	}

	slog.Debug("issuing creates", "verb", verb, "product", product.ID, "profile", target.ID, "count", txNumber)

	// Each create is independent, so issue them concurrently. There is
	// no rollback: creates that finished before a failure stand.
	var wg sync.WaitGroup
	errs := make([]error, txNumber)
	for i := 0; i < txNumber; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = create(product.ID, target.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("%s %d of %d failed: %w", strings.ToLower(verb), i+1, txNumber, err)
		}
	}

	fmt.Printf("%s successful.\n", verb)
	return nil
}

func confirmQuestion(verb string, number int, product api.Product, targetName string) string {
	return fmt.Sprintf("%s %d %s (%s) for %s?", verb, number, product.Name, product.FormatPrice(), targetName)
}

// fetchTransactionData loads products, profiles and the caller's own
// profile in parallel; the three reads are independent.
func fetchTransactionData() ([]api.Product, []api.Profile, *api.Profile, error) {
	var (
		wg       sync.WaitGroup
		products []api.Product
		profiles []api.Profile
		current  *api.Profile

		productsErr, profilesErr, currentErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		products, productsErr = apiClient.Products()
	}()
	go func() {
		defer wg.Done()
		profiles, profilesErr = apiClient.Profiles()
	}()
	go func() {
		defer wg.Done()
		current, currentErr = apiClient.Profile(api.CurrentProfile())
	}()
	wg.Wait()

	for _, err := range []error{productsErr, profilesErr, currentErr} {
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return products, profiles, current, nil
}
