package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fachschaft/dms/src/api"
	"github.com/fachschaft/dms/src/search"
)

var commentUser string

var commentCmd = &cobra.Command{
	Use:   "comment <text>...",
	Short: "Leave a comment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		var profileID int
		if commentUser != "" {
			profiles, err := apiClient.Profiles()
			if err != nil {
				return err
			}
			allowed := profiles[:0:0]
			for _, p := range profiles {
				if p.AllowedBuy {
					allowed = append(allowed, p)
				}
			}
			sel := search.NewSelector(os.Stdin, os.Stdout)
			target, err := sel.Profile(allowed, commentUser)
			if err != nil {
				return err
			}
			profileID = target.ID
		} else {
			current, err := apiClient.Profile(api.CurrentProfile())
			if err != nil {
				return err
			}
			profileID = current.ID
		}

		if err := apiClient.AddComment(text, profileID); err != nil {
			return err
		}
		fmt.Println("Comment successful.")
		return nil
	},
}

func init() {
	commentCmd.Flags().StringVarP(&commentUser, "user", "u", "", "(partial) user name the comment belongs to")
}
