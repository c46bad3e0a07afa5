package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/maya/billfold/internal/crypto"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data. By default resets only the invoice collection.

Examples:
  billfold reset invoices   # Delete the stored invoice collection (reseeds on next run)
  billfold reset all        # Also remove the database encryption key from the keyring`,
}

var resetInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Delete the stored invoice collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL stored invoices. The bundled seed data is restored on next run. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Snapshots.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		fmt.Println("All stored invoices have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete the invoice collection and the keyring encryption key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL stored invoices and the database encryption key. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Snapshots.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		keyring := crypto.NewKeyring()
		if err := keyring.DeleteKey(); err != nil {
			fmt.Printf("warning: failed to remove encryption key: %v\n", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetInvoicesCmd)
	resetCmd.AddCommand(resetAllCmd)
}
