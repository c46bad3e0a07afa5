package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/maya/billfold/internal/domain"
	"github.com/maya/billfold/internal/store"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, view, create, and manage invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureLoaded(ctx); err != nil {
			return err
		}

		invoices := appInstance.Invoices.All()

		// Status filter (read-side; "All" bypasses)
		statusFilter, _ := cmd.Flags().GetString("status")
		selected := []string{domain.FilterAll}
		if statusFilter != "" {
			selected = strings.Split(statusFilter, ",")
		}
		invoices = domain.FilterByStatus(invoices, selected)

		// Page window unless --all is given
		showAll, _ := cmd.Flags().GetBool("all")
		if !showAll {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("page-size")
			if size <= 0 {
				size = appInstance.Invoices.PageSize()
			}
			invoices = store.Page(invoices, page, size)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		currency := appInstance.Config.UI.Currency

		// Print table header
		fmt.Printf("%-8s %-12s %-24s %-30s %-14s %-8s\n", "ID", "Due", "Client", "Description", "Total", "Status")
		fmt.Println(strings.Repeat("-", 100))

		for _, inv := range invoices {
			due := inv.PaymentDue
			if due == "" {
				due = "-"
			}
			fmt.Printf("%-8s %-12s %-24s %-30s %s%-13.2f %-8s\n",
				inv.ID,
				due,
				truncate(inv.ClientName, 24),
				truncate(inv.Description, 30),
				currency,
				inv.Total,
				inv.Status,
			)
		}

		fmt.Printf("\nShowing %d of %d invoice(s)\n", len(invoices), appInstance.Invoices.Len())
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureLoaded(ctx); err != nil {
			return err
		}

		inv, ok := appInstance.Invoices.Get(strings.ToUpper(args[0]))
		if !ok {
			return fmt.Errorf("invoice %s not found", args[0])
		}

		currency := appInstance.Config.UI.Currency

		fmt.Println(strings.Repeat("=", 72))
		fmt.Printf("Invoice: #%s (%s)\n", inv.ID, inv.Status)
		fmt.Println(strings.Repeat("=", 72))
		fmt.Printf("Description: %s\n", inv.Description)
		fmt.Printf("Created: %s    Payment due: %s (%d days)\n",
			orDash(inv.CreatedAt), orDash(inv.PaymentDue), inv.PaymentTerms)
		fmt.Printf("Bill to: %s <%s>\n", inv.ClientName, inv.ClientEmail)
		fmt.Printf("  %s\n", formatAddress(inv.ClientAddress))
		fmt.Printf("From:\n  %s\n", formatAddress(inv.SenderAddress))
		fmt.Println()

		if len(inv.Items) > 0 {
			fmt.Println("Items:")
			fmt.Println(strings.Repeat("-", 72))
			fmt.Printf("%-36s %6s %12s %14s\n", "Name", "Qty", "Price", "Total")
			fmt.Println(strings.Repeat("-", 72))
			for _, item := range inv.Items {
				fmt.Printf("%-36s %6d %s%11.2f %s%13.2f\n",
					truncate(item.Name, 36), item.Quantity, currency, item.Price, currency, item.Total)
			}
			fmt.Println(strings.Repeat("-", 72))
		}

		fmt.Printf("\nAmount due: %s%.2f\n", currency, inv.Total)
		fmt.Println(strings.Repeat("=", 72))
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new invoice",
	Long: `Create a new invoice. Without --send the invoice is saved as a draft
and incomplete data is accepted; with --send it is saved as pending and all
required fields must be present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureLoaded(ctx); err != nil {
			return err
		}

		draft, err := draftFromFlags(cmd)
		if err != nil {
			return err
		}

		send, _ := cmd.Flags().GetBool("send")
		status := domain.StatusDraft
		if send {
			status = domain.StatusPending
		}

		inv, err := appInstance.Invoices.Create(ctx, draft, status, send)
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("✓ Invoice created: #%s (%s)\n", inv.ID, inv.Status)
		if inv.PaymentDue != "" {
			fmt.Printf("  Payment due: %s\n", inv.PaymentDue)
		}
		fmt.Printf("  Total: %s%.2f\n", appInstance.Config.UI.Currency, inv.Total)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureLoaded(ctx); err != nil {
			return err
		}

		id := strings.ToUpper(args[0])
		if appInstance.Invoices.Delete(ctx, id) {
			fmt.Printf("✓ Invoice #%s deleted\n", id)
		} else {
			// Deleting an absent invoice is not an error: it is gone either way.
			fmt.Printf("Invoice #%s not found (nothing to delete)\n", id)
		}
		return nil
	},
}

var invoicesMarkPaidCmd = &cobra.Command{
	Use:   "mark-paid [id]",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := ensureLoaded(ctx); err != nil {
			return err
		}

		id := strings.ToUpper(args[0])
		inv, err := appInstance.Invoices.MarkAsPaid(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to mark invoice as paid: %w", err)
		}

		fmt.Printf("✓ Invoice #%s marked as paid\n", inv.ID)
		return nil
	},
}

// ensureLoaded initializes the invoice store (idempotent) and surfaces a
// degraded load as a warning rather than a failure.
func ensureLoaded(ctx context.Context) error {
	if err := appInstance.Invoices.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize invoice store: %w", err)
	}
	if msg := appInstance.Invoices.LoadError(); msg != "" {
		fmt.Printf("warning: %s (using bundled data)\n", msg)
	}
	return nil
}

// draftFromFlags assembles an InvoiceDraft from the create flags.
func draftFromFlags(cmd *cobra.Command) (domain.InvoiceDraft, error) {
	clientName, _ := cmd.Flags().GetString("client")
	clientEmail, _ := cmd.Flags().GetString("email")
	description, _ := cmd.Flags().GetString("description")
	date, _ := cmd.Flags().GetString("date")
	terms, _ := cmd.Flags().GetInt("terms")
	street, _ := cmd.Flags().GetString("street")
	city, _ := cmd.Flags().GetString("city")
	postCode, _ := cmd.Flags().GetString("post-code")
	country, _ := cmd.Flags().GetString("country")
	itemSpecs, _ := cmd.Flags().GetStringArray("item")

	items := make([]domain.LineItem, 0, len(itemSpecs))
	for _, spec := range itemSpecs {
		item, err := parseItem(spec)
		if err != nil {
			return domain.InvoiceDraft{}, err
		}
		items = append(items, item)
	}

	sender := appInstance.Config.Sender
	return domain.InvoiceDraft{
		CreatedAt:    date,
		Description:  description,
		PaymentTerms: terms,
		ClientName:   clientName,
		ClientEmail:  clientEmail,
		SenderAddress: domain.Address{
			Street:   sender.Street,
			City:     sender.City,
			PostCode: sender.PostCode,
			Country:  sender.Country,
		},
		ClientAddress: domain.Address{
			Street:   street,
			City:     city,
			PostCode: postCode,
			Country:  country,
		},
		Items: items,
	}, nil
}

// parseItem parses an --item spec of the form "name:quantity:price".
func parseItem(spec string) (domain.LineItem, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return domain.LineItem{}, fmt.Errorf("invalid item %q: expected name:quantity:price", spec)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || quantity < 1 {
		return domain.LineItem{}, fmt.Errorf("invalid item quantity in %q", spec)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || price < 0 {
		return domain.LineItem{}, fmt.Errorf("invalid item price in %q", spec)
	}

	return domain.LineItem{
		Name:     strings.TrimSpace(parts[0]),
		Quantity: quantity,
		Price:    price,
	}, nil
}

func formatAddress(a domain.Address) string {
	if a.IsZero() {
		return "-"
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.PostCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen with an ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesMarkPaidCmd)

	// List flags
	invoicesListCmd.Flags().String("status", "", "Filter by status (draft, pending, paid; comma-separated)")
	invoicesListCmd.Flags().Int("page", 1, "Page number")
	invoicesListCmd.Flags().Int("page-size", 0, "Page size (defaults to the configured size)")
	invoicesListCmd.Flags().Bool("all", false, "Show the full collection instead of one page")

	// Create flags
	invoicesCreateCmd.Flags().String("client", "", "Client name")
	invoicesCreateCmd.Flags().String("email", "", "Client email")
	invoicesCreateCmd.Flags().String("description", "", "Project description")
	invoicesCreateCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
	invoicesCreateCmd.Flags().Int("terms", 0, "Payment terms in days")
	invoicesCreateCmd.Flags().String("street", "", "Client street address")
	invoicesCreateCmd.Flags().String("city", "", "Client city")
	invoicesCreateCmd.Flags().String("post-code", "", "Client post code")
	invoicesCreateCmd.Flags().String("country", "", "Client country")
	invoicesCreateCmd.Flags().StringArray("item", nil, "Line item as name:quantity:price (repeatable)")
	invoicesCreateCmd.Flags().Bool("send", false, "Save as pending (requires all fields)")
}
