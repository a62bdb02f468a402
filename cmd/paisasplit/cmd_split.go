package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/paisasplit/internal/calculator"
	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/money"
	"github.com/mmynk/paisasplit/internal/service"
)

// parseMembers turns "id" or "id=value" arguments into splits. Values are
// percentages for percentage splits and amounts for exact splits. A
// percentage split without any values starts from the default percentages.
func parseMembers(method models.SplitMethod, args []string) ([]models.MemberSplit, error) {
	ids := make([]string, len(args))
	values := make([]string, len(args))
	hasValues := false
	for i, arg := range args {
		id, value, ok := strings.Cut(arg, "=")
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid member %q", arg)
		}
		ids[i], values[i] = strings.TrimSpace(id), strings.TrimSpace(value)
		hasValues = hasValues || ok
	}

	splits := calculator.Initialize(method, ids)
	if !hasValues {
		return splits, nil
	}
	if method == models.SplitEqual {
		return nil, errors.New("equal splits take member IDs without values")
	}
	for i, v := range values {
		if v == "" {
			continue
		}
		switch method {
		case models.SplitPercentage:
			pct, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid percentage %q for %s", v, ids[i])
			}
			splits[i].Percentage = pct
		case models.SplitExact:
			amount, err := money.Parse(v)
			if err != nil {
				return nil, fmt.Errorf("invalid amount %q for %s: %w", v, ids[i], err)
			}
			splits[i].Amount = amount
		}
	}
	return splits, nil
}

func printResult(cmd *cobra.Command, total money.Amount, r calculator.Result) {
	w := cmd.OutOrStdout()
	heading(w, fmt.Sprintf("%s split of %s", r.Method.Label(), rupees(total)))
	for _, s := range r.Splits {
		fmt.Fprintf(w, "  %-16s %12s  %6.2f%%\n", s.ParticipantID, rupees(s.Amount), s.Percentage)
	}
	fmt.Fprintf(w, "  %-16s %12s\n", "allocated", rupees(r.Allocated))
	if r.Remaining != 0 {
		fmt.Fprintf(w, "  %-16s %12s\n", "remaining", rupees(r.Remaining))
	}
	if r.Valid {
		fmt.Fprintln(w, "Split is balanced.")
	} else {
		fmt.Fprintln(w, "Split does not add up to the total.")
	}
}

func newSplitCmd(get func() *app) *cobra.Command {
	var amount, method string
	cmd := &cobra.Command{
		Use:   "split MEMBER[=VALUE]...",
		Short: "Preview how an amount splits between members",
		Example: `  paisasplit split --amount 100 you sarah mike
  paisasplit split --amount 2800 --method percentage you=30 alex=30 emma=40
  paisasplit split --amount 320 --method exact you=200 mike=120`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}
			m, err := models.ParseSplitMethod(method)
			if err != nil {
				return err
			}
			splits, err := parseMembers(m, args)
			if err != nil {
				return err
			}
			svc := service.NewExpenseService(get().deps)
			printResult(cmd, total, svc.Preview(service.ExpenseDraft{Amount: total, SplitMethod: m, Splits: splits}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "total amount, e.g. 1250.50")
	cmd.Flags().StringVarP(&method, "method", "m", string(models.SplitEqual), "equal, percentage or exact")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newAddExpenseCmd(get func() *app, opts *options) *cobra.Command {
	var (
		description, amount, category, group, paidBy, method, date, notes string
	)
	cmd := &cobra.Command{
		Use:   "add-expense MEMBER[=VALUE]...",
		Short: "Add an expense to a group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			total, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}
			m, err := models.ParseSplitMethod(method)
			if err != nil {
				return err
			}
			splits, err := parseMembers(m, args)
			if err != nil {
				return err
			}
			draft := service.ExpenseDraft{
				Description: description,
				Amount:      total,
				Category:    models.Category(category),
				GroupID:     group,
				PaidByID:    paidBy,
				SplitMethod: m,
				Splits:      splits,
				Notes:       notes,
			}
			if paidBy == "" {
				draft.PaidByID = a.data.CurrentUser.ID
			}
			if date != "" {
				if draft.Date, err = time.ParseInLocation("2006-01-02", date, a.cfg.Location()); err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
				}
			}

			expense, err := service.NewExpenseService(a.deps).AddExpense(cmd.Context(), draft)
			if err != nil {
				return err
			}
			printResult(cmd, expense.Amount, calculator.Result{
				Method:    expense.SplitMethod,
				Splits:    expense.Splits,
				Allocated: calculator.Allocated(expense.Splits),
				Valid:     true,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s (%s).\n", expense.Description, expense.GroupName, balanceText(expense.YourShare))
			if opts.write {
				return a.persist(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "what the expense was for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "total amount")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryOther), "expense category")
	cmd.Flags().StringVarP(&group, "group", "g", "", "group ID")
	cmd.Flags().StringVar(&paidBy, "paid-by", "", "payer ID (default: you)")
	cmd.Flags().StringVarP(&method, "method", "m", string(models.SplitEqual), "equal, percentage or exact")
	cmd.Flags().StringVar(&date, "date", "", "expense date, YYYY-MM-DD (default: now)")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBalancesCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show who owes whom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			w := cmd.OutOrStdout()

			parties, err := service.NewSettlementService(a.deps).Counterparties(cmd.Context())
			if err != nil {
				return err
			}
			heading(w, "Your balances")
			if len(parties) == 0 {
				fmt.Fprintln(w, "  You're all settled up.")
			}
			for _, c := range parties {
				fmt.Fprintf(w, "  %-20s %s\n", c.Person.Name, balanceText(c.Balance))
			}

			expenses, err := a.ledger.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}
			settlements, err := a.ledger.ListSettlements(cmd.Context())
			if err != nil {
				return err
			}
			_, debts := calculator.CalculateBalances(a.data.CurrentUser.ID, expenses, settlements)
			if len(debts) > 0 {
				fmt.Fprintln(w)
				heading(w, "Simplified debts")
				for _, d := range debts {
					fmt.Fprintf(w, "  %s → %s  %s\n", a.name(d.From), a.name(d.To), rupees(d.Amount))
				}
			}
			return nil
		},
	}
}

func newSettleCmd(get func() *app, opts *options) *cobra.Command {
	var kind, amount, method, notes string
	cmd := &cobra.Command{
		Use:   "settle PERSON",
		Short: "Record a payment, a received payment or a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			total, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}
			st, err := service.NewSettlementService(a.deps).Settle(cmd.Context(), service.SettlementDraft{
				Type:          models.SettlementType(kind),
				PersonID:      args[0],
				Amount:        total,
				PaymentMethod: models.PaymentMethod(method),
				Notes:         notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s with %s.\n", st.Type, rupees(st.Amount), a.name(st.PersonID))
			if opts.write {
				return a.persist(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(models.SettlePay), "pay, record or request")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount")
	cmd.Flags().StringVar(&method, "via", string(models.PayUPI), "payment method: cash, upi, card, bank_transfer or other")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
