package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/query"
	"github.com/mmynk/paisasplit/internal/service"
	"github.com/mmynk/paisasplit/internal/timefmt"
	"github.com/mmynk/paisasplit/internal/views"
)

// timed records how long a list view query took.
func (a *app) timed(view string, start time.Time) {
	a.deps.Metrics.ObserveQuery(view, time.Since(start))
}

func newExpensesCmd(get func() *app) *cobra.Command {
	var search, dateRange, category, group, sortKey string
	var byMonth bool
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			q := views.ExpenseQuery{Search: search, GroupID: group}
			var err error
			if q.Range, err = query.ParseDateRange(dateRange); err != nil {
				return err
			}
			if q.Category, err = views.ParseCategoryFilter(category); err != nil {
				return err
			}
			if q.Sort, err = views.ParseExpenseSort(sortKey); err != nil {
				return err
			}

			expenses, err := a.ledger.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			months := q.Months(expenses, a.now)
			a.timed("expenses", start)

			w := cmd.OutOrStdout()
			stats := views.Stats(expenses, a.now)
			fmt.Fprintf(w, "This month %s · Your share %s · Net %s · %d expenses\n\n",
				rupees(stats.MonthTotal), rupees(stats.YourShareThisMonth), balanceText(stats.NetBalance), stats.Count)

			if len(months) == 0 {
				if q.IsFiltered() {
					fmt.Fprintln(w, "No expenses match your filters.")
				} else {
					fmt.Fprintln(w, "No expenses yet.")
				}
				return nil
			}
			if !byMonth {
				var all []models.Expense
				for _, m := range months {
					all = append(all, m.Expenses...)
				}
				months = []views.MonthGroup{{Month: fmt.Sprintf("%s · %s", q.Sort.Label(), q.Range.Label()), Expenses: all}}
			}
			for _, m := range months {
				title := m.Month
				if byMonth {
					title = fmt.Sprintf("%s  %s", m.Month, rupees(m.Total))
				}
				heading(w, title)
				for _, e := range m.Expenses {
					fmt.Fprintf(w, "  %s %-32s %12s  %-14s %-8s %s\n",
						e.Category.Icon(), e.Description, rupees(e.Amount), e.GroupName,
						timefmt.ShortDate(e.Date, a.now), balanceText(e.YourShare))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match description, group or payer")
	cmd.Flags().StringVarP(&dateRange, "range", "r", "all", "all, today, week, month or quarter")
	cmd.Flags().StringVar(&category, "category", "all", "category key or all")
	cmd.Flags().StringVarP(&group, "group", "g", "", "group ID")
	cmd.Flags().StringVar(&sortKey, "sort", "date", "date, amount, name or group")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "group the list by month")
	return cmd
}

func newActivityCmd(get func() *app) *cobra.Command {
	var tab, dateRange string
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var q views.ActivityQuery
			var err error
			if q.Tab, err = views.ParseActivityTab(tab); err != nil {
				return err
			}
			if q.Range, err = query.ParseDateRange(dateRange); err != nil {
				return err
			}

			activities, err := a.ledger.ListActivities(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			groups := q.Run(activities, a.now)
			a.timed("activity", start)

			w := cmd.OutOrStdout()
			counts := views.TabCounts(activities)
			for _, t := range views.ActivityTabs {
				fmt.Fprintf(w, "%s (%d)  ", t.Label(), counts[t])
			}
			fmt.Fprintf(w, "\n%d unread\n\n", views.UnreadCount(activities))

			if len(groups) == 0 {
				fmt.Fprintln(w, "No activity to show.")
				return nil
			}
			for _, g := range groups {
				heading(w, g.Key)
				for _, act := range g.Items {
					marker := " "
					if !act.IsRead {
						marker = "•"
					}
					amount := ""
					if act.Amount != nil {
						amount = rupees(*act.Amount)
					}
					fmt.Fprintf(w, "%s %s %-44s %12s  %s\n", marker, act.Type.Icon(), act.Title, amount, timefmt.RelativeTime(act.Timestamp, a.now))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tab, "tab", "t", "all", "all, expenses, payments, friends or groups")
	cmd.Flags().StringVarP(&dateRange, "range", "r", "all", "all, today, week, month or quarter")
	return cmd
}

func newGroupsCmd(get func() *app) *cobra.Command {
	var search, filter, sortKey string
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			q := views.GroupQuery{Search: search}
			var err error
			if q.Filter, err = views.ParseGroupFilter(filter); err != nil {
				return err
			}
			if q.Sort, err = views.ParseGroupSort(sortKey); err != nil {
				return err
			}

			groups, err := a.ledger.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			list := q.Run(groups, a.now)
			a.timed("groups", start)

			w := cmd.OutOrStdout()
			stats := views.SummarizeGroups(groups)
			fmt.Fprintf(w, "%d active · %d members · net %s\n\n", stats.Active, stats.TotalMembers, balanceText(stats.TotalBalance))
			heading(w, fmt.Sprintf("%s by %s", q.Filter.Label(), q.Sort.Label()))
			if len(list) == 0 {
				fmt.Fprintln(w, "  No groups match your filters.")
			}
			for _, g := range list {
				fmt.Fprintf(w, "  %s %-18s %-8s %2d members  %-20s %3.0f%%  %s\n",
					g.Icon, g.Name, g.Status, g.MemberCount(), balanceText(g.YourBalance),
					views.BalanceShare(g, groups), timefmt.RelativeTime(g.LastActivity, a.now))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match group or member names")
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, active, settled, owed or owing")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "name, balance, activity or members")
	return cmd
}

func newFriendsCmd(get func() *app) *cobra.Command {
	var search, status, sortKey string
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "List friends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			q := views.FriendQuery{Search: search}
			var err error
			if q.Status, err = views.ParseFriendStatusFilter(status); err != nil {
				return err
			}
			if q.Sort, err = views.ParseFriendSort(sortKey); err != nil {
				return err
			}

			friends, err := a.ledger.ListFriends(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			list := q.Run(friends, a.now)
			a.timed("friends", start)

			w := cmd.OutOrStdout()
			stats := views.SummarizeFriends(friends, a.now)
			fmt.Fprintf(w, "%d active · %d recently active · %d shared expenses\n\n", stats.Active, stats.RecentlyActive, stats.SharedExpenses)
			heading(w, "Friends by "+q.Sort.Label())
			if len(list) == 0 {
				fmt.Fprintln(w, "  No friends match your filters.")
			}
			for _, f := range list {
				fmt.Fprintf(w, "  %-3s %-16s %-28s %-8s %-22s %s\n",
					models.Initials(f.Name), f.Name, f.Email, f.Status, balanceText(f.TotalOwed), timefmt.AgeLabel(f.LastActivity, a.now))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match name or email")
	cmd.Flags().StringVar(&status, "status", "all", "all, active, pending or blocked")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "name, recent or activity")
	return cmd
}

func newDashboardCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the summary cards and recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			d, err := service.NewDashboardService(a.deps).Dashboard(cmd.Context(), a.now)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			heading(w, "Dashboard · "+timefmt.DayLabel(a.now, a.now))
			fmt.Fprintf(w, "  Total balance     %s\n", balanceText(d.TotalBalance))
			fmt.Fprintf(w, "  This month        %s\n", rupees(d.MonthlyExpenses))
			fmt.Fprintf(w, "  Active groups     %d\n", d.ActiveGroups)
			fmt.Fprintf(w, "  Friends           %d\n\n", d.TotalFriends)
			heading(w, "Recent expenses")
			for _, e := range d.RecentExpenses {
				fmt.Fprintf(w, "  %-32s %12s  %s\n", e.Description, rupees(e.Amount), timefmt.RelativeTime(e.Date, a.now))
			}
			return nil
		},
	}
}
