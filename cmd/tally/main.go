package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tally/internal/cli"
	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/log"
	"tally/internal/services"
	"tally/internal/session"
)

const usage = `tally - personal finance tracker

Usage:
  tally <command> [flags]

Commands:
  login      Log in (demo account: demo@tally.local / demo123)
  logout     Log out and reset the workspace
  signup     Create an account
  whoami     Show the active account
  add        Add a transaction
  list       List transactions
  report     Show analytics for a period
  budgets    Show budget status
  goals      Show savings goals
  seed       Insert the demo dataset
`

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	app := cli.InitApp(ctx, cfg, logger)
	defer app.Close()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "login":
		err = runLogin(ctx, app, os.Args[2:])
	case "logout":
		err = app.Session.Logout(ctx)
	case "signup":
		err = runSignup(ctx, app, os.Args[2:])
	case "whoami":
		err = runWhoami(app)
	case "add":
		err = runAdd(ctx, app, os.Args[2:])
	case "list":
		err = runList(app, os.Args[2:])
	case "report":
		err = runReport(app, os.Args[2:])
	case "budgets":
		err = runBudgets(ctx, app)
	case "goals":
		err = runGoals(app)
	case "seed":
		err = runSeed(ctx, app)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed", log.FieldError, err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", session.DemoEmail, "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" && *email == session.DemoEmail {
		*password = session.DemoPassword
	}

	user, err := app.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Email)

	// Demo logins get the sample dataset when the ledger is empty.
	if user.Email == session.DemoEmail && app.Config.DemoSeed {
		if n := services.NewSampleSeeder(app.Store, app.Logger).Seed(ctx); n > 0 {
			fmt.Printf("seeded %d sample transactions\n", n)
		}
	}
	return nil
}

func runSignup(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := app.Session.Signup(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	fmt.Printf("account created: %s (%s)\n", user.Name, user.Email)
	return nil
}

func runWhoami(app *cli.App) error {
	user := app.Session.Current()
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("currency: %s, theme: %s\n", user.Preferences.Currency, user.Preferences.Theme)
	return nil
}

func runAdd(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "transaction title (required)")
	amount := fs.String("amount", "", "amount, e.g. 12.50 (required)")
	txType := fs.String("type", "expense", "expense or income")
	categoryID := fs.String("category", "1", "category id")
	methodID := fs.String("method", "1", "payment method id")
	dateStr := fs.String("date", "", "date YYYY-MM-DD (default today)")
	description := fs.String("description", "", "free-form description")
	location := fs.String("location", "", "where it happened")
	tags := fs.String("tags", "", "comma-separated tags")
	recurring := fs.Bool("recurring", false, "mark as recurring template")
	interval := fs.String("interval", "monthly", "recurrence interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	date := core.DateOf(time.Now())
	if *dateStr != "" {
		if date, err = core.ParseDate(*dateStr); err != nil {
			return err
		}
	}

	category, ok := app.Store.CategoryByID(*categoryID)
	if !ok {
		return fmt.Errorf("unknown category id %q", *categoryID)
	}
	method, ok := app.Store.PaymentMethodByID(*methodID)
	if !ok {
		return fmt.Errorf("unknown payment method id %q", *methodID)
	}

	tx := core.Transaction{
		Title:         *title,
		Amount:        amt,
		Type:          core.TransactionType(*txType),
		Category:      category,
		PaymentMethod: method,
		Date:          date,
		Description:   *description,
		Location:      *location,
		Tags:          splitTags(*tags),
		Recurring:     *recurring,
		Currency:      app.Config.DefaultCurrency,
	}
	if *recurring {
		tx.Interval = core.RecurrenceInterval(*interval)
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	added := app.Store.Add(ctx, tx)
	fmt.Printf("added %s: %s %s %s (%s)\n",
		added.ID, added.Title, added.Amount.StringFixed(2), added.Currency, added.Category.Name)
	return nil
}

func runList(app *cli.App, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	txType := fs.String("type", "", "filter by type (expense|income)")
	categoryID := fs.String("category", "", "filter by category id")
	from := fs.String("from", "", "start date YYYY-MM-DD, inclusive")
	to := fs.String("to", "", "end date YYYY-MM-DD, inclusive")
	search := fs.String("search", "", "substring match on title, description, category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := ledger.Filter{
		Type:       core.TransactionType(*txType),
		CategoryID: *categoryID,
		Search:     *search,
	}
	if *from != "" {
		d, err := core.ParseDate(*from)
		if err != nil {
			return err
		}
		filter.From = &d
	}
	if *to != "" {
		d, err := core.ParseDate(*to)
		if err != nil {
			return err
		}
		filter.To = &d
	}

	transactions := app.Store.Query(filter)
	if len(transactions) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	for _, tx := range transactions {
		sign := "-"
		if tx.Type == core.Income {
			sign = "+"
		}
		fmt.Printf("%s  %s%9s %s  %-12s %s %s\n",
			tx.Date, sign, tx.Amount.StringFixed(2), tx.Currency,
			tx.Category.Name, tx.Title, strings.Join(tx.Tags, ","))
	}
	fmt.Printf("%d transaction(s)\n", len(transactions))
	return nil
}

func runReport(app *cli.App, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	period := fs.String("period", "month", "week, month or year")
	if err := fs.Parse(args); err != nil {
		return err
	}
	requested := ledger.Period(*period)
	if !requested.IsValid() {
		return fmt.Errorf("invalid period %q: must be week, month or year", *period)
	}

	// All three windows are computed concurrently; the store's analytics
	// path is read-only and memoized per period.
	results := make(map[ledger.Period]core.Analytics, 3)
	var g errgroup.Group
	var mu sync.Mutex
	for _, p := range []ledger.Period{ledger.PeriodWeek, ledger.PeriodMonth, ledger.PeriodYear} {
		p := p
		g.Go(func() error {
			a := app.Store.Analytics(p)
			mu.Lock()
			results[p] = a
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a := results[requested]
	fmt.Printf("=== %s report ===\n", requested)
	fmt.Printf("income:        %s\n", a.TotalIncome.StringFixed(2))
	fmt.Printf("expenses:      %s\n", a.TotalExpenses.StringFixed(2))
	fmt.Printf("net balance:   %s\n", a.NetBalance.StringFixed(2))
	fmt.Printf("daily average: %s\n", a.AverageDaily.StringFixed(2))
	fmt.Printf("savings rate:  %.1f%%\n", a.SavingsRate)
	if len(a.TopCategories) > 0 {
		fmt.Println("top categories:")
		for _, c := range a.TopCategories {
			fmt.Printf("  %s %-16s %9s  %5.1f%%\n",
				c.Category.Icon, c.Category.Name, c.Amount.StringFixed(2), c.Percentage)
		}
	}

	fmt.Println("\nheadline net balance:")
	for _, p := range []ledger.Period{ledger.PeriodWeek, ledger.PeriodMonth, ledger.PeriodYear} {
		fmt.Printf("  %-6s %s\n", p, results[p].NetBalance.StringFixed(2))
	}
	return nil
}

func runBudgets(ctx context.Context, app *cli.App) error {
	reports := services.NewBudgetTracker(app.Store, app.Logger).Refresh(ctx)
	if len(reports) == 0 {
		fmt.Println("no active budgets")
		return nil
	}
	for _, r := range reports {
		fmt.Printf("%-20s %9s / %9s  %5.1f%%  [%s]\n",
			r.Budget.Name, r.Spent.StringFixed(2), r.Budget.Amount.StringFixed(2),
			r.Percent, r.Status)
	}
	return nil
}

func runGoals(app *cli.App) error {
	goals := app.Store.Goals()
	if len(goals) == 0 {
		fmt.Println("no savings goals")
		return nil
	}
	for _, g := range goals {
		pct := 0.0
		if !g.TargetAmount.IsZero() {
			pct, _ = g.SavedAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		}
		fmt.Printf("%-20s %9s / %9s  %5.1f%%  due %s  [%s]\n",
			g.Title, g.SavedAmount.StringFixed(2), g.TargetAmount.StringFixed(2),
			pct, g.Deadline, g.Priority)
	}
	return nil
}

func runSeed(ctx context.Context, app *cli.App) error {
	n := services.NewSampleSeeder(app.Store, app.Logger).Seed(ctx)
	if n == 0 {
		fmt.Println("ledger not empty, nothing seeded")
		return nil
	}
	fmt.Printf("seeded %d sample transactions\n", n)
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
