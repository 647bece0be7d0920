package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/homebanking/corebank/infra"
	"github.com/homebanking/corebank/infra/initializer"
	infra_repository "github.com/homebanking/corebank/infra/repository"
	"github.com/homebanking/corebank/pkg/app"
	"github.com/homebanking/corebank/pkg/config"
	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/identity"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  migrate
  seed
  register <first_name> <last_name> <email>
  account <email>
  accounts <email>
  card <email> <CREDIT|DEBIT> [color]
  transfer <email> <amount> <origin> <destination> [description...]
  loan <email> <product_id> <product_name> <amount> <payments> <account>
  loans <email>
  ledger <email> <account>`

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		failColor.Fprintf(os.Stderr, "[%d] %s\n", domain.StatusCode(err), err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if cmd == "migrate" {
		return migrate(ctx, cfg)
	}
	if cfg.DB.Url == "" {
		infoColor.Println("DATABASE_URL is not set: changes last for this command only") //nolint:errcheck
	}
	a, err := initializer.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer a.Close() //nolint:errcheck
	return dispatch(ctx, a, cmd, args)
}

func migrate(ctx context.Context, cfg *config.App) error {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	if err := infra_repository.Migrate(ctx, db); err != nil {
		return err
	}
	okColor.Println("Database migrated") //nolint:errcheck
	return nil
}

func dispatch(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "seed":
		seeded, err := a.LoanService.SeedProducts(ctx, loan.DefaultCatalog())
		if err != nil {
			return err
		}
		okColor.Printf("Seeded %d loan products\n", seeded) //nolint:errcheck
	case "register":
		if err := need(args, 3, "register <first_name> <last_name> <email>"); err != nil {
			return err
		}
		password, err := readPassword(os.Stdin)
		if err != nil {
			return err
		}
		reg, err := a.ClientService.Register(ctx, args[0], args[1], args[2], password)
		if err != nil {
			return err
		}
		okColor.Printf("[%d] Registered %s (%s)\n", reg.Status, reg.Client.FullName(), reg.Client.ID) //nolint:errcheck
	case "account":
		if err := need(args, 1, "account <email>"); err != nil {
			return err
		}
		accounts, err := a.AccountService.CreateAccount(ctx, caller(args[0]), true)
		if err != nil {
			return err
		}
		okColor.Println("Account created") //nolint:errcheck
		printAccounts(accounts)
	case "accounts":
		if err := need(args, 1, "accounts <email>"); err != nil {
			return err
		}
		accounts, err := a.AccountService.ListAccounts(ctx, caller(args[0]))
		if err != nil {
			return err
		}
		printAccounts(accounts)
	case "card":
		if err := need(args, 2, "card <email> <CREDIT|DEBIT> [color]"); err != nil {
			return err
		}
		kind, err := card.ParseType(args[1])
		if err != nil {
			return err
		}
		var c *card.Color
		if len(args) > 2 {
			parsed, err := card.ParseColor(args[2])
			if err != nil {
				return err
			}
			c = &parsed
		}
		cards, err := a.CardService.IssueCard(ctx, caller(args[0]), &kind, c)
		if err != nil {
			return err
		}
		okColor.Println("Card issued") //nolint:errcheck
		for _, issued := range cards {
			fmt.Printf("  %s  %-6s %-8s thru %s\n",
				issued.Number, issued.Type, issued.Color, issued.ThruDate.Format("01/06"))
		}
	case "transfer":
		if err := need(args, 4, "transfer <email> <amount> <origin> <destination> [description...]"); err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		receipt, err := a.TransferService.Transfer(
			ctx, caller(args[0]), amount, strings.Join(args[4:], " "), args[2], args[3],
		)
		if err != nil {
			return err
		}
		printReceipt(receipt)
	case "loan":
		if err := need(args, 6, "loan <email> <product_id> <product_name> <amount> <payments> <account>"); err != nil {
			return err
		}
		application, err := parseApplication(args[1:])
		if err != nil {
			return err
		}
		receipt, err := a.LoanService.Apply(ctx, caller(args[0]), application)
		if err != nil {
			return err
		}
		printReceipt(receipt)
	case "loans":
		if err := need(args, 1, "loans <email>"); err != nil {
			return err
		}
		loans, err := a.LoanService.ListClientLoans(ctx, caller(args[0]))
		if err != nil {
			return err
		}
		for _, l := range loans {
			fmt.Printf("  product %d  owed %.2f  in %d payments\n", l.ProductID, l.Amount, l.Payments)
		}
	case "ledger":
		if err := need(args, 2, "ledger <email> <account>"); err != nil {
			return err
		}
		entries, err := a.TransferService.ListTransactions(ctx, caller(args[0]), args[1])
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("  %s  %-6s %12.2f  balance %12.2f  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.Direction, e.Amount, e.Balance, e.Description)
		}
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func caller(email string) identity.Identity {
	return identity.Identity{Email: email}
}

func need(args []string, n int, form string) error {
	if len(args) < n {
		return errors.New("usage: " + form)
	}
	return nil
}

// parseApplication reads product_id, product_name, amount, payments and account.
// A "-" leaves the field absent.
func parseApplication(args []string) (loan.Application, error) {
	application := loan.Application{Name: args[1], AccountNumber: args[4]}
	if args[0] != "-" {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return application, fmt.Errorf("invalid product id: %w", err)
		}
		application.ProductID = &id
	}
	if args[2] != "-" {
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return application, fmt.Errorf("invalid amount: %w", err)
		}
		application.Amount = &amount
	}
	if args[3] != "-" {
		payments, err := strconv.Atoi(args[3])
		if err != nil {
			return application, fmt.Errorf("invalid payments: %w", err)
		}
		application.Payments = &payments
	}
	if application.Name == "-" {
		application.Name = ""
	}
	return application, nil
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(f *os.File) (string, error) {
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		fmt.Print("Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}
	return readLine(f)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printAccounts(accounts []*account.Account) {
	for _, a := range accounts {
		fmt.Printf("  %s  %12.2f\n", a.Number, a.Balance)
	}
}

func printReceipt(r *domain.Receipt) {
	okColor.Printf("[%d] %s\n", r.Status, r.Message) //nolint:errcheck
}
