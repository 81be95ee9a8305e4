package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	file     string
	rows     string
	datePath string
	amount   string
	descr    string
	category string
	card     string
	prefix   string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a bank JSON export" }
func (*importCmd) Usage() string {
	return `sisfin import -file <export.json> [-rows <path>] [-date <path>] [-amount <path>] [-m <path>] [-prefix <id-prefix>]

  Imports movements from a bank JSON export. The flags take JSONPath
  expressions locating the rows and, inside each row, the date, the amount and
  the description. A positive amount becomes an income, a negative one an
  expense (on the card given by -card, or in cash).

Usage Examples:
# Import a typical export with movements under $.data
$ sisfin import -file export.json -rows '$.data[*]' -date '$.date' -amount '$.amount'
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "JSON export to import.")
	f.StringVar(&c.rows, "rows", "$[*]", "JSONPath selecting the movement rows.")
	f.StringVar(&c.datePath, "date", "$.date", "JSONPath of the date inside a row.")
	f.StringVar(&c.amount, "amount", "$.amount", "JSONPath of the signed amount inside a row.")
	f.StringVar(&c.descr, "m", "$.description", "JSONPath of the description inside a row.")
	f.StringVar(&c.category, "c", "", "Category for every imported transaction.")
	f.StringVar(&c.card, "card", "", "Card id for imported expenses. Empty means cash.")
	f.StringVar(&c.prefix, "prefix", "import", "Prefix of the generated transaction ids.")
}

// extract evaluates a jsonpath on a row, unwrapping single-element lists.
func extract(path string, row any) (any, error) {
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	jrows, err := jsonpath.Get(c.rows, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating rows path %q: %v\n", c.rows, err)
		return subcommands.ExitFailure
	}
	rows, ok := jrows.([]any)
	if !ok {
		rows = []any{jrows}
	}

	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	imported := 0
	for i, row := range rows {
		tx, err := c.parseRow(i, row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error in row %d: %v\n", i, err)
			return subcommands.ExitFailure
		}
		if e, ok := tx.(ledger.Expense); ok {
			err = l.AddPurchase(e)
		} else {
			err = l.Append(tx)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing row %d: %v\n", i, err)
			return subcommands.ExitFailure
		}
		imported++
	}

	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d transactions from %s\n", imported, c.file)
	return subcommands.ExitSuccess
}

// parseRow turns one export row into a transaction.
func (c *importCmd) parseRow(i int, row any) (ledger.Transaction, error) {
	jdate, err := extract(c.datePath, row)
	if err != nil {
		return nil, err
	}
	sdate, ok := jdate.(string)
	if !ok {
		return nil, fmt.Errorf("date at %q is not a string: %v", c.datePath, jdate)
	}
	on, err := ledger.ParseDate(sdate)
	if err != nil {
		return nil, err
	}

	jamount, err := extract(c.amount, row)
	if err != nil {
		return nil, err
	}
	var amount ledger.Money
	switch v := jamount.(type) {
	case float64:
		amount = ledger.M(v)
	case string:
		if amount, err = ledger.ParseMoney(v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("amount at %q is not a number: %v", c.amount, jamount)
	}

	description := ""
	if jdescr, err := extract(c.descr, row); err == nil {
		description, _ = jdescr.(string)
	}

	id := fmt.Sprintf("%s-%s-%d", c.prefix, on.Format("20060102"), i)
	if amount.IsNegative() {
		e := ledger.NewExpense(id, on, amount.Abs(), description, c.category)
		e.CardID = c.card
		return e, nil
	}
	return ledger.NewIncome(id, on, amount, description, c.category), nil
}
