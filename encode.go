package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The snapshot is persisted as JSONL, one record per line, human-readable and
// git-friendly. Every line carries a "record" discriminator: currency, card,
// recurrence, goal, or one of the transaction kinds. Field order within a line
// is stable so that re-encoding an unchanged ledger produces identical bytes.

const (
	recCurrency    = "currency"
	recCard        = "card"
	recRecurrence  = "recurrence"
	recGoal        = "goal"
	recIncome      = string(KindIncome)
	recExpense     = string(KindExpense)
	recCardPayment = string(KindCardPayment)
)

// encodeRecord writes one discriminated JSONL line.
func encodeRecord(w io.Writer, record string, v any) error {
	var obj jsonObjectWriter
	obj.Append("record", record)
	obj.EmbedFrom(v)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", record, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s record: %w", record, err)
	}
	return nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	return encodeRecord(w, string(tx.What()), tx)
}

// EncodeLedger reorders transactions by date and persists the whole snapshot
// to an io.Writer in JSONL format: currency first, then cards, recurrences,
// goals, and finally every transaction in chronological order. The sort is
// stable, meaning transactions on the same day maintain their original
// relative order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	decimal.MarshalJSONWithoutQuotes = true

	if l.currency != "" {
		var obj jsonObjectWriter
		obj.Append("record", recCurrency)
		obj.Append("code", l.currency)
		data, err := obj.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write currency record: %w", err)
		}
	}
	for i := range l.cards {
		if err := encodeRecord(w, recCard, l.cards[i]); err != nil {
			return err
		}
	}
	for i := range l.recurrences {
		if err := encodeRecord(w, recRecurrence, l.recurrences[i]); err != nil {
			return err
		}
	}
	for i := range l.goals {
		if err := encodeRecord(w, recGoal, l.goals[i]); err != nil {
			return err
		}
	}

	l.stableSort()
	for _, tx := range l.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL snapshot from an io.Reader, decodes each line
// into the appropriate record, and returns a sorted Ledger.
//
// Decoding is structural: card balances and installment states are restored
// as persisted, not recomputed.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	l := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(lineBytes), err)
		}

		var err error
		switch identifier.Record {
		case recCurrency:
			var c struct {
				Code string `json:"code"`
			}
			if err = json.Unmarshal(lineBytes, &c); err == nil {
				l.currency = c.Code
			}
		case recCard:
			var card Card
			if err = json.Unmarshal(lineBytes, &card); err == nil {
				l.cards = append(l.cards, card)
			}
		case recRecurrence:
			var rec Recurrence
			if err = json.Unmarshal(lineBytes, &rec); err == nil {
				l.recurrences = append(l.recurrences, rec)
			}
		case recGoal:
			var goal Goal
			if err = json.Unmarshal(lineBytes, &goal); err == nil {
				l.goals = append(l.goals, goal)
			}
		case recIncome:
			var tx Income
			if err = json.Unmarshal(lineBytes, &tx); err == nil {
				l.transactions = append(l.transactions, tx)
			}
		case recExpense:
			var tx Expense
			if err = json.Unmarshal(lineBytes, &tx); err == nil {
				l.transactions = append(l.transactions, tx)
			}
		case recCardPayment:
			var tx CardPayment
			if err = json.Unmarshal(lineBytes, &tx); err == nil {
				l.transactions = append(l.transactions, tx)
			}
		default:
			err = fmt.Errorf("unknown record type %q", identifier.Record)
		}
		if err != nil {
			return nil, fmt.Errorf("parse error in line %q: %w", string(lineBytes), err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	l.stableSort()
	return l, nil
}
