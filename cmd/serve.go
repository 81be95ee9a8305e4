package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
	"github.com/gorilla/mux"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "expose the ledger as a read-only JSON API" }
func (*serveCmd) Usage() string {
	return `sisfin serve [-addr <host:port>]

  Serves a read-only JSON view of the ledger: cards, transactions, summary
  and projection. The snapshot is re-read on every request, so the API always
  reflects the file on disk. There is no remote mutation by design.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:7468", "Address to listen on.")
}

// withLedger loads the snapshot and hands it to the handler.
func withLedger(h func(http.ResponseWriter, *http.Request, *ledger.Ledger)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := DecodeLedger()
		if err != nil {
			log.WithError(err).Error("cannot load ledger")
			http.Error(w, "cannot load ledger", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		h(w, r, l)
	}
}

func handleCards(w http.ResponseWriter, _ *http.Request, l *ledger.Ledger) {
	cards := []*ledger.Card{}
	for c := range l.Cards() {
		cards = append(cards, c)
	}
	json.NewEncoder(w).Encode(cards)
}

func handleTransactions(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	filter := ledger.AcceptAll
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter = ledger.ByKind(ledger.Kind(kind))
	}
	txs := []ledger.Transaction{}
	for _, tx := range l.Transactions(filter) {
		txs = append(txs, tx)
	}
	json.NewEncoder(w).Encode(txs)
}

func handleSummary(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	on := ledger.Today()
	if d := r.URL.Query().Get("d"); d != "" {
		var err error
		if on, err = ledger.ParseDate(d); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s := l.PeriodSummary(ledger.Monthly.Range(on))
	json.NewEncoder(w).Encode(map[string]any{
		"from":        s.Range.From,
		"to":          s.Range.To,
		"income":      s.Income,
		"expense":     s.Expense,
		"balance":     s.Balance,
		"savingsRate": s.SavingsRate,
		"cash":        l.AvailableCash(s.Range.To),
		"cardDebt":    l.TotalCardDebt(),
	})
}

func handleProjection(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	months := 6
	if m := r.URL.Query().Get("months"); m != "" {
		if _, err := fmt.Sscanf(m, "%d", &months); err != nil {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}
	}
	json.NewEncoder(w).Encode(l.Project(ledger.Today(), months, nil))
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r := mux.NewRouter()
	r.HandleFunc("/cards", withLedger(handleCards)).Methods("GET")
	r.HandleFunc("/transactions", withLedger(handleTransactions)).Methods("GET")
	r.HandleFunc("/summary", withLedger(handleSummary)).Methods("GET")
	r.HandleFunc("/projection", withLedger(handleProjection)).Methods("GET")

	server := &http.Server{
		Addr:         c.addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", c.addr).Info("serving read-only API")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
