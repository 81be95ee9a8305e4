package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"
)

// The PIN gate. The bcrypt hash of the PIN lives in the OS keyring; the PIN
// itself is supplied per invocation through SISFIN_PIN and verified against
// the hash before any sealed snapshot is touched.

const (
	keyringService = "sisfin"
	keyringUser    = "pin-hash"
)

// pinIsSet reports whether a PIN hash is stored in the keyring.
func pinIsSet() bool {
	_, err := keyring.Get(keyringService, keyringUser)
	return err == nil
}

// sessionPIN returns the verified PIN of the current invocation.
func sessionPIN() (string, error) {
	hash, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no PIN configured, run 'sisfin pin -set': %w", err)
	}
	pin := os.Getenv("SISFIN_PIN")
	if pin == "" {
		return "", errors.New("ledger is protected, set SISFIN_PIN")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) != nil {
		return "", errors.New("wrong PIN")
	}
	return pin, nil
}

type pinCmd struct {
	set    bool
	remove bool
}

func (*pinCmd) Name() string     { return "pin" }
func (*pinCmd) Synopsis() string { return "protect the ledger snapshot with a PIN" }
func (*pinCmd) Usage() string {
	return `sisfin pin [-set | -remove]

  Manages the PIN protecting the ledger file. With a PIN set, the snapshot is
  stored compressed and encrypted, and every command requires SISFIN_PIN.
  The PIN is taken from SISFIN_PIN; only its bcrypt hash is kept, in the OS
  keyring.
`
}

func (c *pinCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.set, "set", false, "Set (or change) the PIN from SISFIN_PIN.")
	f.BoolVar(&c.remove, "remove", false, "Remove the PIN and store the snapshot in plain text again.")
}

func (c *pinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.set:
		return c.executeSet()
	case c.remove:
		return c.executeRemove()
	default:
		if pinIsSet() {
			fmt.Println("A PIN is set; the ledger snapshot is encrypted.")
		} else {
			fmt.Println("No PIN is set; the ledger snapshot is plain text.")
		}
		return subcommands.ExitSuccess
	}
}

func (c *pinCmd) executeSet() subcommands.ExitStatus {
	pin := os.Getenv("SISFIN_PIN")
	if len(pin) < 4 {
		fmt.Fprintln(os.Stderr, "Error: SISFIN_PIN must hold the new PIN (4 characters minimum).")
		return subcommands.ExitUsageError
	}

	// Re-encode under the new PIN: load with the old protection first.
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing PIN: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := keyring.Set(keyringService, keyringUser, string(hash)); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing PIN hash in keyring: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeLedger(l); err != nil {
		fmt.Fprintf(os.Stderr, "Error re-encrypting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("PIN set; the ledger snapshot is now encrypted.")
	return subcommands.ExitSuccess
}

func (c *pinCmd) executeRemove() subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing PIN hash from keyring: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("PIN removed; the ledger snapshot is plain text again.")
	return subcommands.ExitSuccess
}
