package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/catalog/internal/auth"
)

// HashKeyCommand prints the bcrypt hash of an API key for AUTH_API_KEY_HASH.
type HashKeyCommand struct {
	Key  string
	Cost int

	In  io.Reader
	Out io.Writer
}

func NewHashKeyCommand() *HashKeyCommand {
	return &HashKeyCommand{In: os.Stdin, Out: os.Stdout}
}

func (cmd *HashKeyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)

	fs.StringVar(&cmd.Key, "key", "", "API key to hash (read from stdin when empty)")
	fs.IntVar(&cmd.Cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-key [-key <key>] [-cost <n>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a bcrypt hash suitable for AUTH_API_KEY_HASH.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  echo -n \"$API_KEY\" | %s hash-key\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Cost < bcrypt.MinCost || cmd.Cost > bcrypt.MaxCost {
		return fmt.Errorf("-cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (cmd *HashKeyCommand) Run() error {
	key := cmd.Key
	if key == "" {
		line, err := bufio.NewReader(cmd.In).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashAPIKey(key, cmd.Cost)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Out, hash)
	return nil
}
