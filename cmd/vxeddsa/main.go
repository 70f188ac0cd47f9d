// Command vxeddsa generates Curve25519 key pairs and creates and checks
// VXEdDSA signatures from the command line.
//
// Every subcommand takes and prints hex. Results are written to stdout as one
// JSON object per line; logs and audit records go to stderr.
//
// # Usage
//
//	vxeddsa [-config FILE] [-log-level LEVEL] [-audit] <command> [flags]
//
//	vxeddsa keygen
//	vxeddsa pubkey -secret HEX
//	vxeddsa derive -ikm HEX [-info TEXT]
//	vxeddsa sign -secret HEX -message HEX [-nonce HEX]
//	vxeddsa verify -public HEX -message HEX -signature HEX
//	vxeddsa shared -secret HEX -peer HEX
//
// verify exits with status 1 when the signature is rejected. Usage errors
// exit with status 2.
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/canopy-network/canopy/lib/vxeddsa"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// command is one subcommand. It writes its JSON result to out.
type command func(s *vxeddsa.Signer, args []string, out *json.Encoder) error

var commands = map[string]command{
	"keygen": cmdKeygen,
	"pubkey": cmdPubkey,
	"derive": cmdDerive,
	"sign":   cmdSign,
	"verify": cmdVerify,
	"shared": cmdShared,
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vxeddsa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Path to YAML config file")
		logLevel   = fs.String("log-level", "", "Log level: debug, info, warn, error")
		audit      = fs.Bool("audit", false, "Log one audit record per operation")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: vxeddsa [-config FILE] [-log-level LEVEL] [-audit] <keygen|pubkey|derive|sign|verify|shared> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := loadConfiguration(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "audit":
			cfg.Audit = *audit
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return exitUsage
	}

	signer, err := cfg.newSigner(logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating signer: %v\n", err)
		return exitFail
	}

	logger.Debug("running command", "command", name)
	err = cmd(signer, fs.Args()[1:], json.NewEncoder(stdout))
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	case errors.Is(err, errRejected):
		logger.Debug("signature rejected", "command", name)
		return exitFail
	default:
		logger.Error("command failed", "command", name, "error", err)
		return exitFail
	}
}

// newFlagSet returns a subcommand flag set whose parse errors are returned
// instead of printed.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%s: %v: %w", fs.Name(), err, errUsage)
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("%s: unexpected arguments %v: %w", fs.Name(), fs.Args(), errUsage)
	}
	return nil
}

// decodeHexFlag decodes a hex flag value. An empty value is an error unless
// optional is set.
func decodeHexFlag(name, value string, optional bool) ([]byte, error) {
	if value == "" {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("-%s is required: %w", name, errUsage)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("-%s: invalid hex: %v: %w", name, err, errUsage)
	}
	return b, nil
}
