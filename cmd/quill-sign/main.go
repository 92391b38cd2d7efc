// quill-sign generates a DKIM-Signature header for a raw RFC 5322 message.
//
// The message is read from the file argument, or from stdin when no
// argument is given. The signing identity comes either from explicit
// --domain/--selector/--key flags (a domain with verified key material)
// or from a signing config file, in which case the fallback identity is
// used.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillmta/quill"
	"github.com/quillmta/quill/dkim"
)

var (
	configPath string
	keyFile    string
	domainName string
	selector   string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		slog.Error("signing failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quill-sign [message-file]",
		Short:         "Generate a DKIM-Signature header for a raw message",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "signing config file (YAML)")
	root.Flags().StringVarP(&keyFile, "key", "k", "", "PEM file with the domain's RSA signing key")
	root.Flags().StringVarP(&domainName, "domain", "d", "", "signing domain (d= tag)")
	root.Flags().StringVarP(&selector, "selector", "s", "", "selector for the domain key (s= tag)")

	return root
}

func run(cmd *cobra.Command, args []string) error {
	message, err := readMessage(args)
	if err != nil {
		return err
	}

	identity, err := resolveIdentity()
	if err != nil {
		return err
	}

	signer := dkim.Signer{Identity: identity}
	header, err := signer.Sign(message)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), header)
	return nil
}

func readMessage(args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading message: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading message from stdin: %w", err)
	}
	return data, nil
}

// resolveIdentity builds the signing identity from flags. Explicit
// domain flags model a domain with verified key material; otherwise the
// config file supplies the fallback identity.
func resolveIdentity() (dkim.SigningIdentity, error) {
	var domain *dkim.DomainRecord
	if domainName != "" {
		if keyFile == "" {
			return dkim.SigningIdentity{}, fmt.Errorf("--domain requires --key")
		}
		key, err := quill.LoadPrivateKey(keyFile)
		if err != nil {
			return dkim.SigningIdentity{}, err
		}
		domain = &dkim.DomainRecord{
			Name:           domainName,
			DKIMStatus:     dkim.StatusOK,
			DKIMKey:        key,
			DKIMIdentifier: selector,
		}
		return dkim.SelectIdentity(domain, dkim.FallbackConfig{})
	}

	if configPath == "" {
		return dkim.SigningIdentity{}, fmt.Errorf("either --domain/--key or --config is required")
	}
	cfg, err := quill.LoadSigningConfig(configPath)
	if err != nil {
		return dkim.SigningIdentity{}, err
	}
	key, err := quill.LoadPrivateKey(cfg.DKIMKeyFile)
	if err != nil {
		return dkim.SigningIdentity{}, err
	}
	return dkim.SelectIdentity(nil, dkim.FallbackConfig{
		ReturnPathHost: cfg.ReturnPathHost,
		SigningKey:     key,
	})
}
