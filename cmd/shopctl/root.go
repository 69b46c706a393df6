package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
	"github.com/Fausto-Grilo/VulnWebApp/localstore"
	"github.com/Fausto-Grilo/VulnWebApp/storefront"
	"github.com/spf13/cobra"
)

type shell struct {
	apiURL    string
	statePath string
	timeout   time.Duration

	client *apiclient.Client
	app    *storefront.App
	in     *bufio.Reader
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	sh := &shell{}

	root := &cobra.Command{
		Use:          "shopctl",
		Short:        "Browse the shop, manage a cart and check out",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return sh.init(cmd)
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&sh.apiURL, "api", envOr("SHOP_API", "http://localhost:4000"), "shop API base URL")
	flags.StringVar(&sh.statePath, "state", envOr("SHOP_STATE", defaultStatePath()), "file holding the session and cart")
	flags.DurationVar(&sh.timeout, "timeout", 15*time.Second, "per-request timeout")

	root.AddCommand(
		sh.loginCmd(),
		sh.logoutCmd(),
		sh.registerCmd(),
		sh.whoamiCmd(),
		sh.productsCmd(),
		sh.cartCmd(),
		sh.checkoutCmd(),
		sh.adminCmd(),
	)

	return root
}

func (sh *shell) init(cmd *cobra.Command) error {
	store, err := localstore.NewFileStore(sh.statePath)
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	sh.client = apiclient.New(sh.apiURL, apiclient.WithTimeout(sh.timeout))
	sh.app = storefront.NewApp(sh.client, store, storefront.DefaultOptions())
	sh.in = bufio.NewReader(cmd.InOrStdin())
	sh.out = cmd.OutOrStdout()

	sh.app.Notices.OnChange(func(msg string) {
		if msg != "" {
			fmt.Fprintln(sh.out, "🔔", msg)
		}
	})
	return nil
}

// prompt reads one line from stdin.
func (sh *shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.out, label)
	line, err := sh.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bestshop-state.json"
	}
	return filepath.Join(home, ".bestshop", "state.json")
}
