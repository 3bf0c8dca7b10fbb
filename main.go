package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/config"
	"github.com/launchdarkly/tls-interop-tests/framework"
	"github.com/launchdarkly/tls-interop-tests/interoptests"
	"github.com/launchdarkly/tls-interop-tests/logging"
	"github.com/launchdarkly/tls-interop-tests/providers"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	params := &commandParams{}
	root := &cobra.Command{
		Use:   "tls-interop",
		Short: "Plan TLS interoperability tests between s2n and other TLS providers",
		// errors are reported by cobra, usage is only useful for flag mistakes
		SilenceUsage: true,
	}
	params.addFlags(root.PersistentFlags())
	root.AddCommand(
		newProvidersCmd(params),
		newEnvCmd(params),
		newCommandCmd(params),
		newPlanCmd(params),
	)
	return root
}

// setup loads the run configuration and discovers the environment. The returned logger is
// the run log; callers must Sync it.
func (c *commandParams) setup(cmd *cobra.Command) (config.RunConfig, *providers.Registry, *logging.ZapLogger, error) {
	logger, err := logging.NewZapLogger(c.debug || c.debugAll)
	if err != nil {
		return config.RunConfig{}, nil, nil, err
	}
	cfg, err := c.runConfig()
	if err != nil {
		logger.Sync()
		return config.RunConfig{}, nil, nil, err
	}
	env, err := c.discover(cmd.Context(), cfg)
	if err != nil {
		logger.Sync()
		return config.RunConfig{}, nil, nil, err
	}
	logger.Printf("environment: %s", env)
	return cfg, providers.NewRegistry(env), logger, nil
}

func newProvidersCmd(params *commandParams) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers and whether they can run in this environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, logger, err := params.setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			out := cmd.OutOrStdout()
			for _, id := range registry.IDs() {
				p, err := registry.Resolve(id)
				if err != nil {
					fmt.Fprintf(out, "%-14s unavailable: %s\n", id, err)
					continue
				}
				var modes []string
				for _, m := range []tlsdef.Mode{tlsdef.Client, tlsdef.Server} {
					if p.SupportsMode(m) {
						modes = append(modes, string(m))
					}
				}
				fmt.Fprintf(out, "%-14s %s\n", id, strings.Join(modes, ", "))
			}
			return nil
		},
	}
}

func newEnvCmd(params *commandParams) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the discovered test environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, logger, err := params.setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			env := registry.Environment()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "s2n libcrypto:     %s\n", env.S2NProviderVersion)
			fmt.Fprintf(out, "FIPS mode:         %t\n", env.FIPSMode)
			fmt.Fprintf(out, "openssl:           %s\n", env.OpenSSL)
			if env.OpenSSL102InstallDir.IsDefined() {
				fmt.Fprintf(out, "openssl-1.0.2 dir: %s\n", env.OpenSSL102InstallDir.StringValue())
			}
			return nil
		},
	}
}

func newCommandCmd(params *commandParams) *cobra.Command {
	var tc config.Case
	var ciphers []string
	var certDir string
	var host string
	cmd := &cobra.Command{
		Use:   "command PROVIDER client|server",
		Short: "Print the command line a provider would be started with",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := tlsdef.ParseMode(args[1])
			if err != nil {
				return err
			}
			run, registry, logger, err := params.setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			tc.Client, tc.Server = args[0], args[0]
			tc.Ciphers = ciphers
			if certDir != "" {
				run.CertDir = certDir
			}
			if host != "" {
				run.Host = host
			}
			client, server, err := tc.Configurations(run, 0)
			if err != nil {
				return err
			}
			cfg := client
			if mode == tlsdef.Server {
				cfg = server
			}

			inst, err := registry.NewInstance(args[0], cfg)
			if err != nil {
				return err
			}
			printInstance(cmd.OutOrStdout(), inst)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&host, "host", "", "host to connect to or listen on (default "+config.DefaultHost+")")
	fs.IntVar(&tc.Port, "port", 0, "port (default is the configured base port)")
	fs.StringVar(&tc.Protocol, "protocol", "", "protocol, e.g. TLSv1.2")
	fs.StringVar(&tc.Cipher, "cipher", "", "single cipher or s2n security policy")
	fs.StringSliceVar(&ciphers, "cipher-list", nil, "ordered cipher list")
	fs.StringVar(&tc.Curve, "curve", "", "curve, e.g. P-256")
	fs.StringVar(&tc.Signature, "signature", "", "signature scheme, e.g. RSA+SHA256")
	fs.StringVar(&tc.Certificate, "certificate", "", "certificate name, e.g. RSA_2048_SHA256")
	fs.StringVar(&certDir, "cert-dir", "", "directory containing the certificate files")
	fs.BoolVar(&tc.Insecure, "insecure", false, "client does not verify the server")
	fs.BoolVar(&tc.ClientAuth, "client-auth", false, "use client authentication")
	fs.BoolVar(&tc.UseSessionTicket, "session-ticket", false, "use session tickets")
	fs.StringVar(&tc.ServerName, "server-name", "", "client SNI server name")
	fs.StringArrayVar(&tc.ClientFlags, "client-flag", nil, "extra flag appended to the client command")
	fs.StringArrayVar(&tc.ServerFlags, "server-flag", nil, "extra flag appended to the server command")
	return cmd
}

func newPlanCmd(params *commandParams) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Check and synthesize every configured case without starting any process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, registry, logger, err := params.setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			out := cmd.OutOrStdout()

			unavailable := unavailableProviders(registry)
			warnRequiredUnavailable(logger, interoptests.RequiredProviders(run), unavailable)
			fmt.Fprintln(out)
			framework.PrintFilterDescription(out, params.filters, unavailable)

			logger.Infof("planning %d cases", len(run.Cases))
			testLogger := &ConsoleTestLogger{
				Out:                  out,
				DebugOutputOnFailure: params.debug || params.debugAll,
				DebugOutputOnSuccess: params.debugAll,
			}
			results, plan := interoptests.RunTestSuite(registry, run, params.filters.AsFilter, testLogger)

			fmt.Fprintln(out)
			for _, pc := range plan.Cases() {
				fmt.Fprintf(out, "[%s] (ready timeout %s)\n", pc.ID, pc.ReadyTimeout)
				printInstance(out, pc.Server)
				printInstance(out, pc.Client)
			}
			fmt.Fprintln(out)
			PrintResults(out, results)
			if !results.OK() {
				return errors.New("some tests failed")
			}
			return nil
		},
	}
}

func unavailableProviders(registry *providers.Registry) map[string]error {
	ret := make(map[string]error)
	for _, id := range registry.IDs() {
		if _, err := registry.Resolve(id); err != nil {
			ret[id] = err
		}
	}
	return ret
}

// warnRequiredUnavailable logs the unavailable providers that some case needs. Those cases
// will fail; unavailable providers that no case uses are only listed in the filter description.
func warnRequiredUnavailable(logger *logging.ZapLogger, required []string, unavailable map[string]error) {
	for _, id := range required {
		if err, ok := unavailable[id]; ok {
			logger.With("provider", id).Warnf("provider is required by the run file but unavailable: %s", err)
		}
	}
}

func printInstance(out io.Writer, inst *providers.Instance) {
	fmt.Fprintf(out, "  %s %s: %s\n", inst.Provider.ID(), inst.Mode(), inst.Invocation.Command)
	if env := inst.Invocation.EnvList(); len(env) != 0 {
		fmt.Fprintf(out, "    env: %s\n", strings.Join(env, " "))
	}
	if marker := inst.Readiness.Marker(); marker.IsDefined() {
		fmt.Fprintf(out, "    ready on: %q\n", marker.StringValue())
	}
	traits := inst.Invocation.Traits
	if traits.SendMarker.IsDefined() {
		fmt.Fprintf(out, "    send after: %q\n", traits.SendMarker.StringValue())
	}
}
