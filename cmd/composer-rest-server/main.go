/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// composer-rest-server exposes a deployed business network as a REST API.
// Routes are generated from the network's model on startup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hyperledger/composer-sdk-go/pkg/client"
	_ "github.com/hyperledger/composer-sdk-go/pkg/connector/embedded"
	"github.com/hyperledger/composer-sdk-go/pkg/connector/profile"
	"github.com/hyperledger/composer-sdk-go/pkg/core/config"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
	"github.com/hyperledger/composer-sdk-go/pkg/rest"
)

var logger = logging.NewLogger("composer/rest")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newConfig returns the command's settings store. Flags with dashes map to
// environment variables with underscores, so --enroll-id is COMPOSER_ENROLL_ID.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("composer")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	v := newConfig()

	cmd := &cobra.Command{
		Use:          "composer-rest-server",
		Short:        "Generate a REST API for a deployed business network.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v, cmd.Flags())
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "SDK configuration file")
	flags.StringP("card-store", "s", defaultStorePath(), "connection profile store directory")
	flags.StringP("profile", "p", "", "connection profile name")
	flags.StringP("network", "n", "", "business network identifier")
	flags.StringP("enroll-id", "i", "", "enrollment ID of the identity to use")
	flags.StringP("enroll-secret", "w", "", "enrollment secret of the identity to use")
	flags.StringP("address", "a", ":3000", "listen address")
	flags.StringP("loglevel", "l", "", "log level (debug, info, warning, error, critical)")
	for _, name := range []string{"config", "card-store", "profile", "network", "enroll-id", "enroll-secret", "address", "loglevel"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".composer"
	}
	return home + "/.composer"
}

func serve(ctx context.Context, v *viper.Viper, flags *pflag.FlagSet) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		if err := applyConfigFile(v, flags, cfgFile); err != nil {
			return err
		}
	}
	if level := v.GetString("loglevel"); level != "" {
		parsed, err := logging.LogLevel(level)
		if err != nil {
			return err
		}
		logging.SetLevel(parsed, "")
	}
	profileName := v.GetString("profile")
	networkID := v.GetString("network")
	if profileName == "" || networkID == "" {
		return errors.New("a connection profile and business network must be specified")
	}

	manager, err := profile.NewManager(v.GetString("card-store"))
	if err != nil {
		return err
	}
	bnc := client.New(manager)
	connectionProfile, err := manager.Load(profileName)
	if err != nil {
		return err
	}
	definition, err := bnc.Connect(ctx, connectionProfile, networkID,
		v.GetString("enroll-id"), v.GetString("enroll-secret"))
	if err != nil {
		return err
	}
	defer bnc.Disconnect()
	logger.Infof("connected to business network %s", definition.Identifier())

	server, err := rest.New(bnc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, v.GetString("address"))
}

// applyConfigFile fills in settings not given on the command line from the
// SDK configuration file. Loading the file also applies its logging level.
func applyConfigFile(v *viper.Viper, flags *pflag.FlagSet, name string) error {
	backend, err := config.FromFile(name)()
	if err != nil {
		return err
	}
	keys := map[string]string{
		"card-store":    "client.cardstore",
		"profile":       "client.profile",
		"network":       "client.network",
		"enroll-id":     "client.enrollment.id",
		"enroll-secret": "client.enrollment.secret",
		"address":       "rest.address",
	}
	for flag, key := range keys {
		if flags.Changed(flag) {
			continue
		}
		if raw, ok := backend.Lookup(key); ok {
			v.Set(flag, raw)
		}
	}
	return nil
}
