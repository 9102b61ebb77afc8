// Copyright © 2019 Andrei Gubarev <agubarev@protonmail.com>

package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agubarev/groupsync/internal/core"
	"github.com/agubarev/groupsync/pkg/directory"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "groupsync",
	Short: "Synchronize storage platform access groups with the directory service and study registry.",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.groupsync.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logdir", "", "write logs into this directory instead of stdout/stderr only")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("logdir", rootCmd.PersistentFlags().Lookup("logdir"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".groupsync")
	}

	viper.SetEnvPrefix("groupsync")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

// coreConfig assembles the core configuration from viper
func coreConfig() core.Config {
	return core.Config{
		LDAP: directory.LDAPConfig{
			Host:          viper.GetString("ldap.host"),
			Port:          viper.GetInt("ldap.port"),
			BindDN:        viper.GetString("ldap.bind_dn"),
			BindPassword:  viper.GetString("ldap.bind_password"),
			GroupBaseDN:   viper.GetString("ldap.group_base_dn"),
			AccountBaseDN: viper.GetString("ldap.account_base_dn"),
		},
		RegistryDSN: viper.GetString("registry.dsn"),
		PlatformDSN: viper.GetString("platform.dsn"),
		Debug:       viper.GetBool("debug"),
		LogDir:      viper.GetString("logdir"),
	}
}
