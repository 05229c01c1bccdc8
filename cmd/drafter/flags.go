package main

import (
	"github.com/spf13/pflag"

	drafterlog "github.com/SMillerDev/drafter/log"
	"github.com/SMillerDev/drafter/profile"
)

func newPersistentFlagSet(logCfg *drafterlog.Config, profileCfg *profile.Config) *pflag.FlagSet {
	flags := pflag.NewFlagSet("drafter", pflag.ContinueOnError)

	logCfg.RegisterFlags(flags)
	profileCfg.RegisterFlags(flags)

	return flags
}
