package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/kaspad-aggregator/logger"
	"github.com/pkg/errors"
)

type commandConfig struct {
	Workers      int    `short:"w" long:"workers" description:"Number of concurrent transactions to simulate against the shared fixture" default:"4"`
	MaxValue     uint64 `short:"m" long:"maxvalue" description:"Upper bound for every demo aggregator" default:"1000"`
	StartValue   uint64 `short:"b" long:"basevalue" description:"Committed starting value seeded into the fixture" default:"100"`
	AggregatorV1 string `short:"k" long:"key" description:"Human-readable name hashed into the demo V1 aggregator's state key" default:"demo-aggregator"`
	LogLevel     string `long:"loglevel" description:"Log level (trace, debug, info, warn, error, critical, off)" default:"info"`
	LogFile      string `long:"logfile" description:"File to write logs to" default:"aggregatorctl.log"`
	ErrLogFile   string `long:"errlogfile" description:"File to write error-and-above logs to" default:"aggregatorctl_err.log"`
	DBFile       string `long:"dbfile" description:"If set, persist each worker's change-set summary to this bbolt database"`
}

func parseConfig() (*commandConfig, error) {
	cfg := &commandConfig{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if cfg.Workers <= 0 {
		return nil, errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.StartValue > cfg.MaxValue {
		return nil, errors.Errorf("basevalue %d may not exceed maxvalue %d", cfg.StartValue, cfg.MaxValue)
	}

	logger.InitLogRotators(cfg.LogFile, cfg.ErrLogFile)

	return cfg, nil
}
