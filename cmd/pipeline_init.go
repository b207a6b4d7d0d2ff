package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/justicejet/defensepack/internal/completion"
	"github.com/justicejet/defensepack/internal/extract"
	"github.com/justicejet/defensepack/internal/pipeline"
	"github.com/justicejet/defensepack/internal/research"
	"github.com/justicejet/defensepack/pkg/exa"
)

// initPipeline validates cfg for mode and wires the Exa client, both
// research aggregators and the completion client into a Pipeline.
func initPipeline(mode string) (*pipeline.Pipeline, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	exaOpts := []exa.Option{exa.WithBaseURL(cfg.Exa.BaseURL)}
	if cfg.Exa.TimeoutSecs > 0 {
		exaOpts = append(exaOpts, exa.WithTimeout(time.Duration(cfg.Exa.TimeoutSecs)*time.Second))
	}
	exaClient := exa.NewClient(cfg.Exa.Key, exaOpts...)

	researcher := research.NewAggregator(exaClient, research.PackProfile(cfg.Research))
	searcher := research.NewAggregator(exaClient, research.SearchProfile(cfg.Search))

	completer, err := completion.NewFromConfig(cfg.Completion)
	if err != nil {
		return nil, eris.Wrap(err, "init completion client")
	}

	return pipeline.New(cfg, researcher, searcher, completer), nil
}

func initExtractor() (extract.Extractor, error) {
	ex, err := extract.NewExtractor(cfg.Extract)
	if err != nil {
		return nil, eris.Wrap(err, "init extractor")
	}
	return ex, nil
}
