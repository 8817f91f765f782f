package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"disruption_dataset/pkg/core/edgar"
	"disruption_dataset/pkg/core/match"
	"disruption_dataset/pkg/core/pipeline"
	"disruption_dataset/pkg/core/wiki"
)

// Defaults for the collection surface.
const (
	defaultMaxCompanies = 5000
	defaultYearFrom     = 1995
	defaultYearTo       = 2025
)

// resolveYears returns the explicit year list when given, otherwise the
// default inclusive range.
func resolveYears(years []int) ([]int, error) {
	if len(years) > 0 {
		for _, y := range years {
			if y < 1000 || y > 9999 {
				return nil, fmt.Errorf("implausible year %d", y)
			}
		}
		return years, nil
	}
	all := make([]int, 0, defaultYearTo-defaultYearFrom+1)
	for y := defaultYearFrom; y <= defaultYearTo; y++ {
		all = append(all, y)
	}
	return all, nil
}

func matchMode(strict bool) match.Mode {
	if strict {
		return match.ModeWholeWord
	}
	return match.ModeSubstring
}

// newOrchestrator assembles the live pipeline from the flag surface.
func newOrchestrator(minInterval time.Duration, strict bool) *pipeline.Orchestrator {
	client := edgar.NewClient(edgar.WithMinInterval(minInterval))
	scraper := wiki.NewScraper()

	o := pipeline.NewOrchestrator(client, scraper)
	o.OutDir = viper.GetString("output.dir")
	o.MatchMode = matchMode(strict)
	return o
}
