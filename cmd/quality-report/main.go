// quality-report scores a collected CSV dataset along the five quality
// dimensions and writes the plain-text report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/crisislab/crisisnet/pkg/crisisnet/config"
	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/quality"
)

func main() {
	var (
		input   = flag.String("input", "", "Input CSV file (required)")
		cfgPath = flag.String("config", "", "Optional crisis config YAML for keyword relevance")
		crisis  = flag.String("crisis", "", "Crisis id from the config whose keywords to check")
		output  = flag.String("output", "", "Write the text report here instead of stdout")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	ds, err := dataset.LoadCSV(*input)
	if err != nil {
		log.Fatal("load dataset failed", "path", *input, "err", err)
	}

	var keywords []string
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal("load config failed", "path", *cfgPath, "err", err)
		}
		if *crisis != "" {
			ev, ok := cfg.Crisis(*crisis)
			if !ok {
				log.Fatal("unknown crisis id", "crisis", *crisis)
			}
			keywords = ev.Keywords()
		} else {
			for _, ev := range cfg.Crises {
				keywords = append(keywords, ev.Keywords()...)
			}
		}
	}

	report := quality.Validate(ds, keywords)
	text := quality.Render(report)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
			log.Fatal("write report failed", "path", *output, "err", err)
		}
		log.Info("report written", "path", *output, "score", fmt.Sprintf("%.1f", report.Overall), "rating", report.Rating)
		return
	}
	fmt.Print(text)
}
