package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scipunch/freshpage/check"
	"github.com/scipunch/freshpage/config"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", config.DefaultPath(), "path to a TOML config")
	flag.Parse()

	conf, err := config.Read(cfgPath)
	if err != nil {
		log.Fatalf("failed to read config with %s", err)
	}

	f, err := os.Open(conf.PagePath)
	if err != nil {
		log.Fatalf("failed to open page at '%s' with %s", conf.PagePath, err)
	}
	defer f.Close()

	report, err := check.Run(f, conf)
	if err != nil {
		log.Fatalf("check run failed with %s", err)
	}

	for _, c := range report.Checks {
		if c.OK {
			fmt.Printf("  ok    %s\n", c.Name)
		} else {
			fmt.Printf("  FAIL  %s: %s\n", c.Name, c.Detail)
		}
	}
	total := len(report.Checks)
	fmt.Printf("%d/%d checks passed\n", total-report.Failed(), total)

	if !report.OK() {
		os.Exit(1)
	}
}
