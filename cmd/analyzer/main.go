package main

import (
	"flag"
	"fmt"
	"os"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/app/drivers/logger"
	"claimsbridge-service/internal/app/services/core/priorauth"

	"github.com/goccy/go-json"
)

// analyzer checks a 278 QRE inquiry file for structural problems and prints
// the findings. Exits non-zero when the file is invalid so it can gate a
// partner onboarding pipeline.
func main() {
	var (
		jsonOutput     = flag.Bool("json", false, "print the report as JSON")
		failOnWarnings = flag.Bool("fail-on-warnings", false, "treat warnings as failures")
	)
	flag.Parse()

	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-json] [-fail-on-warnings] <file.edi>\n", os.Args[0])
		os.Exit(2)
	}

	path := flag.Arg(0)
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read %s: %v", path, err)
	}

	cfg := priorauth.DefaultQREConfig()
	cfg.FailOnWarnings = *failOnWarnings
	report := priorauth.AnalyzeQRE(string(raw), cfg)

	if *jsonOutput {
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("cannot marshal report: %v", err)
		}
		fmt.Println(string(encoded))
	} else {
		printReport(report)
	}

	if !report.Valid {
		os.Exit(1)
	}
}

func printReport(report priorauth.QREReport) {
	fmt.Printf("TR3 version: %s\n", report.TR3Version)
	fmt.Printf("Query method: %s\n", report.QueryMethod)
	fmt.Printf("Segments found: %d\n", len(report.SegmentsFound))
	fmt.Printf("Errors: %d  Warnings: %d  Info: %d\n", report.ErrorCount, report.WarningCount, report.InfoCount)
	for _, finding := range report.Findings {
		if finding.Segment != "" {
			fmt.Printf("  [%s] %s (%s): %s\n", finding.Severity, finding.Code, finding.Segment, finding.Message)
			continue
		}
		fmt.Printf("  [%s] %s: %s\n", finding.Severity, finding.Code, finding.Message)
	}
	if report.Valid {
		fmt.Println("Result: VALID")
	} else {
		fmt.Println("Result: INVALID")
	}
}
