// Command picnicbench runs sign/verify timing across every parameter
// set and renders the results as an interactive bar chart, in the
// go-echarts idiom the teacher's Additionnals/plot_pacs_sweep.go uses
// for its own parameter sweeps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"Picnic2-Signature/measure"
	"Picnic2-Signature/measureutil"
	"Picnic2-Signature/params"
	"Picnic2-Signature/signature"
)

type benchRow struct {
	name      string
	signMS    float64
	verifyMS  float64
	sizeBytes int
}

func runOne(p *params.ParamSet) benchRow {
	kp, err := signature.GenerateKeyPair(p)
	if err != nil {
		log.Fatalf("%s: generate key pair: %v", p.Name, err)
	}
	message := []byte("picnicbench probe message")

	start := time.Now()
	sig, err := signature.Sign(kp, message)
	signElapsed := time.Since(start)
	if err != nil {
		log.Fatalf("%s: sign: %v", p.Name, err)
	}

	start = time.Now()
	if err := signature.Verify(p, kp.Public, message, sig); err != nil {
		log.Fatalf("%s: verify: %v", p.Name, err)
	}
	verifyElapsed := time.Since(start)

	return benchRow{
		name:      p.Name,
		signMS:    float64(signElapsed.Microseconds()) / 1000,
		verifyMS:  float64(verifyElapsed.Microseconds()) / 1000,
		sizeBytes: len(sig),
	}
}

func render(rows []benchRow, outPath string) error {
	page := components.NewPage().SetPageTitle("Picnic2 sign/verify benchmark")

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sign / verify latency by parameter set"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "milliseconds"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	names := make([]string, len(rows))
	signData := make([]opts.BarData, len(rows))
	verifyData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		names[i] = r.name
		signData[i] = opts.BarData{Value: r.signMS}
		verifyData[i] = opts.BarData{Value: r.verifyMS}
	}
	bar.SetXAxis(names).
		AddSeries("sign", signData).
		AddSeries("verify", verifyData)

	sizeBar := charts.NewBar()
	sizeBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Signature size by parameter set"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
	)
	sizeData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		sizeData[i] = opts.BarData{Value: r.sizeBytes}
	}
	sizeBar.SetXAxis(names).AddSeries("signature bytes", sizeData)

	page.AddCharts(bar, sizeBar)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

func main() {
	outPath := flag.String("out", "./picnicbench.html", "chart output path")
	withCounters := flag.Bool("counters", false, "print measure package byte counters after each run")
	flag.Parse()

	measure.Enabled = *withCounters

	rows := []benchRow{
		runOne(params.L1FS),
		runOne(params.L3FS),
		runOne(params.L5FS),
	}
	for _, r := range rows {
		fmt.Printf("%-6s sign=%.2fms verify=%.2fms size=%dB\n", r.name, r.signMS, r.verifyMS, r.sizeBytes)
	}

	if *withCounters {
		for k, v := range measureutil.SnapshotAndReset() {
			fmt.Printf("  %s = %d\n", k, v)
		}
	}

	if err := render(rows, *outPath); err != nil {
		log.Fatalf("render chart: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}
