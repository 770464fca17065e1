package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/mgo.v2"

	"rcbuf/buffer"
	"rcbuf/params"
	"rcbuf/rctree"
	"rcbuf/report"
	"rcbuf/store"
)

const usage = `usage: rcbuf [flags] <constraint> <inverter params> <wire params> <tree>
             <pre out> <delay out> <post out> <post bin out>`

const (
	exitFail  = 1
	exitUsage = 2
)

type args struct {
	constraint float64
	invpath    string
	wirepath   string
	treepath   string
	preout     string
	delayout   string
	postout    string
	postbinout string
}

func parseArgs(pos []string) (a args, err error) {
	if len(pos) != 8 {
		return a, fmt.Errorf("expecting 8 arguments, got %d", len(pos))
	}
	a.constraint, err = strconv.ParseFloat(pos[0], 64)
	if err != nil {
		return a, fmt.Errorf("bad time constraint %q", pos[0])
	}
	a.invpath, a.wirepath, a.treepath = pos[1], pos[2], pos[3]
	a.preout, a.delayout, a.postout, a.postbinout = pos[4], pos[5], pos[6], pos[7]
	return a, nil
}

func loadParams(a args) (params.Params, error) {
	file, err := os.Open(a.invpath)
	if err != nil {
		return params.Params{}, err
	}
	defer file.Close()

	inv, err := params.LoadInverter(a.invpath, file)
	if err != nil {
		return params.Params{}, err
	}

	file, err = os.Open(a.wirepath)
	if err != nil {
		return params.Params{}, err
	}
	defer file.Close()

	wire, err := params.LoadWire(a.wirepath, file)
	if err != nil {
		return params.Params{}, err
	}

	p := params.New(inv, wire, a.constraint)
	return p, p.Validate()
}

func loadTree(path string, p params.Params) (*rctree.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return rctree.Parse(path, file, p)
}

// create opens path for writing and hands it to write.
func create(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

func writePost(a args, root *rctree.Node) error {
	bin, err := os.Create(a.postbinout)
	if err != nil {
		return err
	}

	err = create(a.postout, func(w io.Writer) error {
		return rctree.WritePost(w, bin, root)
	})
	if cerr := bin.Close(); err == nil {
		err = cerr
	}
	return err
}

func main() {
	var logp, summaryp, metricsp, server, cache string
	var debug, drop bool

	// Command line switches ///////////////////////////////////////////////////

	flag.StringVar(&logp, "log", "", "path to file where log messages should be redirected")
	flag.StringVar(&summaryp, "summary", "", "path to write a yaml run summary")
	flag.StringVar(&metricsp, "metrics", "", "path to write prometheus metrics in text format")
	flag.StringVar(&server, "server", "localhost", "name of mongodb server")
	flag.StringVar(&cache, "cache", "", "name of cache to save the run to. Not saved if empty")

	flag.BoolVar(&debug, "debug", false, "enable debug mode")
	flag.BoolVar(&drop, "drop", false, "drop earlier runs from the cache")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	// Set log flags ///////////////////////////////////////////////////////////

	log.SetFlags(0)
	if debug {
		log.SetFlags(log.Lshortfile)
	}

	// Check for arguments /////////////////////////////////////////////////////

	a, err := parseArgs(flag.Args())
	if err != nil {
		log.Println(err)
		flag.Usage()
		os.Exit(exitUsage)
	}

	// If a log file is specified redirect log messages to it; stderr otherwise

	if logp != "" {
		logw, err := os.Create(logp)
		if err != nil {
			log.Fatal(err)
		}
		defer logw.Close()
		log.SetOutput(logw)
	}

	if err := run(a, summaryp, metricsp, server, cache, drop); err != nil {
		log.Println(err)
		os.Exit(exitFail)
	}
}

func run(a args, summaryp, metricsp, server, cache string, drop bool) error {
	// Load parameters and tree ////////////////////////////////////////////////

	p, err := loadParams(a)
	if err != nil {
		return err
	}
	log.Println("Params:", p)

	root, err := loadTree(a.treepath, p)
	if err != nil {
		return err
	}

	if err := create(a.preout, func(w io.Writer) error {
		return rctree.WritePre(w, root)
	}); err != nil {
		return err
	}

	// Elmore analysis /////////////////////////////////////////////////////////

	rctree.Accumulate(root)

	if err := create(a.delayout, func(w io.Writer) error {
		return rctree.WriteDelays(w, root, p)
	}); err != nil {
		return err
	}
	delays := rctree.Delays(root, p)

	// Buffer insertion ////////////////////////////////////////////////////////

	start := time.Now()
	res := buffer.Insert(root, p)
	log.Printf("Inserted %d stage and %d polarity inverters. Elapsed: %v",
		res.Stages, res.Fixes, time.Since(start))

	if !res.Satisfied() {
		log.Printf("warning: %d stages left above the time constraint %e", res.Unmet, p.TimeConstraint)
	}

	if err := writePost(a, res.Root); err != nil {
		return err
	}

	// Reports /////////////////////////////////////////////////////////////////

	summary := report.New(a.treepath, root, delays, res, p)
	log.Printf("Run %s: %d leaves, max delay %e", summary.Run, summary.Leaves, summary.MaxDelay)
	log.Printf("Delays per decade:\n%s", report.DelayHistogram(delays))

	if summaryp != "" {
		if err := create(summaryp, summary.Write); err != nil {
			return err
		}
	}

	if metricsp != "" {
		if err := prometheus.WriteToTextfile(metricsp, prometheus.DefaultGatherer); err != nil {
			return err
		}
	}

	if cache != "" {
		return save(server, cache, drop, summary, delays, rctree.PostRecords(res.Root))
	}
	return nil
}

func save(server, cache string, drop bool, s report.Summary, delays []rctree.Delay, records []rctree.Record) error {
	session, err := mgo.Dial(server)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := store.InitMgo(session, cache, drop); err != nil {
		return err
	}

	log.Println("Saving run to cache", cache)
	store.Save(s, delays, records)

	store.DoneMgo() // Signal no more mongo insert jobs
	return store.WaitMgo()
}
