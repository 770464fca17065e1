package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/mgo.v2"

	"rcbuf/rctree"
	"rcbuf/store"
)

const (
	exitFail      = 1
	exitUsage     = 2
	exitTruncated = 3
)

// line formats a structural record with ten fraction digits.
func line(r rctree.Record) string {
	if r.IsLeaf() {
		return fmt.Sprintf("%d(%.10e)", r.Label, r.Cap)
	}
	return fmt.Sprintf("(%.10e %.10e %d)", r.Left, r.Right, r.Inv)
}

// dump prints a delay stream, or a post-order structural stream when tree
// is set. Records decoded before a truncation are still printed.
func dump(w io.Writer, r io.Reader, tree bool) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if tree {
		records, err := rctree.ReadPost(r)
		for _, rec := range records {
			fmt.Fprintln(bw, line(rec))
		}
		return err
	}

	delays, err := rctree.ReadDelays(r)
	for _, d := range delays {
		fmt.Fprintf(bw, "%d %e\n", d.Label, d.Delay)
	}
	return err
}

// fetch prints a run saved in a mongo cache in the same formats.
func fetch(w io.Writer, server, cache, run string, tree bool) error {
	session, err := mgo.Dial(server)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := store.InitMgo(session, cache, false); err != nil {
		return err
	}
	defer func() {
		store.DoneMgo()
		store.WaitMgo()
	}()

	if run == "" {
		if run, err = store.LastRun(); err != nil {
			return err
		}
	}
	log.Println("Run:", run)

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if tree {
		records, err := store.LoadRecords(run)
		for _, rec := range records {
			fmt.Fprintln(bw, line(rec))
		}
		return err
	}

	delays, err := store.LoadDelays(run)
	for _, d := range delays {
		fmt.Fprintf(bw, "%d %e\n", d.Label, d.Delay)
	}
	return err
}

func main() {
	var server, cache, run string
	var tree bool

	flag.BoolVar(&tree, "tree", false, "input is a post-order structural stream")
	flag.StringVar(&server, "server", "localhost", "name of mongodb server")
	flag.StringVar(&cache, "cache", "", "name of cache to read a saved run from instead of a file")
	flag.StringVar(&run, "run", "", "id of the saved run. Latest if empty")

	flag.Parse()

	log.SetFlags(0)

	if cache != "" {
		if err := fetch(os.Stdout, server, cache, run, tree); err != nil {
			log.Println(err)
			os.Exit(exitFail)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bindump [-tree] <file>")
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Println(err)
		os.Exit(exitFail)
	}
	defer file.Close()

	if err := dump(os.Stdout, file, tree); err != nil {
		log.Println("malformed file:", err)
		if errors.Is(err, rctree.ErrTruncated) {
			os.Exit(exitTruncated)
		}
		os.Exit(exitFail)
	}
}
