package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rcbuf/rctree"
	"rcbuf/report"
)

func TestParseArgs(t *testing.T) {
	testcases := []struct {
		inp []string
		ok  bool
	}{
		{[]string{}, false},
		{[]string{"1e-2", "a", "b", "c", "d", "e", "f"}, false},
		{[]string{"x", "a", "b", "c", "d", "e", "f", "g"}, false},
		{[]string{"1e-2", "a", "b", "c", "d", "e", "f", "g"}, true},
	}

	for i, tc := range testcases {
		a, err := parseArgs(tc.inp)
		if (err == nil) != tc.ok {
			t.Errorf("Test %d: Expecting ok:%v. Got %v", i, tc.ok, err)
		}
		if tc.ok && (a.constraint != 1e-2 || a.postbinout != "g") {
			t.Errorf("Test %d: Unexpected args %+v", i, a)
		}
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	a := args{
		constraint: 10,
		invpath:    write(t, dir, "inv.txt", "1.0e-4 1.0e-4 1.0\n"),
		wirepath:   write(t, dir, "wire.txt", "1.0 1.0e-4\n"),
		treepath:   write(t, dir, "tree.txt", "1(1.0e-3)\n2(2.0e-3)\n(1000.0 500.0)\n"),
		preout:     filepath.Join(dir, "pre.txt"),
		delayout:   filepath.Join(dir, "delay.bin"),
		postout:    filepath.Join(dir, "post.txt"),
		postbinout: filepath.Join(dir, "post.bin"),
	}
	summaryp := filepath.Join(dir, "summary.yaml")
	metricsp := filepath.Join(dir, "metrics.prom")

	if err := run(a, summaryp, metricsp, "", "", false); err != nil {
		t.Fatal(err)
	}

	pre, err := os.ReadFile(a.preout)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(pre), "(1.000000e+03 5.000000e+02)\n") {
		t.Errorf("Unexpected pre-order dump %q", pre)
	}

	file, err := os.Open(a.delayout)
	if err != nil {
		t.Fatal(err)
	}
	delays, err := rctree.ReadDelays(file)
	file.Close()
	if err != nil || len(delays) != 2 {
		t.Errorf("Expecting 2 delay records. Got %v, %v", delays, err)
	}

	file, err = os.Open(a.postbinout)
	if err != nil {
		t.Fatal(err)
	}
	records, err := rctree.ReadPost(file)
	file.Close()
	if err != nil {
		t.Fatal(err)
	}

	post, err := os.ReadFile(a.postout)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(post), "\n"), "\n")
	if len(lines) != len(records) {
		t.Errorf("Expecting %d text lines. Got %d", len(records), len(lines))
	}
	for i, r := range records {
		if i < len(lines) && lines[i] != r.String() {
			t.Errorf("Line %d: Expected %q. Got %q.", i, r.String(), lines[i])
		}
	}

	file, err = os.Open(summaryp)
	if err != nil {
		t.Fatal(err)
	}
	s, err := report.Read(file)
	file.Close()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Satisfied || s.Stages != 3 || s.Fixes != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}

	metrics, err := os.ReadFile(metricsp)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(metrics), "rcbuf_inverters_inserted_total") {
		t.Errorf("Expecting inserted inverter counter in metrics dump")
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	a := args{
		constraint: 1,
		invpath:    filepath.Join(dir, "missing.txt"),
	}
	if err := run(a, "", "", "", "", false); !os.IsNotExist(err) {
		t.Errorf("Expecting a not-exist error. Got %v", err)
	}
}
