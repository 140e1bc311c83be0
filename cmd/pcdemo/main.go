// Command pcdemo is a small terminal demo for the persist containers: it
// builds a list, set, and mapping from stdin lines (or a YAML config
// file) and prints their persistent and transient forms.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/persist/internal/config"
	"github.com/funvibe/persist/list"
	"github.com/funvibe/persist/ordmap"
	"github.com/funvibe/persist/set"
)

// demoConfig is the optional YAML shape accepted by `pcdemo -c <file>`:
//
//	items: [a, b, c]
type demoConfig struct {
	Items []string `yaml:"items"`
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-c config.yaml] [version]\n", os.Args[0])
}

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "version" {
		fmt.Println(config.Version)
		return
	}

	var items []string
	if len(os.Args) >= 3 && os.Args[1] == "-c" {
		cfg, err := loadConfig(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		items = cfg.Items
	} else if len(os.Args) > 1 {
		usage()
		os.Exit(1)
	} else {
		items = readLines(os.Stdin)
	}

	render(items)
}

func loadConfig(path string) (*demoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pcdemo: reading %s: %w", path, err)
	}
	var cfg demoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("pcdemo: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func readLines(f *os.File) []string {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return []string{"alpha", "bravo", "charlie"}
	}
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func render(items []string) {
	anyItems := make([]any, len(items))
	for i, v := range items {
		anyItems[i] = v
	}

	l := list.Of(anyItems...)
	s := set.Of(anyItems...)
	m := ordmap.Empty()
	mt := m.Transient()
	for i, v := range items {
		mt.Set(i, v)
	}
	m = mt.Persistent()

	fmt.Printf("list:      %s\n", l)
	fmt.Printf("list (t):  %s\n", l.Transient())
	fmt.Printf("set:       %s\n", s)
	fmt.Printf("set (t):   %s\n", s.Transient())
	fmt.Printf("map:       %s\n", m)
	fmt.Printf("map (t):   %s\n", m.Transient())
}
