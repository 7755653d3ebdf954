package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

// Compares the list endpoints of the development stub with a real backend.
// Bodies differ by nature, so only the response shape is checked: status,
// envelope or bare array, and the field names of the first item.

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/api/die-cuts?page=0&size=5", Critical: true},
	{Method: http.MethodGet, Path: "/api/die-cuts?status=ACTIVE&sort=dieNumber,asc", Critical: true},
	{Method: http.MethodGet, Path: "/api/raw-materials/search?page=0&size=5&sort=id,desc", Critical: true},
	{Method: http.MethodGet, Path: "/api/inks", Critical: false},
	{Method: http.MethodGet, Path: "/api/die-cuts/999999", Critical: false},
}

type shape struct {
	Status int
	Kind   string
	Fields []string
}

type comparison struct {
	Target  target
	Stub    shape
	Backend shape
	Error   error
}

func (c comparison) matches() bool {
	return c.Error == nil &&
		c.Stub.Status == c.Backend.Status &&
		c.Stub.Kind == c.Backend.Kind &&
		strings.Join(c.Stub.Fields, ",") == strings.Join(c.Backend.Fields, ",")
}

func main() {
	var (
		stubBase    string
		backendBase string
		targetsPath string
		timeout     time.Duration
	)

	pflag.StringVar(&stubBase, "stub-base", "http://localhost:8080", "inventory stub base URL")
	pflag.StringVar(&backendBase, "backend-base", "http://localhost:9000", "inventory backend base URL")
	pflag.StringVar(&targetsPath, "targets", "", "optional JSON targets file")
	pflag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	pflag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	var comparisons []comparison
	breaking, optional := 0, 0
	for _, t := range targets {
		comp := compareTarget(client, stubBase, backendBase, t)
		if !comp.matches() {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(os.Stdout, comparisons)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func compareTarget(client *http.Client, stubBase, backendBase string, tgt target) comparison {
	comp := comparison{Target: tgt}
	var err error
	if comp.Stub, err = fetchShape(client, stubBase, tgt); err != nil {
		comp.Error = fmt.Errorf("stub request failed: %w", err)
		return comp
	}
	if comp.Backend, err = fetchShape(client, backendBase, tgt); err != nil {
		comp.Error = fmt.Errorf("backend request failed: %w", err)
	}
	return comp
}

func fetchShape(client *http.Client, base string, tgt target) (shape, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return shape{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return shape{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return shape{}, err
	}
	kind, fields := describe(body)
	return shape{Status: resp.StatusCode, Kind: kind, Fields: fields}, nil
}

// describe classifies a body as envelope, array, object or other and lists
// the field names of the first listed item.
func describe(body []byte) (string, []string) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "other", nil
	}
	switch val := v.(type) {
	case []any:
		return "array", firstItemFields(val)
	case map[string]any:
		if content, ok := val["content"].([]any); ok {
			return "envelope", firstItemFields(content)
		}
		return "object", keys(val)
	}
	return "other", nil
}

func firstItemFields(items []any) []string {
	if len(items) == 0 {
		return nil
	}
	if obj, ok := items[0].(map[string]any); ok {
		return keys(obj)
	}
	return nil
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func printReport(w io.Writer, results []comparison) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Result", "Target", "Stub", "Backend", "Critical"})
	table.SetAutoWrapText(false)
	for _, res := range results {
		result := "OK"
		switch {
		case res.Error != nil:
			result = "ERROR"
		case !res.matches():
			result = "DIFF"
		}
		table.Append([]string{
			result,
			res.Target.Method + " " + res.Target.Path,
			describeShape(res.Stub),
			describeShape(res.Backend),
			strconv.FormatBool(res.Target.Critical),
		})
	}
	table.Render()
	for _, res := range results {
		if res.Error != nil {
			fmt.Fprintf(w, "%s: %v\n", res.Target.Path, res.Error)
		}
	}
}

func describeShape(s shape) string {
	if s.Status == 0 {
		return "-"
	}
	return fmt.Sprintf("%d %s [%s]", s.Status, s.Kind, strings.Join(s.Fields, ","))
}
