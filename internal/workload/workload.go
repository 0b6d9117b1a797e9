// Package workload provides the built-in reference workloads the bench CLI
// can run. Each workload is instrumented with benchkit counters so a run
// exercises counter routing end to end.
package workload

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"

	"github.com/MeKo-Tech/benchkit"
	"github.com/MeKo-Tech/benchkit/suite"
)

// Deterministic inputs, generated once. Workloads must not mutate them.
var (
	hashInput = make([]byte, 64*1024)
	sortInput = make([]int, 10000)
)

func init() {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic fixture, not crypto
	for i := range hashInput {
		hashInput[i] = byte(rng.Intn(256))
	}
	for i := range sortInput {
		sortInput[i] = rng.Int()
	}
}

type document struct {
	ID      int               `json:"id"`
	Title   string            `json:"title"`
	Tags    []string          `json:"tags"`
	Meta    map[string]string `json:"meta"`
	Flags   []bool            `json:"flags"`
	Balance float64           `json:"balance"`
}

func jsonRoundtrip(ctx context.Context) error {
	doc := document{
		ID:      42,
		Title:   "benchmark fixture",
		Tags:    []string{"alpha", "beta", "gamma", "delta"},
		Meta:    map[string]string{"origin": "builtin", "kind": "fixture"},
		Flags:   []bool{true, false, true},
		Balance: 1234.5678,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	benchkit.Incr(ctx, "documents")
	if err := benchkit.IncrN(ctx, "bytes", int64(len(data))); err != nil {
		return err
	}

	var out document
	return json.Unmarshal(data, &out)
}

func sha256Hash(ctx context.Context) error {
	sum := sha256.Sum256(hashInput)
	if sum == [32]byte{} {
		return fmt.Errorf("sha256: zero digest")
	}
	benchkit.Incr(ctx, "hashes")
	return benchkit.IncrN(ctx, "bytes", int64(len(hashInput)))
}

func sortInts(ctx context.Context) error {
	work := make([]int, len(sortInput))
	copy(work, sortInput)
	slices.Sort(work)
	if !slices.IsSorted(work) {
		return fmt.Errorf("sort: output not sorted")
	}
	return benchkit.IncrN(ctx, "elements", int64(len(work)))
}

func gzipCompress(ctx context.Context) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(hashInput); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := benchkit.IncrN(ctx, "bytes_in", int64(len(hashInput))); err != nil {
		return err
	}
	return benchkit.IncrN(ctx, "bytes_out", int64(buf.Len()))
}

var builtins = []suite.Workload{
	{Name: "json-roundtrip", Fn: jsonRoundtrip},
	{Name: "sha256", Fn: sha256Hash},
	{Name: "sort-ints", Fn: sortInts},
	{Name: "gzip", Fn: gzipCompress},
}

// Names returns the built-in workload names in registration order.
func Names() []string {
	names := make([]string, len(builtins))
	for i, w := range builtins {
		names[i] = w.Name
	}
	return names
}

// Lookup returns the built-in workload with the given name.
func Lookup(name string) (suite.Workload, bool) {
	for _, w := range builtins {
		if w.Name == name {
			return w, true
		}
	}
	return suite.Workload{}, false
}

// Register adds the named workloads to s; with no names, all built-ins are
// registered.
func Register(s *suite.Suite, names ...string) error {
	if len(names) == 0 {
		names = Names()
	}
	for _, name := range names {
		w, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("unknown workload %q (available: %v)", name, Names())
		}
		s.Add(w.Name, w.Fn)
	}
	return nil
}
