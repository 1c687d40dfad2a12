// Package bench is the benchmark/result tabulator: it times algorithm
// runs over test cases and renders the results as a table or JSON.
package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// Result is one algorithm-run measurement.
type Result struct {
	File       string
	Algorithm  string
	Cache      string
	InputSize  int
	OutputSize int
	Count      int
	Elapsed    time.Duration
}

// ReductionRatio is the fraction of the input removed; a zero-size
// input counts as fully reduced.
func (r Result) ReductionRatio() float64 {
	if r.InputSize == 0 {
		return 1.0
	}
	return float64(r.InputSize-r.OutputSize) / float64(r.InputSize)
}

// record is the wire shape. The JSON key names are the stable surface
// downstream tooling reads; renaming a key here is a breaking change.
type record struct {
	File           string  `json:"File"`
	Algorithm      string  `json:"Algorithm"`
	Cache          string  `json:"Cache"`
	InputSize      int     `json:"Input Size"`
	OutputSize     int     `json:"Output Size"`
	ReductionRatio float64 `json:"Reduction Ratio"`
	Count          int     `json:"Count"`
	Time           float64 `json:"Time"`
}

func (r Result) toRecord() record {
	return record{
		File:           r.File,
		Algorithm:      r.Algorithm,
		Cache:          r.Cache,
		InputSize:      r.InputSize,
		OutputSize:     r.OutputSize,
		ReductionRatio: r.ReductionRatio(),
		Count:          r.Count,
		Time:           r.Elapsed.Seconds(),
	}
}

func (rec record) toResult() Result {
	return Result{
		File:       rec.File,
		Algorithm:  rec.Algorithm,
		Cache:      rec.Cache,
		InputSize:  rec.InputSize,
		OutputSize: rec.OutputSize,
		Count:      rec.Count,
		Elapsed:    time.Duration(rec.Time * float64(time.Second)),
	}
}

// ResultCollection accumulates Result records and knows how to
// serialise, persist, and tabulate them.
type ResultCollection struct {
	results []Result
}

func NewResultCollection() *ResultCollection {
	return &ResultCollection{}
}

func (rc *ResultCollection) Add(r Result) {
	rc.results = append(rc.results, r)
}

func (rc *ResultCollection) Len() int {
	return len(rc.results)
}

func (rc *ResultCollection) Results() []Result {
	return append([]Result(nil), rc.results...)
}

func (rc *ResultCollection) ToJSON() ([]byte, error) {
	records := make([]record, len(rc.results))
	for i, r := range rc.results {
		records[i] = r.toRecord()
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal result collection")
	}
	return data, nil
}

func LoadResultCollection(path string) (*ResultCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read results file %s", path)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decode results file %s", path)
	}
	rc := NewResultCollection()
	for _, rec := range records {
		rc.results = append(rc.results, rec.toResult())
	}
	return rc, nil
}

func (rc *ResultCollection) Store(path string) error {
	data, err := rc.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write results file %s", path)
	}
	return nil
}

var columns = []string{"File", "Algorithm", "Cache", "InputSize", "OutputSize", "ReductionRatio", "Count", "Time"}

// header turns a Go field name into a display header ("InputSize" ->
// "Input Size").
func header(field string) string {
	words := strings.Fields(strcase.ToDelimited(field, ' '))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// String renders the collection as an aligned table.
func (rc *ResultCollection) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = header(c)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, r := range rc.results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\t%d\t%.3f\n",
			r.File, r.Algorithm, r.Cache, r.InputSize, r.OutputSize, r.ReductionRatio(), r.Count, r.Elapsed.Seconds())
	}

	w.Flush()
	return sb.String()
}
