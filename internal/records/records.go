// Package records loads, normalizes and saves donor aid records.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/aidtrace/internal/model"
	"github.com/ppiankov/aidtrace/internal/rules"
)

// file is the wrapped form, {"records": [...]}
type file struct {
	Records []model.Record `json:"records" yaml:"records"`
}

// Load reads records from a .json, .yaml or .yml file. Both a bare list
// and a {"records": [...]} document are accepted.
func Load(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	recs, err := Decode(data, isYAML(path))
	if err != nil {
		return nil, eris.Wrapf(err, "decode %s", path)
	}
	return recs, nil
}

// Decode parses JSON (or YAML when asYAML is set) record data
func Decode(data []byte, asYAML bool) ([]model.Record, error) {
	unmarshal := json.Unmarshal
	if asYAML {
		unmarshal = yaml.Unmarshal
	}

	var list []model.Record
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped file
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, eris.Wrap(err, "records must be a list or an object with a records key")
	}
	return wrapped.Records, nil
}

// Save writes records as indented JSON, or YAML for .yaml/.yml paths
func Save(path string, recs []model.Record) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(recs)
	} else {
		data, err = json.MarshalIndent(recs, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "encode records")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Normalize fills missing buckets and rewrites months as YYYY-MM. Months
// that cannot be read are cleared.
func Normalize(recs []model.Record) []model.Record {
	for i := range recs {
		if recs[i].Bucket == "" {
			recs[i].Bucket = Categorize(recs[i].Description)
		}
		recs[i].Month = NormalizeMonth(recs[i].Month)
		recs[i].Donor = strings.TrimSpace(recs[i].Donor)
		if recs[i].Amount < 0 {
			recs[i].Amount = 0
		}
	}
	return recs
}

// Categorize picks a bucket from free text
func Categorize(text string) model.Bucket {
	if b, ok := rules.BucketRules.First(text); ok {
		return b
	}
	return model.BucketOther
}

var (
	yearMonthRx = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})(?:[-/.T ].*)?$`)
	monthYearRx = regexp.MustCompile(`^(\d{1,2})[-/.](\d{4})$`)
)

// NormalizeMonth accepts YYYY-MM, YYYY-MM-DD, YYYY/MM, MM/YYYY and
// timestamps, returning YYYY-MM or "".
func NormalizeMonth(s string) string {
	s = strings.TrimSpace(s)
	var year, month string
	if m := yearMonthRx.FindStringSubmatch(s); m != nil {
		year, month = m[1], m[2]
	} else if m := monthYearRx.FindStringSubmatch(s); m != nil {
		year, month = m[2], m[1]
	} else {
		return ""
	}

	mm, _ := strconv.Atoi(month)
	if mm < 1 || mm > 12 {
		return ""
	}
	return fmt.Sprintf("%s-%02d", year, mm)
}
