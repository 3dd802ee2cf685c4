package manifest

import (
	"time"

	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/template"
	"github.com/voxelspace/mgcbgen/internal/utils"
)

// GeneratorOptions contains options for the generator
type GeneratorOptions struct {
	Source domain.Source
	Table  template.Table
	Output string
	Writer WriterOptions
	Logger *utils.Logger

	// OnFile, when set, is called for every traversed file before matching
	OnFile func(domain.AssetFile)
}

// Result summarises one generation run
type Result struct {
	Output   string         `json:"output" yaml:"output"`
	Entries  []domain.Entry `json:"entries" yaml:"entries"`
	Scanned  int            `json:"scanned" yaml:"scanned"`
	Matched  int            `json:"matched" yaml:"matched"`
	Skipped  int            `json:"skipped" yaml:"skipped"`
	Bytes    int64          `json:"bytes" yaml:"bytes"`
	DryRun   bool           `json:"dry_run" yaml:"dry_run"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
}

// CountByExt returns the number of entries per extension
func (r *Result) CountByExt() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Entries {
		counts[e.Ext]++
	}
	return counts
}
