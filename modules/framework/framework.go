// Package framework builds the records of host-provided components: the
// event source, services and process options.
package framework

import (
	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

const (
	SourceLabel = "source"
	TimingLabel = "Timing"
)

// SourceParams configures a PoolSource over fileNames. Duplicate checking
// is disabled.
func SourceParams(fileNames []string) *pset.PSet {
	return pset.MustDefine("PoolSource",
		pset.Param("fileNames", pset.Strings(fileNames...).Untracked()),
		pset.Param("secondaryFileNames", pset.Strings().Untracked()),
		pset.Param("duplicateCheckMode", pset.String("noDuplicateCheck").Untracked()),
	)
}

// TimingParams enables the timing service in summary mode.
var TimingParams = pset.MustDefine("Timing",
	pset.Param("summaryOnly", pset.Bool(true).Untracked()),
)

// Options are the process-wide options of the test harness.
var Options = pset.MustDefine("options",
	pset.Param("wantSummary", pset.Bool(false).Untracked()),
)

// DeclareSource declares a PoolSource reading fileNames under SourceLabel.
func DeclareSource(r *registry.Registry, fileNames []string) error {
	_, err := r.Declare(SourceLabel, component.PoolSource, SourceParams(fileNames))
	return err
}

// DeclareTiming declares the timing service under TimingLabel.
func DeclareTiming(r *registry.Registry) error {
	_, err := r.Declare(TimingLabel, component.Timing, TimingParams)
	return err
}
