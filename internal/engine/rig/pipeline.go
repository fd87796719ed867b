package rig

import (
	"go.uber.org/zap"

	"github.com/Faultbox/packlens/internal/logger"
)

// log returns the rig logger, resolved per call so it follows logger.Init.
func log() *zap.Logger {
	return logger.Named("rig")
}

// Options configures Prepare.
type Options struct {
	// EntityID selects extracted hierarchy data; falls back to Model.EntityID.
	EntityID    string
	Hierarchies HierarchySource
	// Tuning overrides DefaultTuning field by field; zero fields keep the default.
	Tuning Tuning
}

// Result describes what Prepare derived and changed.
type Result struct {
	Archetype  Archetype
	References *References
	Plan       HierarchyPlan
	Report     *ReparentReport
	Flags      RigFlags
}

// Prepare reconstructs the bone hierarchy of m in place and tags transform
// semantics for the animation player. m must not be shared while this runs.
func Prepare(m *Model, opts Options) *Result {
	tuning := opts.Tuning.WithDefaults()
	entityID := opts.EntityID
	if entityID == "" {
		entityID = m.EntityID
	}

	res := &Result{
		Archetype:  DetectArchetype(m),
		References: AnalyzeReferences(m.Layers),
	}

	res.Plan = ResolveHierarchy(m, res.Archetype, entityID, opts.Hierarchies, tuning)
	res.Report = ApplyHierarchy(m, res.Plan, res.References)

	res.Flags = DeriveRigFlags(m, res.Archetype, tuning)
	TagSemantics(m, res.Archetype, res.Flags, tuning)
	SnapshotRestPositions(m)

	log().Debug("rig prepared",
		zap.String("entity", entityID),
		zap.Stringer("archetype", res.Archetype),
		zap.Stringer("source", res.Plan.Source),
		zap.Int("reparented", len(res.Report.Reparented())),
		zap.Int("guardSkips", len(res.Report.GuardSkips())))

	return res
}
