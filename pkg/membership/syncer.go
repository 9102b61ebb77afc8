package membership

import (
	"context"
	"fmt"
	"sort"

	"github.com/agubarev/groupsync/pkg/directory"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/agubarev/groupsync/pkg/registry"
	"github.com/agubarev/groupsync/pkg/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// errors
var (
	ErrNilDirectoryClient = errors.New("directory client is nil")
	ErrNilRegistryStore   = errors.New("registry store is nil")
	ErrNilPlatformStore   = errors.New("platform store is nil")
)

// Options control a single synchronization run
type Options struct {
	// compute and report everything, mutate nothing
	DryRun bool

	// restrict processing to these project ids; empty means all
	ProjectIDs []string
}

// Summary is the outcome of a run
type Summary struct {
	RunID                string `json:"run_id"`
	DryRun               bool   `json:"dry_run"`
	Projects             int    `json:"projects"`
	PrimaryChanged       int    `json:"primary_changed"`
	ContaminationChanged int    `json:"contamination_changed"`
	DroppedIdentities    int    `json:"dropped_identities"`
}

// Syncer drives a full synchronization run: it snapshots the directory
// and the platform's public identity set once, then walks every project
// in id order, planning and reconciling its access groups. Any
// collaborator failure aborts the run.
type Syncer struct {
	directory directory.Client
	registry  registry.Store
	store     platform.Store

	reconciler *platform.Reconciler
	logger     *zap.Logger
}

// NewSyncer initializes a syncer over the three external collaborators
func NewSyncer(dc directory.Client, rs registry.Store, ps platform.Store) (*Syncer, error) {
	if dc == nil {
		return nil, ErrNilDirectoryClient
	}

	if rs == nil {
		return nil, ErrNilRegistryStore
	}

	if ps == nil {
		return nil, ErrNilPlatformStore
	}

	rec, err := platform.NewReconciler(ps)
	if err != nil {
		return nil, err
	}

	return &Syncer{
		directory:  dc,
		registry:   rs,
		store:      ps,
		reconciler: rec,
	}, nil
}

// SetLogger assigns a logger for this syncer and its reconciler
func (s *Syncer) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[sync]")

		if err := s.reconciler.SetLogger(logger); err != nil {
			return err
		}
	}

	s.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
func (s *Syncer) Logger() *zap.Logger {
	if s.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize syncer logger: %s", err))
		}

		s.logger = l
	}

	return s.logger
}

// Run performs one full synchronization pass
func (s *Syncer) Run(ctx context.Context, opts Options) (summary Summary, err error) {
	summary = Summary{
		RunID:  util.NewULID().String(),
		DryRun: opts.DryRun,
	}

	l := s.Logger().With(zap.String("run_id", summary.RunID), zap.Bool("dry_run", opts.DryRun))

	//---------------------------------------------------------------------------
	// building the run's immutable snapshots
	//---------------------------------------------------------------------------
	l.Info("building directory membership snapshot")

	facts, err := directory.FetchFacts(ctx, s.directory)
	if err != nil {
		return summary, errors.Wrap(err, "failed to build directory snapshot")
	}

	l.Info("listing public platform accounts")

	publicMembers, err := s.store.GroupMembers(ctx, platform.PublicGroup)
	if err != nil {
		return summary, errors.Wrap(err, "failed to list public group")
	}

	idset := platform.BuildIdentitySet(publicMembers)

	l.Info("snapshots ready",
		zap.Int("directory_groups", facts.Len()),
		zap.Int("platform_accounts", idset.Len()),
	)

	//---------------------------------------------------------------------------
	// streaming projects from the registry
	//---------------------------------------------------------------------------
	projects, err := s.registry.FetchProjects(ctx, opts.ProjectIDs)
	if err != nil {
		return summary, errors.Wrap(err, "failed to fetch projects")
	}

	// the registry is expected to order by id already; sorting again
	// keeps the run order stable regardless of the store backing it
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	for _, p := range projects {
		summary.Projects++

		for _, plan := range PlanProject(p, facts, idset) {
			if len(plan.Dropped) > 0 {
				summary.DroppedIdentities += len(plan.Dropped)

				l.Debug("identities without platform accounts dropped",
					zap.String("project", p.ID),
					zap.String("group", plan.Group),
					zap.Strings("dropped", plan.Dropped),
				)
			}

			var changed bool

			if plan.EnsureOnly {
				changed, err = s.reconciler.EnsureExists(ctx, plan.Group, opts.DryRun)
			} else {
				changed, err = s.reconciler.Apply(ctx, plan.Group, plan.Desired, opts.DryRun)
			}

			if err != nil {
				return summary, errors.Wrapf(err, "failed to reconcile group %s", plan.Group)
			}

			if changed {
				if plan.Group == p.PrimaryGroup() {
					summary.PrimaryChanged++
				} else {
					summary.ContaminationChanged++
				}
			}
		}
	}

	l.Info("run complete",
		zap.Int("projects", summary.Projects),
		zap.Int("primary_changed", summary.PrimaryChanged),
		zap.Int("contamination_changed", summary.ContaminationChanged),
		zap.Int("dropped_identities", summary.DroppedIdentities),
	)

	return summary, nil
}
