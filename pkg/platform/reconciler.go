package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"go.uber.org/zap"
)

// Reconciler brings a single access group's live membership in line with
// a desired member set, issuing the minimal create/add/remove operations.
// Applying the same desired set twice must report no change on the second
// pass; that property is what makes whole runs reproducible.
type Reconciler struct {
	store  Store
	logger *zap.Logger
}

// NewReconciler initializes a reconciler over a platform store
func NewReconciler(s Store) (*Reconciler, error) {
	if s == nil {
		return nil, ErrNilStore
	}

	return &Reconciler{store: s}, nil
}

// SetLogger assigns a logger for this reconciler
func (r *Reconciler) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[reconciler]")
	}

	r.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
func (r *Reconciler) Logger() *zap.Logger {
	if r.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize reconciler logger: %s", err))
		}

		r.logger = l
	}

	return r.logger
}

// Fingerprint produces a stable digest of a member set, independent of
// the order in which the accounts were resolved
func Fingerprint(accs []Account) uint64 {
	names := make([]string, 0, len(accs))
	for _, a := range DedupeAccounts(accs) {
		names = append(names, a.String())
	}

	return xxhash.Sum64String(strings.Join(names, "\x00"))
}

// Apply reconciles a group against a desired member set and reports
// whether anything changed (or would change, under dry-run). A missing
// group is created even when the desired set is empty.
func (r *Reconciler) Apply(ctx context.Context, group string, desired []Account, dryRun bool) (changed bool, err error) {
	if group == "" {
		return false, ErrEmptyGroupName
	}

	l := r.Logger().With(zap.String("group", group), zap.Bool("dry_run", dryRun))

	// upstream may legitimately hand over duplicates; the diff below
	// must operate on a proper set
	desired = DedupeAccounts(desired)

	l.Debug("reconciling group",
		zap.Int("desired", len(desired)),
		zap.Uint64("fingerprint", Fingerprint(desired)),
	)

	exists, err := r.store.GroupExists(ctx, group)
	if err != nil {
		return false, err
	}

	current := make([]string, 0)

	if exists {
		current, err = r.store.GroupMembers(ctx, group)
		if err != nil {
			return false, err
		}
	} else {
		l.Info("creating group")

		changed = true

		if !dryRun {
			if err = r.store.CreateGroup(ctx, group); err != nil {
				return false, err
			}
		}
	}

	currentSet := make(map[string]struct{}, len(current))
	for _, m := range current {
		currentSet[m] = struct{}{}
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, a := range desired {
		desiredSet[a.String()] = struct{}{}
	}

	// removing members that are no longer desired
	for _, m := range current {
		if _, ok := desiredSet[m]; ok {
			continue
		}

		l.Info("removing member", zap.String("member", m))

		changed = true

		if !dryRun {
			if err = r.store.RemoveMember(ctx, group, m); err != nil {
				return changed, err
			}
		}
	}

	// adding members that are desired but absent
	for _, a := range desired {
		if _, ok := currentSet[a.String()]; ok {
			continue
		}

		l.Info("adding member", zap.String("member", a.String()))

		changed = true

		if !dryRun {
			if err = r.store.AddMember(ctx, group, a.String()); err != nil {
				return changed, err
			}
		}
	}

	return changed, nil
}

// EnsureExists creates a group with no members if it is absent, and
// otherwise leaves it completely untouched
// NOTE: existing membership is never altered here, which is exactly
// what distinguishes this from Apply with an empty desired set
func (r *Reconciler) EnsureExists(ctx context.Context, group string, dryRun bool) (created bool, err error) {
	if group == "" {
		return false, ErrEmptyGroupName
	}

	exists, err := r.store.GroupExists(ctx, group)
	if err != nil {
		return false, err
	}

	if exists {
		return false, nil
	}

	r.Logger().Info("creating group",
		zap.String("group", group),
		zap.Bool("dry_run", dryRun),
	)

	if !dryRun {
		if err = r.store.CreateGroup(ctx, group); err != nil {
			return false, err
		}
	}

	return true, nil
}
