// Package migration is the row-assembly engine: it consumes product groups,
// selects parents, consolidates shared fields, emits parent/variant/image
// rows, and enforces the destination's structural invariants.
package migration

import (
	"errors"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/yuvrajpandey77/ShopifyMigration/internal/grouping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/mapper"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/mapping"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/state"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/taxonomy"
	"github.com/yuvrajpandey77/ShopifyMigration/internal/validator"
	"github.com/yuvrajpandey77/ShopifyMigration/pkg/models"
)

// ErrNoRowsEmitted is the run's single fatal condition: nothing at all
// survived assembly.
var ErrNoRowsEmitted = errors.New("migration failed: no rows were emitted")

// Orchestrator runs the grouping, mapping, and row-assembly pipeline.
// Processing is strictly sequential over groups in first-seen order; a
// failed group is recorded and skipped, never fatal.
type Orchestrator struct {
	mapper    *mapper.Mapper
	cfg       *mapping.Config
	grouper   *grouping.Grouper
	taxonomy  *taxonomy.Table
	validator *validator.Validator
	ledger    *state.Ledger
}

// New creates an orchestrator over the given configuration.
func New(cfg *mapping.Config, tax *taxonomy.Table, g *grouping.Grouper) *Orchestrator {
	if tax == nil {
		tax = taxonomy.PassThrough()
	}
	return &Orchestrator{
		mapper:    mapper.New(cfg),
		cfg:       cfg,
		grouper:   g,
		taxonomy:  tax,
		validator: validator.New(cfg.RequiredFields),
	}
}

// SetLedger attaches a persisted idempotency ledger. Groups already on the
// ledger are skipped when Options.SkipMigrated is set; emitted groups are
// marked.
func (o *Orchestrator) SetLedger(l *state.Ledger) {
	o.ledger = l
}

// Options configures one run.
type Options struct {
	SampleSize   int  // process at most N source rows (0 = all)
	SkipMigrated bool // consult the ledger before assembling a group
	Progress     bool // render a progress bar over groups
}

// Result is the outcome of one migration run.
type Result struct {
	Rows        []models.EmittedRow
	Stats       models.Stats
	StartedAt   time.Time
	CompletedAt time.Time
}

// Run executes the full pipeline over the source records. The whole
// destination row set is assembled in memory; writing it is the caller's
// concern.
func (o *Orchestrator) Run(records []models.RawRecord, opts Options) (*Result, error) {
	result := &Result{StartedAt: time.Now()}

	if opts.SampleSize > 0 && len(records) > opts.SampleSize {
		records = records[:opts.SampleSize]
	}
	result.Stats.TotalRows = len(records)

	groups := o.grouper.Partition(records)
	result.Stats.TotalGroups = len(groups)

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(groups),
			progressbar.OptionSetDescription("Migrating"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	seenHandles := map[string]int{}
	emittedGroups := map[string]string{} // group ID -> handle

	for _, group := range groups {
		if bar != nil {
			bar.Add(1)
		}
		if opts.SkipMigrated && o.ledger != nil && o.ledger.Seen(group.ID) {
			result.Stats.SkippedGroups++
			continue
		}

		rows, ok := o.assembleGroup(group, seenHandles, &result.Stats)
		if !ok {
			result.Stats.SkippedGroups++
			continue
		}
		result.Rows = append(result.Rows, rows...)
		if len(rows) > 0 {
			emittedGroups[group.ID] = rows[0][models.ColHandle]
		}
	}
	if bar != nil {
		bar.Finish()
	}

	o.enforceInvariants(result)
	o.dedupeSKUs(result)
	o.count(result)

	result.CompletedAt = time.Now()
	if len(result.Rows) == 0 {
		return result, ErrNoRowsEmitted
	}

	if o.ledger != nil {
		for id, handle := range emittedGroups {
			o.ledger.Mark(id, handle)
		}
	}
	return result, nil
}

// assembleGroup emits the row set for one product group. Unexpected
// failures are caught here and recorded as processing errors; execution
// continues with the next group.
func (o *Orchestrator) assembleGroup(group models.ProductGroup, seenHandles map[string]int, stats *models.Stats) (rows []models.EmittedRow, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			stats.Errors = append(stats.Errors, models.ErrorRecord{
				GroupID:  group.ID,
				Kind:     models.ErrProcessing,
				Messages: []string{fmt.Sprintf("unexpected failure: %v", r)},
			})
			rows, ok = nil, false
		}
	}()
	return o.assemble(group, seenHandles, stats)
}

func (o *Orchestrator) count(result *Result) {
	for _, row := range result.Rows {
		switch {
		case row[models.ColTitle] != "":
			result.Stats.ParentRows++
		case row[models.ColOption1Value] != "":
			result.Stats.VariantRows++
		default:
			result.Stats.ImageRows++
		}
	}
	result.Stats.EmittedRows = len(result.Rows)
}
