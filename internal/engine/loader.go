package engine

import (
	"context"
	"fmt"

	"item-store/internal/schema"
	"item-store/internal/seedlock"
	"item-store/internal/store"

	"go.uber.org/zap"
)

// LoadOptions tunes Bootstrap. The zero value is a permissive, unlocked load.
type LoadOptions struct {
	// Strict rejects data lines whose value count differs from the header.
	Strict bool
	// Locker is held from the empty check until the last insert.
	Locker     seedlock.Locker
	OnProgress func()
}

// Bootstrap makes sure the table exists and, only when it is empty, inserts
// one row per data line of src. Rows inserted before a failure stay in place.
func Bootstrap(ctx context.Context, st *store.Store, src *schema.Source, opts LoadOptions) (schema.LoadResult, error) {
	table := st.Table()
	result := schema.LoadResult{TableName: table.Name, Total: len(src.Lines)}

	if err := st.EnsureTable(ctx); err != nil {
		return result, err
	}

	locker := opts.Locker
	if locker == nil {
		locker = seedlock.Noop{}
	}
	release, err := locker.Acquire(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	defer func() {
		// 컨텍스트가 취소되어도 락은 반납
		if err := release(context.WithoutCancel(ctx)); err != nil {
			zap.S().Warnf("Failed to release seed lock: %v", err)
		}
	}()

	has, err := st.HasRows(ctx)
	if err != nil {
		return result, err
	}
	if has {
		zap.S().Infof("Table %s already has rows, skipping seed load", table.Name)
		result.Status = "SKIPPED"
		result.Skipped = len(src.Lines)
		return result, nil
	}

	zap.S().Infof("Seeding %s from %s (%d lines)", table.Name, src.Path, len(src.Lines))
	result.Seeded = true

	for i, line := range src.Lines {
		fields, err := src.Zip(schema.SplitLine(line), opts.Strict)
		if err != nil {
			result.Status = "FAILED"
			result.ErrorMsg = err.Error()
			return result, fmt.Errorf("data line %d: %w", i+1, err)
		}

		if _, err := st.Insert(ctx, fields); err != nil {
			result.Status = "FAILED"
			result.ErrorMsg = err.Error()
			return result, fmt.Errorf("data line %d: %w", i+1, err)
		}
		result.Inserted++

		if opts.OnProgress != nil {
			opts.OnProgress()
		}
	}

	result.Status = "OK"
	zap.S().Infof("Seeded %d rows into %s", result.Inserted, table.Name)
	return result, nil
}

// Verify re-counts the table after a load.
func Verify(ctx context.Context, st *store.Store, res schema.LoadResult) schema.LoadResult {
	verified := res

	count, err := st.Count(ctx)
	switch {
	case err != nil:
		verified.Status = fmt.Sprintf("VERIFY_FAIL: %v", err)
	case res.Seeded && count < res.Inserted:
		verified.Status = fmt.Sprintf("PARTIAL: %d/%d", count, res.Inserted)
	case res.Seeded:
		verified.Status = "VERIFIED_OK"
	}
	verified.Actual = count
	return verified
}
