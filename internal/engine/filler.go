package engine

import (
	"context"
	"fmt"

	"item-store/internal/store"
)

// Fill inserts count generated rows and returns how many made it in. It stops
// at the first failed insert.
func Fill(ctx context.Context, st *store.Store, gen *Generator, count int, onProgress func()) (int, error) {
	table := st.Table()
	inserted := 0

	for inserted < count {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		if _, err := st.Insert(ctx, gen.GenerateRecord(table)); err != nil {
			return inserted, fmt.Errorf("row %d: %w", inserted+1, err)
		}
		inserted++

		if onProgress != nil {
			onProgress()
		}
	}
	return inserted, nil
}
