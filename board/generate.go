package board

import (
	"fmt"

	"flightline/internal/logging"
	"flightline/timeline"
)

// GenerateOptions sizes a demo board.
type GenerateOptions struct {
	Groups       int
	RowsPerGroup int
	ItemsPerRow  int
	Range        timeline.Range
	MinLength    int64
	MaxLength    int64
}

// Generate builds a demo board of random, non-overlapping bookings inside
// opts.Range. Each row is filled independently by the placer, so a crowded
// row fails with timeline.ErrCannotPlace instead of looping.
func Generate(p *timeline.Placer, opts GenerateOptions) (*Board, error) {
	if opts.MinLength == 0 && opts.MaxLength == 0 {
		opts.MinLength, opts.MaxLength = timeline.DefaultMinLength, timeline.DefaultMaxLength
	}

	b := New()
	for gi := 0; gi < opts.Groups; gi++ {
		g, err := b.AddGroup("", fmt.Sprintf("Group %d", gi+1))
		if err != nil {
			return nil, err
		}
		groupID := g.ID

		for ri := 0; ri < opts.RowsPerGroup; ri++ {
			row, err := b.AddRow(groupID, "", fmt.Sprintf("Flight %d.%d", gi+1, ri+1))
			if err != nil {
				return nil, err
			}
			rowID := row.ID

			spans, err := p.PlaceN(opts.ItemsPerRow, opts.Range, opts.MinLength, opts.MaxLength)
			if err != nil {
				return nil, fmt.Errorf("filling %s: %w", rowID, err)
			}
			for _, s := range spans {
				if _, err := b.AddItem(groupID, rowID, "", s); err != nil {
					return nil, err
				}
			}
		}
	}

	logging.Log.Debugf("Generated %d groups x %d rows x %d items", opts.Groups, opts.RowsPerGroup, opts.ItemsPerRow)
	return b, nil
}
