package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

const maxTextWidth = 48

func renderSegments(segs []workspace.Segment) string {
	if len(segs) == 0 {
		return "No segments."
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Range (ms)", "Duration", "Text", "Video"})

	for _, s := range segs {
		tw.AppendRow(table.Row{
			strconv.Itoa(s.Index),
			fmt.Sprintf("%d-%d", s.StartMs, s.EndMs),
			fmt.Sprintf("%.2fs", s.DurationSec),
			s.Text,
			filepath.Base(s.VideoPath),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: maxTextWidth},
	})

	return tw.Render()
}
