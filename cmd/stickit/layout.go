package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/daptify14/stickit/internal/catalog"
	stickitconfig "github.com/daptify14/stickit/internal/config"
	"github.com/daptify14/stickit/internal/floating"
	"github.com/daptify14/stickit/internal/layout"
)

// Pixel size of one terminal cell in PNG snapshots.
const (
	snapshotCellW = 8
	snapshotCellH = 16
)

type layoutFlags struct {
	manifest string
	width    int
	height   int
	offset   int
	png      string
}

func newLayoutCmd() *cobra.Command {
	var f layoutFlags
	cmd := &cobra.Command{
		Use:   "layout [dir]",
		Short: "Print the section layout at a scroll offset",
		Long:  "layout computes the section layout of a directory (or manifest) at the given width, scrolls to the given offset and prints where every header and footer ends up. With --png the layout is drawn instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), cmd.OutOrStdout(), rootArg(args), f)
		},
	}
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "lay out the sections of a YAML manifest")
	cmd.Flags().IntVar(&f.width, "width", 80, "viewport width in cells")
	cmd.Flags().IntVar(&f.height, "height", 24, "viewport height in rows")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "content offset of the viewport top")
	cmd.Flags().StringVar(&f.png, "png", "", "draw the layout to this PNG file")
	return cmd
}

func runLayout(ctx context.Context, w io.Writer, root string, f layoutFlags) error {
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", f.width, f.height)
	}
	cfg, err := stickitconfig.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var c catalog.Catalog
	if f.manifest != "" {
		c, err = catalog.LoadManifest(f.manifest)
	} else {
		if ctx == nil {
			ctx = context.Background()
		}
		c, _, err = catalog.Walk(ctx, root, walkOptions(cfg))
	}
	if err != nil {
		return err
	}

	snap, err := takeSnapshot(c, cfg.Layout.Metrics(), layout.NewRect(0, f.offset, f.width, f.height))
	if err != nil {
		return err
	}
	if f.png == "" {
		return snap.engine.Dump(w)
	}

	out, err := os.Create(f.png)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := snap.drawPNG(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("draw png: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	_, err = fmt.Fprintf(w, "wrote %s\n", f.png)
	return err
}

// snapshot is a laid-out catalog scrolled to one viewport.
type snapshot struct {
	catalog catalog.Catalog
	flow    *layout.Flow
	engine  *floating.Engine
	bounds  layout.Rect
}

// takeSnapshot lays c out at the width of bounds and reports bounds to the
// floating engine the way the interactive list does.
func takeSnapshot(c catalog.Catalog, metrics layout.Metrics, bounds layout.Rect) (snapshot, error) {
	flow := layout.NewFlow(metrics, c.Counts())
	flow.Prepare(bounds.Width)
	engine := floating.New(flow)
	if err := engine.Prepare(); err != nil {
		return snapshot{}, fmt.Errorf("layout: %w", err)
	}
	bounds.Y = max(0, min(bounds.Y, flow.ContentHeight()-bounds.Height))
	inv := engine.BoundsChanged(bounds)
	for _, s := range inv.Headers {
		engine.SupplementaryAttributes(layout.KindHeader, s)
	}
	return snapshot{catalog: c, flow: flow, engine: engine, bounds: bounds}, nil
}

// drawPNG draws every element of the content, floating header included, and
// outlines the viewport.
func (s snapshot) drawPNG(w io.Writer) error {
	contentH := max(s.flow.ContentHeight(), s.bounds.MaxY())
	dc := gg.NewContext(max(1, s.flow.Width())*snapshotCellW, max(1, contentH)*snapshotCellH)
	dc.SetHexColor("#1e1e2e")
	dc.Clear()

	elems := s.engine.ElementsInRect(layout.NewRect(0, 0, s.flow.Width(), contentH))
	slices.SortStableFunc(elems, func(a, b layout.Attributes) int { return a.ZIndex - b.ZIndex })
	for _, a := range elems {
		if a.Frame.IsEmpty() {
			continue
		}
		fill, text := s.elementStyle(a)
		x := float64(a.Frame.X * snapshotCellW)
		y := float64(a.Frame.Y * snapshotCellH)
		fw := float64(a.Frame.Width * snapshotCellW)
		fh := float64(a.Frame.Height * snapshotCellH)
		dc.SetHexColor(fill)
		dc.DrawRectangle(x+1, y+1, fw-2, fh-2)
		dc.Fill()
		dc.SetHexColor("#cdd6f4")
		dc.DrawStringAnchored(text, x+4, y+fh/2, 0, 0.5)
	}

	dc.SetHexColor("#f38ba8")
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, float64(s.bounds.Y*snapshotCellH)+1,
		float64(s.bounds.Width*snapshotCellW)-2, float64(s.bounds.Height*snapshotCellH)-2)
	dc.Stroke()
	return dc.EncodePNG(w)
}

func (s snapshot) elementStyle(a layout.Attributes) (fill, text string) {
	sec := s.catalog.Sections[a.Path.Section]
	switch a.Kind {
	case layout.KindHeader:
		if a.ZIndex > 0 {
			return "#fab387", sec.Title + " (floating)"
		}
		return "#89b4fa", sec.Title
	case layout.KindFooter:
		return "#45475a", ""
	default:
		if it, ok := s.catalog.Item(a.Path.Section, a.Path.Item); ok {
			return "#313244", it.Name
		}
		return "#313244", ""
	}
}
