package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/imaging"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
	"github.com/ironsheep/fastbitmap/internal/server"
)

// ServeCmd runs the MCP server.
type ServeCmd struct{}

func (c *ServeCmd) Run(logger *slog.Logger) error {
	srv := server.New(server.WithLogger(logger), server.WithVersion(Version))
	logger.Info("serving MCP over stdio", "version", Version)
	return srv.Run()
}

// InfoCmd prints image metadata.
type InfoCmd struct {
	Path string `arg:"" type:"existingfile" help:"Image file."`
}

func (c *InfoCmd) Run(out io.Writer) error {
	info, err := imaging.LoadImageInfo(imaging.NewImageCache(), c.Path)
	if err != nil {
		return err
	}
	return writeJSON(out, info)
}

// GetCmd prints the color of one pixel.
type GetCmd struct {
	Path string `arg:"" type:"existingfile" help:"Image file."`
	X    int    `arg:"" help:"X coordinate (0-based)."`
	Y    int    `arg:"" help:"Y coordinate (0-based)."`
}

func (c *GetCmd) Run(out io.Writer) error {
	bm, err := imaging.NewImageCache().Load(c.Path)
	if err != nil {
		return err
	}
	result, err := imaging.SampleColor(bm, c.X, c.Y)
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

// SetCmd writes one pixel and saves the image.
type SetCmd struct {
	Path   string `arg:"" type:"existingfile" help:"Image file."`
	X      int    `arg:"" help:"X coordinate (0-based)."`
	Y      int    `arg:"" help:"Y coordinate (0-based)."`
	Color  string `arg:"" help:"Color as #RGB, #RRGGBB or #RRGGBBAA."`
	Output string `short:"o" required:"" help:"File to write; the format follows the extension."`
	Mode   string `enum:"read-write,write-only" default:"read-write" help:"Lock mode; write-only starts from a cleared image."`
}

func (c *SetCmd) Run(logger *slog.Logger, out io.Writer) error {
	mode, err := bitmap.ParseLockMode(c.Mode)
	if err != nil {
		return err
	}
	col, err := pixelbuf.ParseHex(c.Color)
	if err != nil {
		return err
	}
	bm, err := imaging.NewImageCache().Load(c.Path)
	if err != nil {
		return err
	}
	result, err := imaging.SetPixelMode(bm, c.X, c.Y, col, mode)
	if err != nil {
		return err
	}
	if err := imaging.SaveBitmap(bm, c.Output); err != nil {
		return err
	}
	logger.Info("saved image", "output", c.Output)
	return writeJSON(out, result)
}

// InvertCmd inverts every pixel and saves the image.
type InvertCmd struct {
	Path   string `arg:"" type:"existingfile" help:"Image file."`
	Output string `short:"o" required:"" help:"File to write; the format follows the extension."`
}

func (c *InvertCmd) Run(logger *slog.Logger, out io.Writer) error {
	bm, err := imaging.NewImageCache().Load(c.Path)
	if err != nil {
		return err
	}
	result, err := imaging.Invert(bm)
	if err != nil {
		return err
	}
	if err := imaging.SaveBitmap(bm, c.Output); err != nil {
		return err
	}
	logger.Info("saved image", "output", c.Output)
	return writeJSON(out, result)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
