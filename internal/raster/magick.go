package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strings"

	"github.com/san-kum/wordgif/internal/style"
)

const defaultMagickBinary = "convert"

// Magick renders captions with ImageMagick:
//
//	convert -size BOXxBOX -background BG -fill FG -gravity Center caption:TEXT -extent WxH png:-
type Magick struct {
	// Binary defaults to "convert".
	Binary string
	Font   string
}

func (r *Magick) Render(ctx context.Context, c Caption) (image.Image, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	bin := r.Binary
	if bin == "" {
		bin = defaultMagickBinary
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, magickArgs(c, r.Font)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", bin, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", bin, err)
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("%s: unreadable output: %w", bin, err)
	}
	return img, nil
}

func magickArgs(c Caption, font string) []string {
	args := []string{
		"-size", fmt.Sprintf("%dx%d", c.Box.X, c.Box.Y),
		"-background", magickColor(c.Background),
		"-fill", magickColor(c.Fill),
		"-gravity", "Center",
	}
	if font != "" {
		args = append(args, "-font", font)
	}
	args = append(args,
		"caption:"+magickText(c.Text),
		"-extent", fmt.Sprintf("%dx%d", c.Size.X, c.Size.Y),
		"png:-",
	)
	return args
}

func magickColor(c color.Color) string {
	if _, _, _, a := c.RGBA(); a == 0 {
		return "none"
	}
	return style.Hex(c)
}

// A leading '@' makes ImageMagick read the caption from a file.
func magickText(s string) string {
	if strings.HasPrefix(s, "@") {
		return `\` + s
	}
	return s
}
