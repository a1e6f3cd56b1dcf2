package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/go-fractile/fractile/fractal"
)

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <input-image> [output.frc]",
		Short: "compress a grayscale power-of-two image into a fractal container",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minRange, _ := cmd.Flags().GetUint8("min-range")
			maxRange, _ := cmd.Flags().GetUint8("max-range")
			mse, _ := cmd.Flags().GetFloat32("mse-multiplier")
			workers, _ := cmd.Flags().GetInt("workers")

			inPath := args[0]
			outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".frc"
			if len(args) == 2 {
				outPath = args[1]
			}

			settings := fractal.Settings{
				MinRange:      minRange,
				MaxRange:      maxRange,
				MSEMultiplier: mse,
				Workers:       workers,
			}
			return runCompress(inPath, outPath, settings)
		},
	}

	pf := cmd.Flags()
	def := fractal.DefaultSettings()
	pf.Uint8("min-range", def.MinRange, "smallest range block side the quadtree may produce")
	pf.Uint8("max-range", def.MaxRange, "root range block side")
	pf.Float32("mse-multiplier", def.MSEMultiplier, "root-level MSE subdivide threshold")
	pf.Int("workers", 0, "goroutine cap (0 = one per root-range row, up to GOMAXPROCS)")
	return cmd
}

func runCompress(inPath, outPath string, settings fractal.Settings) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := decodeAnyImage(in, inPath)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	b := src.Bounds()
	size := uint32(b.Dx())
	img, err := fractal.FromImage(src, size)
	if err != nil {
		return err
	}

	slog.Info("compressing", slog.String("input", inPath), slog.Int("size", int(size)))
	compressed, err := fractal.Compress(img, settings)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := fractal.Save(compressed, out); err != nil {
		return err
	}
	fmt.Printf("compressed %s -> %s (%d domains, %d quadtree bits)\n", inPath, outPath, len(compressed.Domains), compressed.Quadtree.Len())
	return nil
}

// decodeAnyImage decodes src by extension, following the extension-sniffing
// dispatch the reference pack's CLI entry point uses: BMP is handled
// explicitly via x/image/bmp since it does not self-register with the
// standard library's image.Decode registry, everything else falls through
// to the registered PNG/JPEG/GIF decoders.
func decodeAnyImage(r *os.File, path string) (image.Image, error) {
	if strings.ToLower(filepath.Ext(path)) == ".bmp" {
		return bmp.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}
