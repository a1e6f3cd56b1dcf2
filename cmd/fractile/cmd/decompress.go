package cmd

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/go-fractile/fractile/fractal"
)

func newDecompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress <input.frc> [output-image]",
		Short: "decompress a fractal container back into an image",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations, _ := cmd.Flags().GetInt("iterations")

			inPath := args[0]
			outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".png"
			if len(args) == 2 {
				outPath = args[1]
			}
			return runDecompress(inPath, outPath, iterations)
		},
	}

	pf := cmd.Flags()
	pf.Int("iterations", fractal.DefaultIterations, "number of IFS iterations to replay")
	return cmd
}

func runDecompress(inPath, outPath string, iterations int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	compressed, err := fractal.Load(in)
	if err != nil {
		return err
	}

	slog.Info("decompressing", slog.String("input", inPath), slog.Int("iterations", iterations))
	img, err := fractal.Decompress(compressed, fractal.WithIterations(iterations))
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	gray := fractal.ToImage(img)
	if strings.ToLower(filepath.Ext(outPath)) == ".bmp" {
		return bmp.Encode(out, gray)
	}
	return png.Encode(out, gray)
}
