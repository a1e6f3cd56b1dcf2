package fractal

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/go-fractile/fractile/internal/logctx"
	"github.com/go-fractile/fractile/internal/runid"
)

// Compressed is the in-memory state of a compressed image: the derived
// image-size fields, the settings it was produced under, the flat
// quadtree traversal code, and the domain list in emission order. It is
// populated by Compress or Load and consumed by Decompress or Save.
type Compressed struct {
	Size     uint32
	SizeBits uint32
	SizeMask uint32

	Settings Settings

	Quadtree *QuadtreeCode
	Domains  []Domain
}

// Option configures a Compress call.
type Option func(*compressOptions)

type compressOptions struct {
	logger *slog.Logger
}

// WithLogger attaches a structured logger that receives one debug line per
// finished root range block and one summary line at the end of the run. When
// omitted, Compress logs through slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *compressOptions) { o.logger = logger }
}

// workerOutput is one goroutine's private contribution to the merged
// quadtree code and domain list: its own bitstream and its own domain
// slice, never touched by any other goroutine.
type workerOutput struct {
	quadtree *QuadtreeCode
	domains  []Domain
}

// Compress runs the domain search engine and adaptive partitioner over
// every root range block of img, sharding the root-range row grid across a
// worker pool and merging the per-worker bitstreams and
// domain lists in ascending worker index so the result is identical to
// what a serial encoder would produce.
func Compress(img *Image, settings Settings, opts ...Option) (*Compressed, error) {
	var o compressOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	maxRange := uint32(settings.MaxRange)
	minRange := uint32(settings.MinRange)

	if img.Size() < maxRange {
		return nil, newError(InputRejected, "image is smaller than max_range")
	}

	runID := runid.New(img.Size(), settings)
	log := logctx.WithRunID(logger, runID)

	numRangesPerSide := img.Size() / maxRange
	totalRootRanges := numRangesPerSide * numRangesPerSide

	workers := numRangesPerSide
	if settings.Workers > 0 && uint32(settings.Workers) < workers {
		workers = uint32(settings.Workers)
	}
	if hw := uint32(runtime.GOMAXPROCS(0)); hw < workers {
		workers = hw
	}
	if workers == 0 {
		workers = 1
	}

	rowsPerWorker := numRangesPerSide / workers

	outputs := make([]workerOutput, workers)

	var mu sync.Mutex
	var finished uint32

	var wg sync.WaitGroup
	for worker := uint32(0); worker < workers; worker++ {
		startRow := worker * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if worker == workers-1 {
			// Remainder rows (numRangesPerSide mod workers) are assigned
			// to the last worker's band rather than left unprocessed.
			endRow = numRangesPerSide
		}

		wg.Add(1)
		go func(worker, startRow, endRow uint32) {
			defer wg.Done()

			ctx := newRangeContext(img, maxRange)
			qc := &QuadtreeCode{}
			var domains []Domain

			for row := startRow; row < endRow; row++ {
				ry0 := row * maxRange
				for rx0 := uint32(0); rx0 < img.Size(); rx0 += maxRange {
					partitionRange(ctx, qc, &domains, rx0, ry0, maxRange, float64(settings.MSEMultiplier), minRange)

					mu.Lock()
					finished++
					n := finished
					mu.Unlock()

					log.Debug("range block done",
						slog.Uint64("finished", uint64(n)),
						slog.Uint64("total", uint64(totalRootRanges)))
				}
			}

			outputs[worker] = workerOutput{quadtree: qc, domains: domains}
		}(worker, startRow, endRow)
	}
	wg.Wait()

	merged := &Compressed{
		Size:     img.Size(),
		SizeBits: img.SizeBits(),
		SizeMask: img.SizeMask(),
		Settings: settings,
		Quadtree: &QuadtreeCode{},
	}

	for i := range outputs {
		merged.Quadtree.Append(outputs[i].quadtree)
		merged.Domains = append(merged.Domains, outputs[i].domains...)
	}

	stats := calculateDomainStats(merged.Domains)
	bitsPerPixel := float64(compressedSizeBytes(merged)*8) / float64(img.Size()*img.Size())

	log.Info("compress complete",
		slog.Int("num_domains", len(merged.Domains)),
		slog.Uint64("quadtree_bits", uint64(merged.Quadtree.Len())),
		slog.Float64("bits_per_pixel", bitsPerPixel),
		slog.Float64("average_scale", stats.averageScale),
		slog.Float64("average_offset", stats.averageOffset),
	)

	return merged, nil
}

// compressedSizeBytes reports the on-disk payload size in bytes (header +
// quadtree words + domain records), used only for the bits-per-pixel log
// field. Computed as totalSize*8/N^2 at the call site (not totalSize/N^2,
// which undercounts by a factor of 8).
func compressedSizeBytes(c *Compressed) uint64 {
	const headerBytes = 6 * 4 // magic, image_size, quadtree_bits, num_domains, mse_multiplier, settings tail
	quadtreeWords := (uint64(c.Quadtree.Len()) + 31) / 32
	return headerBytes + quadtreeWords*4 + uint64(len(c.Domains))*4
}

type domainStats struct {
	averageScale  float64
	averageOffset float64
}

// calculateDomainStats summarizes the final domain list for the end-of-run
// log line (the original std::cout domain-statistics dump,
// reduced to the fields worth a structured log entry).
func calculateDomainStats(domains []Domain) domainStats {
	if len(domains) == 0 {
		return domainStats{}
	}
	var sumScale, sumOffset float64
	for i := range domains {
		sumScale += domains[i].GetScale()
		sumOffset += domains[i].GetOffset()
	}
	n := float64(len(domains))
	return domainStats{averageScale: sumScale / n, averageOffset: sumOffset / n}
}
