package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/points"
	"github.com/vmihailenco/msgpack/v5"
)

// sweepRow summarises one value of n, the dump file holds one per n.
type sweepRow struct {
	N              int                `msgpack:"n"`
	Nominal        int                `msgpack:"nominal"`
	Distinct       int                `msgpack:"distinct"`
	Pairs          int                `msgpack:"pairs"`
	ClosePairCount int                `msgpack:"closePairCount"`
	MaxExtent      float64            `msgpack:"maxExtent"`
	Took           time.Duration      `msgpack:"took"`
	Points         []models.Point     `msgpack:"points,omitempty"`
	ClosePairs     []models.ClosePair `msgpack:"closePairs,omitempty"`
}

func sweep(maxN int, withPoints bool) []sweepRow {
	maxN = catalog.ClampN(maxN)
	rows := make([]sweepRow, 0, maxN+1)
	bar := progressbar.Default(int64(maxN) + 1)
	for n := 0; n <= maxN; n++ {
		startTime := time.Now()
		vectors := catalog.Prefix(n)
		pts := points.GeneratePoints(vectors)
		pairs := points.ClosePairs(pts, vectors)
		row := sweepRow{
			N:              n,
			Nominal:        1 << n,
			Distinct:       len(pts),
			Pairs:          len(pairs),
			ClosePairCount: points.ClosePairCount(n),
			MaxExtent:      points.MaxExtent(pts),
			Took:           time.Since(startTime),
		}
		if withPoints {
			row.Points = pts
			row.ClosePairs = pairs
		}
		rows = append(rows, row)
		bar.Add(1)
	}
	return rows
}

func main() {
	maxN := flag.Int("maxN", catalog.MaxN, "largest n to sweep")
	out := flag.String("out", "", "optional msgpack file to dump the sweep into")
	withPoints := flag.Bool("points", false, "include points and close pairs in the dump")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	// ---------------------------
	rows := sweep(*maxN, *withPoints)
	for _, r := range rows {
		log.Info().Int("n", r.N).Int("nominal", r.Nominal).Int("distinct", r.Distinct).
			Int("pairs", r.Pairs).Int("closePairCount", r.ClosePairCount).
			Float64("maxExtent", r.MaxExtent).Dur("took", r.Took).Msg("sweep")
	}
	// ---------------------------
	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("could not create dump file")
	}
	defer f.Close()
	if err := msgpack.NewEncoder(f).Encode(rows); err != nil {
		log.Fatal().Err(err).Msg("could not write dump")
	}
	log.Info().Str("out", *out).Int("rows", len(rows)).Msg("dump written")
}
