package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/urfave/cli/v2"
	"lukechampine.com/blake3"

	"github.com/foldwright/capr/bio/fasta"
	"github.com/foldwright/capr/structprofile"
)

/******************************************************************************

runCommand reads the positional <input> <output> <beam_size> triple, builds
one structprofile.Engine per worker, and fans every FASTA record in the input
out across them. Results are buffered per record and flushed to the output
file in input order, so a fast worker never races ahead of a slow one on the
page.

******************************************************************************/

func runCommand(c *cli.Context) error {
	if c.NArg() < 3 {
		return fmt.Errorf("%w: expected <input> <output> <beam_size>", structprofile.ErrBadOption)
	}
	inputPath := c.Args().Get(0)
	outputPath := c.Args().Get(1)
	beamSize, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return fmt.Errorf("%w: beam_size must be an integer: %v", structprofile.ErrBadOption, err)
	}

	energySet, err := parseEnergySet(c.String("energy"))
	if err != nil {
		return err
	}

	cfg := structprofile.NewConfig()
	cfg.BeamSize = beamSize
	cfg.EnergyModelSet = energySet
	cfg.NormalizeProfiles = !c.Bool("no-normalize")
	cfg.NormalizeWarnEps = c.Float64("warn-eps")
	cfg.LegacyMultibranchLabel = c.Bool("legacy-label")
	if c.Bool("fast-lse") {
		cfg.LogSumExpMode = structprofile.LogSumExpFast
	}

	records, err := readRecords(inputPath)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", structprofile.ErrInputIO, err)
	}
	defer out.Close()

	return foldBatch(records, cfg, c.Bool("hash"), out)
}

func parseEnergySet(name string) (structprofile.EnergyParamsSet, error) {
	switch name {
	case "turner2004", "":
		return structprofile.Turner2004, nil
	case "turner1999":
		return structprofile.Turner1999, nil
	default:
		return 0, fmt.Errorf("%w: unknown energy set %q", structprofile.ErrBadOption, name)
	}
}

func readRecords(path string) ([]*fasta.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", structprofile.ErrInputIO, err)
	}
	defer f.Close()

	parser := fasta.NewParser(f, 1<<20)
	var records []*fasta.Record
	for {
		record, err := parser.Next()
		if err != nil {
			break
		}
		records = append(records, record)
	}
	return records, nil
}

// foldBatch runs one Engine per goroutine over records, writing results to
// w in the same order the records were read.
func foldBatch(records []*fasta.Record, cfg structprofile.Config, withHash bool, w *os.File) error {
	results := make([][]byte, len(records))
	var wg sync.WaitGroup

	for idx, record := range records {
		wg.Add(1)
		go func(idx int, record *fasta.Record) {
			defer wg.Done()
			engine := structprofile.NewEngine(cfg, nil)
			if err := engine.Run(record.Sequence); err != nil {
				log.Printf("capr: %s: %v", record.Identifier, err)
			}
			results[idx] = renderRecord(engine.Profile, record, cfg.LegacyMultibranchLabel, withHash)
		}(idx, record)
	}
	wg.Wait()

	for _, buf := range results {
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w: %v", structprofile.ErrInputIO, err)
		}
	}
	return nil
}

func renderRecord(profile structprofile.Profile, record *fasta.Record, legacyLabel, withHash bool) []byte {
	var b bytes.Buffer
	identifier := record.Identifier
	if withHash {
		h := blake3.New(32, nil)
		h.Write([]byte(record.Sequence))
		identifier = fmt.Sprintf("%s\tblake3:%x", identifier, h.Sum(nil))
	}
	profile.WriteTo(&b, identifier, legacyLabel)
	return b.Bytes()
}
