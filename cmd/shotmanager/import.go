package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/ingest"
	"github.com/heimdex/shotmanager/internal/timeline"
)

type importFlags struct {
	sequence        string
	take            int
	importAt        int
	offset          bool
	timeRange       string
	reformatNames   bool
	createCameras   bool
	mediaHandles    bool
	handlesDuration int
}

func newImportCmd(a *app) *cobra.Command {
	var f importFlags
	cmd := &cobra.Command{
		Use:   "import MANIFEST",
		Short: "Import a sequence of a YAML manifest as shots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := ingest.ReadManifest(args[0])
			if err != nil {
				return err
			}
			seq, err := manifest.Sequence(f.sequence)
			if err != nil {
				return err
			}

			logger := a.logger()
			repo, closeDB, err := a.openStore(logger)
			if err != nil {
				return err
			}
			defer closeDB()

			sess, _, err := a.openSession(cmd.Context(), repo, logger)
			if err != nil {
				return err
			}

			opts, err := f.options(sess.ImportOptions(), cmd.Flags().Changed("handles-duration"))
			if err != nil {
				return err
			}
			res, err := sess.Import(cmd.Context(), seq, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d shots from %q into take %d\n", len(res.Shots), seq.Name, res.TakeIndex)
			for _, s := range res.Shots {
				fmt.Fprintf(out, "  %s %d-%d\n", s.Name, s.Start, s.End)
			}
			if len(res.Skipped) > 0 {
				fmt.Fprintf(out, "skipped %d clips: %v\n", len(res.Skipped), res.Skipped)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.sequence, "sequence", "", "sequence name (default: first sequence)")
	flags.IntVar(&f.take, "take", -1, "take index to import into (default: active take)")
	flags.BoolVar(&f.offset, "offset", false, "place the sequence start at --at")
	flags.IntVar(&f.importAt, "at", ingest.DefaultOptions().ImportAtFrame, "frame the sequence starts at with --offset")
	flags.StringVar(&f.timeRange, "range", "", "only import clips overlapping START-END")
	flags.BoolVar(&f.reformatNames, "reformat-names", false, "keep the part of clip names after the last underscore")
	flags.BoolVar(&f.createCameras, "create-cameras", false, "create one camera per shot")
	flags.BoolVar(&f.mediaHandles, "media-handles", false, "clip media carry handles")
	flags.IntVar(&f.handlesDuration, "handles-duration", 0, "handle length in frames (default: configured handles)")
	return cmd
}

func (f importFlags) options(base ingest.Options, handlesSet bool) (ingest.Options, error) {
	opts := base
	if f.take >= 0 {
		opts.Take = timeline.TakeAt(f.take)
	}
	opts.OffsetTime = f.offset
	opts.ImportAtFrame = f.importAt
	if f.timeRange != "" {
		rng, err := frames.ParseRange(f.timeRange)
		if err != nil {
			return opts, fmt.Errorf("invalid --range: %w", err)
		}
		opts.TimeRange = &rng
	}
	opts.ReformatShotNames = f.reformatNames
	opts.CreateCameras = f.createCameras
	opts.MediaHaveHandles = f.mediaHandles
	if handlesSet {
		if f.handlesDuration < 0 {
			return opts, fmt.Errorf("invalid --handles-duration: must not be negative")
		}
		opts.HandlesDuration = f.handlesDuration
	}
	return opts, nil
}
