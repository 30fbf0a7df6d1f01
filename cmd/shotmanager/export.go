package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heimdex/shotmanager/internal/export"
	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		take      int
		title     string
		outputDir string
		frameRate float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the edit of a take as a CMX 3600 EDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := export.ValidateOutputDir(outputDir); err != nil {
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

			ref := timeline.ActiveTake
			if take >= 0 {
				ref = timeline.TakeAt(take)
			}

			var (
				events   []export.Event
				takeName string
			)
			err = sess.View(func(tx *session.Tx) error {
				t := tx.Model.Take(ref)
				if t == nil {
					return fmt.Errorf("take not found: %s", takeLabel(take))
				}
				takeName = t.Name()
				events = export.EventsFromTake(tx.Model, ref)
				return nil
			})
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return fmt.Errorf("take %q has no enabled shots", takeName)
			}

			if title == "" {
				title = takeName
			}
			fps := frameRate
			if fps <= 0 {
				fps = a.cfg.FrameRate()
			}
			edl := export.GenerateEDL(events, export.SanitizeName(title, 120), fps)
			path, err := export.WriteEDL(outputDir, takeName, edl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d events to %s\n", len(events), path)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&take, "take", -1, "take index to export (default: active take)")
	flags.StringVar(&title, "title", "", "EDL title (default: take name)")
	flags.StringVarP(&outputDir, "out", "o", ".", "existing directory to write the EDL into")
	flags.Float64Var(&frameRate, "frame-rate", 0, "timecode frame rate (default: configured frame rate)")
	return cmd
}

func takeLabel(index int) string {
	if index < 0 {
		return "active"
	}
	return strconv.Itoa(index)
}
