package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func newTakesCmd(a *app) *cobra.Command {
	var showShots bool
	cmd := &cobra.Command{
		Use:   "takes",
		Short: "List the takes of the saved timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()
			return sess.View(func(tx *session.Tx) error {
				m := tx.Model
				fmt.Fprintln(tw, "#\tTAKE\tSHOTS\tEDIT DURATION\t")
				for i, take := range m.Takes() {
					marker := " "
					if i == m.ActiveTakeIndex() {
						marker = "*"
					}
					ref := timeline.TakeAt(i)
					fmt.Fprintf(tw, "%d%s\t%s\t%d\t%d\t\n", i, marker, take.Name(), take.Len(), m.EditDuration(ref, true))
					if !showShots {
						continue
					}
					for j, shot := range m.Shots(ref, false) {
						state := "on"
						if !shot.Enabled() {
							state = "off"
						}
						fmt.Fprintf(tw, "\t  %d %s\t%s\t%s [%s]\t\n", j, shot.Name(), shot.Range(), state, shot.Camera())
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showShots, "shots", false, "also list the shots of every take")
	return cmd
}
