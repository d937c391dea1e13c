package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/heightfield/export"
	"github.com/katalvlaran/heightfield/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect persisted heightmaps",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored heightmap names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	var out, format string
	showCmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Describe a stored heightmap, optionally exporting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name:    %s\nid:      %s\nsize:    %dx%d\nseed:    %d\nmode:    %s\nrunway:  %t\ncreated: %s\n",
				rec.Name, rec.ID, rec.Width, rec.Height, rec.Seed, rec.Mode, rec.Runway, rec.CreatedAt.Format("2006-01-02 15:04:05Z07:00"))

			if out == "" {
				return nil
			}
			if format == "" {
				format = a.cfg.Output.Format
				if ext := filepath.Ext(out); ext != "" {
					format = ext[1:]
				}
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			g, err := rec.Grid()
			if err != nil {
				return err
			}

			return writeGrid(out, f, g, export.Meta{Seed: rec.Seed, Mode: rec.Mode, Runway: rec.Runway})
		},
	}
	showCmd.Flags().StringVarP(&out, "out", "o", "", "export the map to this file")
	showCmd.Flags().StringVar(&format, "format", "", "export format: png or json (default: from --out extension)")

	cmd.AddCommand(listCmd, showCmd)

	return cmd
}

func (a *app) openStore() (store.Store, error) {
	return store.Open(a.cfg.Store.Driver, a.cfg.Store.DSN)
}
