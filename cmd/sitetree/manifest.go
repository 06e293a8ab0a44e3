package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitetree/modules/manifest"
)

func newManifestCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the deploy manifest",
		Long:  "Records the deploy path of every resource in a msgpack manifest the deploy stage can route with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSite(cmd)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = s.Config.ManifestPath(s.Path)
			}

			m := manifest.FromSite(s.Content())
			if err := m.Save(path); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}
			s.Logger().Info("manifest written", "path", path, "entries", m.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries -> %s\n", m.Len(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "manifest file (default: deploy.manifest from config)")
	return cmd
}
