package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"sitetree/modules/site"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <relpath>",
		Short: "Show what a relative path resolves to",
		Long:  "Looks the path up as a file first, then as a folder, and prints its URLs and deploy location. Fails when neither exists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSite(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if r, ok := s.ResourceFromRelativePath(args[0]); ok {
				printResource(w, r)
				return nil
			}
			if n, ok := s.NodeFromRelativePath(args[0]); ok {
				printNode(w, n)
				return nil
			}
			return fmt.Errorf("%s: not found in %s", args[0], s.ContentPath())
		},
	}
}

func printResource(w io.Writer, r *site.Resource) {
	field(w, "kind", "resource")
	field(w, "source", r.SourceFile())
	field(w, "path", r.RelativePath())
	field(w, "url", r.URL())
	if full, ok := r.FullURL(); ok {
		field(w, "full url", full)
	}
	if m := r.Node().Module(); m != nil {
		field(w, "module", m.RelativePath())
	}
	field(w, "deploy path", r.RelativeDeployPath())
	field(w, "deploy file", r.DeployFile())
	field(w, "processable", strconv.FormatBool(r.IsProcessable()))
	field(w, "media type", r.MediaType())
}

func printNode(w io.Writer, n *site.Node) {
	field(w, "kind", "node")
	field(w, "source", n.SourceFolder())
	field(w, "path", n.RelativePath())
	field(w, "url", n.URL())
	if full, ok := n.FullURL(); ok {
		field(w, "full url", full)
	}
	if m := n.Module(); m != nil {
		field(w, "module", m.RelativePath())
	}
	field(w, "deploy path", n.RelativeDeployPath())
	field(w, "folders", strconv.Itoa(len(n.Nodes())))
	field(w, "resources", strconv.Itoa(len(n.Resources())))
}

func field(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-12s %s\n", name+":", value)
}
