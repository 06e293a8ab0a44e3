package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sitetree/modules/site"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the content tree",
		Long:  "Prints folders first, then files. Excluded files are dimmed and deploy path overrides are shown after the file name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSite(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w)
			newTreePrinter(w).print(s.Content(), filepath.Base(s.ContentPath()))
			fmt.Fprintln(w)
			return nil
		},
	}
}

type treePrinter struct {
	w          io.Writer
	dirColor   *color.Color
	fileColor  *color.Color
	skipColor  *color.Color
	aliasColor *color.Color
}

func newTreePrinter(w io.Writer) *treePrinter {
	return &treePrinter{
		w:          w,
		dirColor:   color.New(color.FgBlue, color.Bold),
		fileColor:  color.New(color.FgWhite),
		skipColor:  color.New(color.Faint),
		aliasColor: color.New(color.FgGreen),
	}
}

func (p *treePrinter) print(root *site.Node, name string) {
	p.dirColor.Fprint(p.w, name)
	fmt.Fprintln(p.w)
	p.printChildren(root, "")
}

func (p *treePrinter) printChildren(node *site.Node, prefix string) {
	nodes := node.Nodes()
	resources := node.Resources()
	total := len(nodes) + len(resources)

	// Folders come first
	for i, child := range nodes {
		isLast := i == total-1
		p.connector(prefix, isLast)
		p.dirColor.Fprint(p.w, child.Name())
		if meta := child.Meta(); meta != nil && meta.Alias != "" {
			fmt.Fprint(p.w, " ")
			p.aliasColor.Fprintf(p.w, "-> /%s", child.RelativeDeployPath())
		}
		fmt.Fprintln(p.w)

		newPrefix := prefix + "│   "
		if isLast {
			newPrefix = prefix + "    "
		}
		p.printChildren(child, newPrefix)
	}

	for i, r := range resources {
		p.connector(prefix, len(nodes)+i == total-1)
		if r.IsProcessable() {
			p.fileColor.Fprint(p.w, r.Name())
		} else {
			p.skipColor.Fprint(p.w, r.Name())
		}
		if r.HasDeployOverride() {
			fmt.Fprint(p.w, " ")
			p.aliasColor.Fprintf(p.w, "-> %s", r.URL())
		}
		fmt.Fprintln(p.w)
	}
}

func (p *treePrinter) connector(prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	fmt.Fprint(p.w, prefix, connector)
}
