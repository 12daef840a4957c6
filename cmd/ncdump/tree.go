package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-netcdf/netcdf"
)

// treeOptions controls what tree prints. An empty types lists every
// variable.
type treeOptions struct {
	raw   bool
	types []netcdf.Type
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		opts  treeOptions
		types []string
	)
	cmd := &cobra.Command{
		Use:   "tree FILE...",
		Short: "Print the groups, dimensions and variables of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range types {
				t, err := netcdf.ParseType(name)
				if err != nil {
					return err
				}
				opts.types = append(opts.types, t)
			}
			return a.tree(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print Go values instead of CDL")
	cmd.Flags().StringSliceVar(&types, "type", nil, "only list variables of these element types")
	return cmd
}

// tree describes the files concurrently and prints them in argument order.
func (a *app) tree(ctx context.Context, w io.Writer, paths []string, opts treeOptions) error {
	outputs := make([]bytes.Buffer, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			return a.describe(&outputs[i], path, opts)
		})
	}
	err := g.Wait()
	for i := range outputs {
		if _, werr := outputs[i].WriteTo(w); werr != nil {
			return werr
		}
	}
	return err
}

// groupSummary is what --raw prints for each group.
type groupSummary struct {
	Path       string
	Dimensions []netcdf.Dimension
	Variables  []variableSummary
}

type variableSummary struct {
	Name  string
	Type  string
	Dims  []string
	Shape []uint64
}

func (a *app) describe(w io.Writer, path string, opts treeOptions) error {
	f, err := netcdf.Open(path, netcdf.ReadOnly, a.options(false)...)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(w, "%s:\n", path)
	return f.Walk(func(p string, obj any) error {
		g, ok := obj.(*netcdf.Group)
		if !ok {
			return nil
		}
		s, err := summarize(g, opts.types)
		if err != nil {
			return err
		}
		if opts.raw {
			_, err = pretty.Fprintf(w, "%# v\n", s)
			return err
		}
		writeCDL(w, s, len(netcdf.SplitPath(p)))
		return nil
	})
}

func summarize(g *netcdf.Group, types []netcdf.Type) (groupSummary, error) {
	s := groupSummary{Path: g.FullPath()}
	for _, name := range g.DimensionNames() {
		d, err := g.Dimension(name)
		if err != nil {
			return s, err
		}
		s.Dimensions = append(s.Dimensions, d)
	}
	for _, name := range g.VariableNames() {
		v, err := g.Variable(name)
		if err != nil {
			return s, err
		}
		if len(types) > 0 && !slices.Contains(types, v.Type()) {
			continue
		}
		shape, err := v.Shape()
		if err != nil {
			return s, err
		}
		vs := variableSummary{Name: name, Type: v.Type().String(), Shape: shape}
		for _, d := range v.Dimensions() {
			vs.Dims = append(vs.Dims, d.Name)
		}
		s.Variables = append(s.Variables, vs)
	}
	return s, nil
}

func writeCDL(w io.Writer, s groupSummary, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sgroup %s {\n", indent, s.Path)
	if len(s.Dimensions) > 0 {
		fmt.Fprintf(w, "%s  dimensions:\n", indent)
		for _, d := range s.Dimensions {
			fmt.Fprintf(w, "%s    %s\n", indent, d)
		}
	}
	if len(s.Variables) > 0 {
		fmt.Fprintf(w, "%s  variables:\n", indent)
		for _, v := range s.Variables {
			if len(v.Dims) == 0 {
				fmt.Fprintf(w, "%s    %s %s ;\n", indent, v.Type, v.Name)
				continue
			}
			fmt.Fprintf(w, "%s    %s %s(%s) ; // %v\n", indent, v.Type, v.Name, strings.Join(v.Dims, ", "), v.Shape)
		}
	}
	fmt.Fprintf(w, "%s}\n", indent)
}
