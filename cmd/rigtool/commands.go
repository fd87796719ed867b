package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/packlens/internal/engine/rig"
	"github.com/Faultbox/packlens/internal/logger"
	"github.com/Faultbox/packlens/pkg/formats"
	"github.com/Faultbox/packlens/pkg/math"
)

func loadModel(path string) (*rig.Model, error) {
	doc, err := formats.ParseRigDocumentFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rig.FromDocument(doc), nil
}

func (a *app) prepare(cmd *cobra.Command, path string) (*rig.Model, *rig.Result, error) {
	m, err := loadModel(path)
	if err != nil {
		return nil, nil, err
	}

	opts := rig.Options{Tuning: a.cfg.Tuning()}
	if opts.EntityID, err = cmd.Flags().GetString("entity"); err != nil {
		return nil, nil, fmt.Errorf("failed to read --entity flag: %w", err)
	}
	if file := a.cfg.Rig.HierarchyFile; file != "" {
		table, err := formats.ParseHierarchyFile(file)
		if err != nil {
			return nil, nil, err
		}
		opts.Hierarchies = rig.HierarchyTable(table)
		logger.Named("rigtool").Debug("loaded hierarchy table",
			zap.String("path", file),
			zap.Int("entities", len(table)))
	}

	return m, rig.Prepare(m, opts), nil
}

func (a *app) runArchetype(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	arch := rig.DetectArchetype(m)
	fmt.Fprintf(out, "Archetype: %s\n", arch)
	if legs := arch.QuadrupedLegs(); len(legs) > 0 {
		fmt.Fprintf(out, "Legs:      %s\n", strings.Join(legs, ", "))
	}
	fmt.Fprintf(out, "Top-level: %d bones\n", len(m.Roots()))
	return nil
}

func (a *app) runRefs(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	refs := rig.AnalyzeReferences(m.Layers)
	animated := refs.Animated.Sorted()
	fmt.Fprintf(out, "Animated bones: %d\n", len(animated))
	for _, target := range animated {
		reads := refs.ByTarget[target]
		if len(reads) == 0 {
			fmt.Fprintf(out, "  %s\n", target)
			continue
		}
		var names []string
		for _, name := range reads.Sorted() {
			if refs.ReadsTranslation(target, name) {
				name += " (t)"
			}
			names = append(names, name)
		}
		fmt.Fprintf(out, "  %s <- %s\n", target, strings.Join(names, ", "))
	}
	return nil
}

func (a *app) runInspect(cmd *cobra.Command, args []string) error {
	m, res, err := a.prepare(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Archetype: %s\n", res.Archetype)
	fmt.Fprintf(out, "Hierarchy: %s", res.Plan.Source)
	if res.Plan.Authoritative {
		fmt.Fprint(out, " (authoritative)")
	}
	fmt.Fprintln(out)
	if res.Plan.SwappedHead != "" {
		fmt.Fprintf(out, "Head swap: empty head renamed to %s\n", res.Plan.SwappedHead)
	}
	if bounds, ok := rig.ModelBounds(m); ok {
		size := bounds.Size()
		fmt.Fprintf(out, "Bounds:    %.2f x %.2f x %.2f px\n",
			math.ToPixels(size[0]), math.ToPixels(size[1]), math.ToPixels(size[2]))
	}

	fmt.Fprintln(out, "\nReparent:")
	for _, o := range res.Report.Outcomes {
		fmt.Fprintf(out, "  %-16s -> %-12s %s", o.Child, o.Parent, o.Reason)
		if o.Reference != "" {
			fmt.Fprintf(out, " [%s]", o.Reference)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "\nTree:")
	for _, b := range m.Roots() {
		printBone(out, b, 1)
	}
	return nil
}

func printBone(w io.Writer, b *rig.Bone, depth int) {
	var tags []string
	if axes := b.AbsoluteAxes(); axes != "" {
		tag := "abs=" + axes
		if space, ok := b.Meta.String(rig.MetaAbsoluteSpace); ok {
			tag += "/" + space
		}
		tags = append(tags, tag)
	}
	if y, ok := b.Meta.Float(rig.MetaOriginHintY); ok {
		tags = append(tags, fmt.Sprintf("originY=%g", y))
	}
	if b.IsVanillaPart() {
		tags = append(tags, "vanilla")
	}

	line := strings.Repeat("  ", depth) + b.Name
	if len(tags) > 0 {
		line += "  [" + strings.Join(tags, " ") + "]"
	}
	fmt.Fprintln(w, line)

	for _, c := range b.Children() {
		printBone(w, c, depth+1)
	}
}

func (a *app) runDump(cmd *cobra.Command, args []string) error {
	m, _, err := a.prepare(cmd, args[0])
	if err != nil {
		return err
	}

	data, err := rig.DumpJSON(m)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to read --output flag: %w", err)
	}
	if output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return fmt.Errorf("failed to read --save flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to read --output flag: %w", err)
	}

	switch {
	case save:
		path, err := a.cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	case output != "":
		if err := a.cfg.SaveTo(output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	default:
		data, err := a.cfg.Marshal()
		if err != nil {
			return err
		}
		cmd.OutOrStdout().Write(data)
	}
	return nil
}
